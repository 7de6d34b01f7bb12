package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"outdoor-rental-backend/internal/contract"
	"outdoor-rental-backend/internal/domain"
)

type mockEquipmentRepo struct {
	mock.Mock
}

func (m *mockEquipmentRepo) Create(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *mockEquipmentRepo) List(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *mockEquipmentRepo) Update(ctx context.Context, e *domain.Equipment) (bool, error) {
	args := m.Called(ctx, e)
	return args.Bool(0), args.Error(1)
}

func (m *mockEquipmentRepo) Delete(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockEquipmentRepo) UpdateSortOrders(ctx context.Context, orders []domain.SortOrderUpdate) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Reservation, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) List(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) ListOrderNumbers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockReservationRepo) ListEndingOn(ctx context.Context, date string) ([]domain.Reservation, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) UpdatePeriod(ctx context.Context, id int32, dateFrom, dateTo string, quantity int32) (bool, error) {
	args := m.Called(ctx, id, dateFrom, dateTo, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockReservationRepo) Delete(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockReservationRepo) CreateItem(ctx context.Context, item *domain.ReservationItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockReservationRepo) ListItems(ctx context.Context, reservationID int32) ([]domain.ReservationItem, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReservationItem), args.Error(1)
}

func (m *mockReservationRepo) DeleteItems(ctx context.Context, reservationID int32) error {
	args := m.Called(ctx, reservationID)
	return args.Error(0)
}

func (m *mockReservationRepo) ListItemsByEquipment(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReservationItem), args.Error(1)
}

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendContractEmail(ctx context.Context, to, customerName, orderNumber string, contractPDF []byte) error {
	args := m.Called(ctx, to, customerName, orderNumber, contractPDF)
	return args.Error(0)
}

func (m *mockEmailService) SendOwnerNotification(ctx context.Context, customerName, customerEmail, orderNumber string, contractPDF []byte) error {
	args := m.Called(ctx, customerName, customerEmail, orderNumber, contractPDF)
	return args.Error(0)
}

func (m *mockEmailService) SendReturnReminder(ctx context.Context, to, customerName, orderNumber, dateTo string) error {
	args := m.Called(ctx, to, customerName, orderNumber, dateTo)
	return args.Error(0)
}

// recordingNotifier captures enqueued contract deliveries.
type recordingNotifier struct {
	jobs []contract.ContractData
}

func (n *recordingNotifier) EnqueueContract(data contract.ContractData, customerEmail string) {
	n.jobs = append(n.jobs, data)
}
