package repository

import (
	"context"

	"outdoor-rental-backend/internal/domain"
)

type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) (bool, error)
	Delete(ctx context.Context, id int32) (bool, error)
	UpdateSortOrders(ctx context.Context, orders []domain.SortOrderUpdate) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListOrderNumbers(ctx context.Context) ([]string, error)
	ListEndingOn(ctx context.Context, date string) ([]domain.Reservation, error)
	UpdatePeriod(ctx context.Context, id int32, dateFrom, dateTo string, quantity int32) (bool, error)
	UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) (bool, error)
	Delete(ctx context.Context, id int32) (bool, error)

	CreateItem(ctx context.Context, item *domain.ReservationItem) error
	ListItems(ctx context.Context, reservationID int32) ([]domain.ReservationItem, error)
	DeleteItems(ctx context.Context, reservationID int32) error
	ListItemsByEquipment(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error)
}
