package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"outdoor-rental-backend/internal/domain"
)

func newEquipmentService(t *testing.T) (EquipmentService, *mockEquipmentRepo, *mockReservationRepo) {
	t.Helper()
	equipment := &mockEquipmentRepo{}
	reservations := &mockReservationRepo{}
	return NewEquipmentService(equipment, reservations), equipment, reservations
}

func TestGetAvailableQuantity(t *testing.T) {
	ctx := context.Background()
	tent := &domain.Equipment{ID: 1, Name: "Tent", Stock: 5}

	tests := []struct {
		name     string
		items    []domain.ReservationItem
		expected int32
	}{
		{
			name:     "no reservations",
			items:    []domain.ReservationItem{},
			expected: 5,
		},
		{
			name: "overlapping reservations reduce stock",
			items: []domain.ReservationItem{
				{EquipmentID: 1, DateFrom: "2026-07-01", DateTo: "2026-07-05", Quantity: 2},
				{EquipmentID: 1, DateFrom: "2026-07-03", DateTo: "2026-07-04", Quantity: 1},
			},
			expected: 2,
		},
		{
			name: "non-overlapping reservations are ignored",
			items: []domain.ReservationItem{
				{EquipmentID: 1, DateFrom: "2026-06-01", DateTo: "2026-06-30", Quantity: 4},
				{EquipmentID: 1, DateFrom: "2026-07-05", DateTo: "2026-07-10", Quantity: 3},
			},
			expected: 2,
		},
		{
			name: "oversubscribed clamps to zero",
			items: []domain.ReservationItem{
				{EquipmentID: 1, DateFrom: "2026-07-01", DateTo: "2026-07-10", Quantity: 9},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, equipment, reservations := newEquipmentService(t)
			equipment.On("GetByID", ctx, int32(1)).Return(tent, nil)
			reservations.On("ListItemsByEquipment", ctx, int32(1)).Return(tt.items, nil)

			available, err := svc.GetAvailableQuantity(ctx, 1, "2026-07-02", "2026-07-04")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, available)
		})
	}
}

func TestGetAvailableQuantity_MissingEquipment(t *testing.T) {
	ctx := context.Background()
	svc, equipment, _ := newEquipmentService(t)
	equipment.On("GetByID", ctx, int32(99)).Return(nil, nil)

	available, err := svc.GetAvailableQuantity(ctx, 99, "2026-07-01", "2026-07-02")
	require.NoError(t, err)
	assert.Equal(t, int32(0), available)
}

func TestGetAvailableQuantity_InvalidRange(t *testing.T) {
	svc, _, _ := newEquipmentService(t)

	_, err := svc.GetAvailableQuantity(context.Background(), 1, "2026-07-10", "2026-07-01")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetAvailableQuantity(context.Background(), 1, "garbage", "2026-07-01")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	svc, equipment, reservations := newEquipmentService(t)
	equipment.On("GetByID", ctx, int32(1)).Return(&domain.Equipment{ID: 1, Stock: 3}, nil)
	reservations.On("ListItemsByEquipment", ctx, int32(1)).Return([]domain.ReservationItem{
		{EquipmentID: 1, DateFrom: "2026-07-01", DateTo: "2026-07-05", Quantity: 2},
	}, nil)

	ok, err := svc.CheckAvailability(ctx, 1, "2026-07-04", "2026-07-06", 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckAvailability(ctx, 1, "2026-07-04", "2026-07-06", 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateEquipment_Invalid(t *testing.T) {
	svc, _, _ := newEquipmentService(t)

	err := svc.CreateEquipment(context.Background(), &domain.Equipment{Name: "", Stock: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.CreateEquipment(context.Background(), &domain.Equipment{Name: "Tent", Stock: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateEquipment_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, equipment, _ := newEquipmentService(t)
	equipment.On("Update", ctx, mock.AnythingOfType("*domain.Equipment")).Return(false, nil)

	err := svc.UpdateEquipment(ctx, &domain.Equipment{ID: 42, Name: "Tent"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteEquipment_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, equipment, _ := newEquipmentService(t)
	equipment.On("Delete", ctx, int32(42)).Return(false, nil)

	err := svc.DeleteEquipment(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReorderEquipment(t *testing.T) {
	ctx := context.Background()
	svc, equipment, _ := newEquipmentService(t)

	err := svc.ReorderEquipment(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	updates := []domain.SortOrderUpdate{{ID: 1, SortOrder: 2}, {ID: 2, SortOrder: 1}}
	equipment.On("UpdateSortOrders", ctx, updates).Return(nil)
	require.NoError(t, svc.ReorderEquipment(ctx, updates))
	equipment.AssertExpectations(t)
}
