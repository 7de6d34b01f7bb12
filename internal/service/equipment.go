package service

import (
	"context"
	"fmt"

	"outdoor-rental-backend/internal/domain"
	"outdoor-rental-backend/internal/logger"
	"outdoor-rental-backend/internal/repository"
	"outdoor-rental-backend/internal/utils"
)

type equipmentService struct {
	equipment    repository.EquipmentRepository
	reservations repository.ReservationRepository
}

// NewEquipmentService creates the catalog and availability service.
func NewEquipmentService(equipment repository.EquipmentRepository, reservations repository.ReservationRepository) EquipmentService {
	return &equipmentService{
		equipment:    equipment,
		reservations: reservations,
	}
}

func (s *equipmentService) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	items, err := s.equipment.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return items, nil
}

func (s *equipmentService) GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error) {
	eq, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment %d: %w", id, err)
	}
	if eq == nil {
		return nil, ErrNotFound
	}
	return eq, nil
}

func (s *equipmentService) CreateEquipment(ctx context.Context, eq *domain.Equipment) error {
	if err := eq.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.equipment.Create(ctx, eq); err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	logger.Info("equipment created", "id", eq.ID, "name", eq.Name)
	return nil
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, eq *domain.Equipment) error {
	if err := eq.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	updated, err := s.equipment.Update(ctx, eq)
	if err != nil {
		return fmt.Errorf("failed to update equipment %d: %w", eq.ID, err)
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

func (s *equipmentService) DeleteEquipment(ctx context.Context, id int32) error {
	deleted, err := s.equipment.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment %d: %w", id, err)
	}
	if !deleted {
		return ErrNotFound
	}
	logger.Info("equipment deleted", "id", id)
	return nil
}

func (s *equipmentService) ReorderEquipment(ctx context.Context, updates []domain.SortOrderUpdate) error {
	if len(updates) == 0 {
		return fmt.Errorf("%w: empty reorder list", ErrInvalidInput)
	}
	if err := s.equipment.UpdateSortOrders(ctx, updates); err != nil {
		return fmt.Errorf("failed to reorder equipment: %w", err)
	}
	return nil
}

// GetAvailableQuantity computes free stock as the equipment's total stock
// minus the sum of quantities of every reservation item whose date range
// overlaps the requested one. Reservation status is intentionally not
// consulted, so cancelled and returned bookings still hold their dates.
func (s *equipmentService) GetAvailableQuantity(ctx context.Context, equipmentID int32, dateFrom, dateTo string) (int32, error) {
	if err := domain.ValidateRange(dateFrom, dateTo); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return 0, fmt.Errorf("failed to get equipment %d: %w", equipmentID, err)
	}
	if eq == nil {
		return 0, nil
	}

	items, err := s.reservations.ListItemsByEquipment(ctx, equipmentID)
	if err != nil {
		return 0, fmt.Errorf("failed to list reservation items for equipment %d: %w", equipmentID, err)
	}

	var reserved int32
	for _, it := range items {
		if utils.RangesOverlap(dateFrom, dateTo, it.DateFrom, it.DateTo) {
			reserved += it.Quantity
		}
	}

	available := eq.Stock - reserved
	if available < 0 {
		available = 0
	}
	return available, nil
}

func (s *equipmentService) CheckAvailability(ctx context.Context, equipmentID int32, dateFrom, dateTo string, quantity int32) (bool, error) {
	available, err := s.GetAvailableQuantity(ctx, equipmentID, dateFrom, dateTo)
	if err != nil {
		return false, err
	}
	return available >= quantity, nil
}
