package service

import (
	"context"
	"fmt"
	"time"

	"outdoor-rental-backend/internal/contract"
	"outdoor-rental-backend/internal/domain"
	"outdoor-rental-backend/internal/logger"
	"outdoor-rental-backend/internal/repository"
	"outdoor-rental-backend/internal/utils"
)

// Notifier queues best-effort contract delivery after checkout. Failures
// never surface to the customer.
type Notifier interface {
	EnqueueContract(data contract.ContractData, customerEmail string)
}

type reservationService struct {
	reservations repository.ReservationRepository
	equipment    repository.EquipmentRepository
	availability EquipmentService
	counter      *utils.OrderCounter
	contracts    *contract.Generator
	notifier     Notifier
	email        EmailService
}

// NewReservationService creates the booking service. The order number
// counter is seeded from persisted order numbers so restarts continue the
// yearly sequence; if seeding fails the sequence restarts at 1.
func NewReservationService(
	reservations repository.ReservationRepository,
	equipment repository.EquipmentRepository,
	availability EquipmentService,
	contracts *contract.Generator,
	notifier Notifier,
	email EmailService,
) ReservationService {
	counter := utils.NewOrderCounter()
	existing, err := reservations.ListOrderNumbers(context.Background())
	if err != nil {
		logger.Error("failed to seed order counter, starting sequence at 1", "error", err)
	} else {
		counter.Seed(existing)
	}

	return &reservationService{
		reservations: reservations,
		equipment:    equipment,
		availability: availability,
		counter:      counter,
		contracts:    contracts,
		notifier:     notifier,
		email:        email,
	}
}

func validateContact(c domain.ContactInfo) error {
	switch {
	case c.CustomerName == "":
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	case c.CustomerEmail == "":
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	case c.CustomerPhone == "":
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	case c.CustomerAddress == "":
		return fmt.Errorf("%w: customerAddress is required", ErrInvalidInput)
	case c.PickupLocation == "":
		return fmt.Errorf("%w: pickupLocation is required", ErrInvalidInput)
	}
	return nil
}

func (s *reservationService) Checkout(ctx context.Context, contact domain.ContactInfo, cart []domain.CartItem) (*CheckoutResult, error) {
	if err := validateContact(contact); err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	}

	// Reprice and re-check every line against the current catalog. Client
	// supplied prices are ignored.
	type pricedLine struct {
		equipment *domain.Equipment
		cart      domain.CartItem
		days      int32
		daily     int32
		total     int32
	}
	lines := make([]pricedLine, 0, len(cart))
	for _, item := range cart {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
		}
		if err := domain.ValidateRange(item.DateFrom, item.DateTo); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		eq, err := s.equipment.GetByID(ctx, item.EquipmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get equipment %d: %w", item.EquipmentID, err)
		}
		if eq == nil {
			return nil, fmt.Errorf("%w: unknown equipment %d", ErrInvalidInput, item.EquipmentID)
		}

		ok, err := s.availability.CheckAvailability(ctx, item.EquipmentID, item.DateFrom, item.DateTo, item.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s for %s to %s", ErrUnavailable, eq.Name, item.DateFrom, item.DateTo)
		}

		days, err := utils.CalculateBillableDays(item.DateFrom, item.DateTo)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		daily := utils.TieredPrice(days, eq.Price1To3Days, eq.Price4To7Days, eq.Price8PlusDays)
		rental := daily * item.Quantity * days
		lines = append(lines, pricedLine{
			equipment: eq,
			cart:      item,
			days:      days,
			daily:     daily,
			total:     rental + eq.Deposit*item.Quantity,
		})
	}

	var totalPrice, totalDeposit, totalQuantity int32
	for _, l := range lines {
		totalPrice += l.total
		totalDeposit += l.equipment.Deposit * l.cart.Quantity
		totalQuantity += l.cart.Quantity
	}

	reservation := &domain.Reservation{
		OrderNumber:     s.counter.Next(),
		EquipmentID:     lines[0].cart.EquipmentID,
		DateFrom:        lines[0].cart.DateFrom,
		DateTo:          lines[0].cart.DateTo,
		CustomerName:    contact.CustomerName,
		CustomerEmail:   contact.CustomerEmail,
		CustomerPhone:   contact.CustomerPhone,
		CustomerAddress: contact.CustomerAddress,
		CustomerNote:    contact.CustomerNote,
		PickupLocation:  contact.PickupLocation,
		TotalPrice:      totalPrice,
		TotalDeposit:    totalDeposit,
		Quantity:        totalQuantity,
		Status:          domain.ReservationStatusPending,
	}
	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	items := make([]domain.ReservationItem, 0, len(lines))
	contractItems := make([]contract.ContractItem, 0, len(lines))
	for _, l := range lines {
		item := domain.ReservationItem{
			ReservationID: reservation.ID,
			EquipmentID:   l.cart.EquipmentID,
			DateFrom:      l.cart.DateFrom,
			DateTo:        l.cart.DateTo,
			Days:          l.days,
			Quantity:      l.cart.Quantity,
			DailyPrice:    l.daily,
			TotalPrice:    l.total,
			Deposit:       l.equipment.Deposit,
		}
		if err := s.reservations.CreateItem(ctx, &item); err != nil {
			return nil, fmt.Errorf("failed to create reservation item: %w", err)
		}
		items = append(items, item)
		contractItems = append(contractItems, contract.ContractItem{
			Name:       l.equipment.Name,
			Quantity:   l.cart.Quantity,
			Days:       l.days,
			DailyPrice: l.daily,
			Deposit:    l.equipment.Deposit,
			TotalPrice: l.total,
		})
	}

	logger.Info("reservation created",
		"orderNumber", reservation.OrderNumber,
		"customer", reservation.CustomerName,
		"items", len(items),
		"totalPrice", totalPrice)

	data := contract.ContractData{
		OrderNumber:     reservation.OrderNumber,
		CustomerName:    reservation.CustomerName,
		CustomerEmail:   reservation.CustomerEmail,
		CustomerPhone:   reservation.CustomerPhone,
		CustomerAddress: reservation.CustomerAddress,
		PickupLocation:  reservation.PickupLocation,
		DateFrom:        reservation.DateFrom,
		DateTo:          reservation.DateTo,
		TotalPrice:      totalPrice,
		TotalDeposit:    totalDeposit,
		Items:           contractItems,
	}
	if s.notifier != nil {
		s.notifier.EnqueueContract(data, reservation.CustomerEmail)
	}

	return &CheckoutResult{
		Reservation: reservation,
		Items:       items,
		PaymentQR:   s.contracts.PaymentQRPayload(reservation.OrderNumber, totalPrice),
	}, nil
}

func (s *reservationService) GetReservation(ctx context.Context, id int32) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation %d: %w", id, err)
	}
	if r == nil {
		return nil, ErrNotFound
	}
	if err := s.attachItems(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *reservationService) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Reservation, error) {
	r, err := s.reservations.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation %s: %w", orderNumber, err)
	}
	if r == nil {
		return nil, ErrNotFound
	}
	if err := s.attachItems(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *reservationService) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	reservations, err := s.reservations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	today := time.Now().Format(domain.DateLayout)
	for i := range reservations {
		r := &reservations[i]
		if next := r.AutoStatus(today); next != r.Status {
			if _, err := s.reservations.UpdateStatus(ctx, r.ID, next); err != nil {
				logger.Error("failed to advance reservation status", "id", r.ID, "error", err)
			} else {
				r.Status = next
			}
		}
		if err := s.attachItems(ctx, r); err != nil {
			return nil, err
		}
	}
	return reservations, nil
}

func (s *reservationService) UpdatePeriod(ctx context.Context, id int32, dateFrom, dateTo string, quantity int32) (*domain.Reservation, error) {
	if err := domain.ValidateRange(dateFrom, dateTo); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	updated, err := s.reservations.UpdatePeriod(ctx, id, dateFrom, dateTo, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation %d: %w", id, err)
	}
	if !updated {
		return nil, ErrNotFound
	}
	return s.GetReservation(ctx, id)
}

func (s *reservationService) UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) (*domain.Reservation, error) {
	if !domain.ValidStatus(string(status)) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	updated, err := s.reservations.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation %d status: %w", id, err)
	}
	if !updated {
		return nil, ErrNotFound
	}
	logger.Info("reservation status updated", "id", id, "status", status)
	return s.GetReservation(ctx, id)
}

// ReplaceItems swaps the line items of a reservation, repricing each line
// from the current catalog tiers.
func (s *reservationService) ReplaceItems(ctx context.Context, id int32, edits []ItemEdit) ([]domain.ReservationItem, error) {
	if len(edits) == 0 {
		return nil, fmt.Errorf("%w: items must not be empty", ErrInvalidInput)
	}
	existing, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation %d: %w", id, err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	items := make([]domain.ReservationItem, 0, len(edits))
	for _, edit := range edits {
		if edit.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
		}
		if err := domain.ValidateRange(edit.DateFrom, edit.DateTo); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		eq, err := s.equipment.GetByID(ctx, edit.EquipmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get equipment %d: %w", edit.EquipmentID, err)
		}
		if eq == nil {
			return nil, fmt.Errorf("%w: unknown equipment %d", ErrInvalidInput, edit.EquipmentID)
		}
		days, err := utils.CalculateBillableDays(edit.DateFrom, edit.DateTo)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		daily := utils.TieredPrice(days, eq.Price1To3Days, eq.Price4To7Days, eq.Price8PlusDays)
		items = append(items, domain.ReservationItem{
			ReservationID: id,
			EquipmentID:   edit.EquipmentID,
			DateFrom:      edit.DateFrom,
			DateTo:        edit.DateTo,
			Days:          days,
			Quantity:      edit.Quantity,
			DailyPrice:    daily,
			TotalPrice:    daily*days*edit.Quantity + eq.Deposit*edit.Quantity,
			Deposit:       eq.Deposit,
		})
	}

	if err := s.reservations.DeleteItems(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete reservation %d items: %w", id, err)
	}
	for i := range items {
		if err := s.reservations.CreateItem(ctx, &items[i]); err != nil {
			return nil, fmt.Errorf("failed to create reservation item: %w", err)
		}
	}
	return items, nil
}

func (s *reservationService) DeleteReservation(ctx context.Context, id int32) error {
	deleted, err := s.reservations.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete reservation %d: %w", id, err)
	}
	if !deleted {
		return ErrNotFound
	}
	logger.Info("reservation deleted", "id", id)
	return nil
}

func (s *reservationService) EquipmentCalendar(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error) {
	items, err := s.reservations.ListItemsByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for equipment %d: %w", equipmentID, err)
	}
	return items, nil
}

func (s *reservationService) BuildContract(ctx context.Context, id int32) ([]byte, error) {
	r, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.contractData(ctx, r)
	if err != nil {
		return nil, err
	}
	pdf, err := s.contracts.Generate(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate contract for %s: %w", r.OrderNumber, err)
	}
	return pdf, nil
}

func (s *reservationService) SyncStatuses(ctx context.Context) (int, error) {
	reservations, err := s.reservations.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list reservations: %w", err)
	}

	today := time.Now().Format(domain.DateLayout)
	updated := 0
	for _, r := range reservations {
		next := r.AutoStatus(today)
		if next == r.Status {
			continue
		}
		if _, err := s.reservations.UpdateStatus(ctx, r.ID, next); err != nil {
			logger.Error("failed to advance reservation status", "id", r.ID, "error", err)
			continue
		}
		logger.Info("reservation status advanced", "id", r.ID, "from", r.Status, "to", next)
		updated++
	}
	return updated, nil
}

func (s *reservationService) SendReturnReminders(ctx context.Context) (int, error) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(domain.DateLayout)
	ending, err := s.reservations.ListEndingOn(ctx, tomorrow)
	if err != nil {
		return 0, fmt.Errorf("failed to list reservations ending on %s: %w", tomorrow, err)
	}

	sent := 0
	for _, r := range ending {
		err := s.email.SendReturnReminder(ctx, r.CustomerEmail, r.CustomerName, r.OrderNumber, r.DateTo)
		if err != nil {
			logger.Error("failed to send return reminder", "orderNumber", r.OrderNumber, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *reservationService) attachItems(ctx context.Context, r *domain.Reservation) error {
	items, err := s.reservations.ListItems(ctx, r.ID)
	if err != nil {
		return fmt.Errorf("failed to list reservation %d items: %w", r.ID, err)
	}
	r.Items = items
	return nil
}

// contractData assembles the printable view of a reservation. Equipment
// removed from the catalog since booking falls back to a placeholder name.
func (s *reservationService) contractData(ctx context.Context, r *domain.Reservation) (contract.ContractData, error) {
	items := make([]contract.ContractItem, 0, len(r.Items))
	for _, it := range r.Items {
		name := fmt.Sprintf("Equipment #%d", it.EquipmentID)
		if eq, err := s.equipment.GetByID(ctx, it.EquipmentID); err == nil && eq != nil {
			name = eq.Name
		}
		items = append(items, contract.ContractItem{
			Name:       name,
			Quantity:   it.Quantity,
			Days:       it.Days,
			DailyPrice: it.DailyPrice,
			Deposit:    it.Deposit,
			TotalPrice: it.TotalPrice,
		})
	}
	return contract.ContractData{
		OrderNumber:     r.OrderNumber,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		PickupLocation:  r.PickupLocation,
		DateFrom:        r.DateFrom,
		DateTo:          r.DateTo,
		TotalPrice:      r.TotalPrice,
		TotalDeposit:    r.TotalDeposit,
		Items:           items,
	}, nil
}
