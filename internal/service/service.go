// Package service contains the business logic for the rental backend.
// Services validate input, enforce availability rules, and coordinate
// repositories, pricing, contract generation, and notifications.
package service

import (
	"context"
	"errors"

	"outdoor-rental-backend/internal/domain"
)

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable indicates the requested quantity cannot be satisfied
	// for the requested date range.
	ErrUnavailable = errors.New("equipment not available")
	// ErrInvalidInput indicates the caller supplied invalid data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized indicates a failed login attempt.
	ErrUnauthorized = errors.New("invalid credentials")
)

// EquipmentService manages the rental catalog and availability queries.
type EquipmentService interface {
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
	GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error)
	CreateEquipment(ctx context.Context, eq *domain.Equipment) error
	UpdateEquipment(ctx context.Context, eq *domain.Equipment) error
	DeleteEquipment(ctx context.Context, id int32) error
	ReorderEquipment(ctx context.Context, updates []domain.SortOrderUpdate) error

	// GetAvailableQuantity returns how many units of the equipment remain
	// free over the inclusive date range.
	GetAvailableQuantity(ctx context.Context, equipmentID int32, dateFrom, dateTo string) (int32, error)
	// CheckAvailability reports whether at least quantity units are free
	// over the inclusive date range.
	CheckAvailability(ctx context.Context, equipmentID int32, dateFrom, dateTo string, quantity int32) (bool, error)
}

// CheckoutResult is returned after a successful cart checkout.
type CheckoutResult struct {
	Reservation *domain.Reservation
	Items       []domain.ReservationItem
	// PaymentQR is the bank payment descriptor encoded in the contract QR.
	PaymentQR string
}

// ItemEdit describes one line of a reservation item replacement.
type ItemEdit struct {
	EquipmentID int32  `json:"equipmentId"`
	DateFrom    string `json:"dateFrom"`
	DateTo      string `json:"dateTo"`
	Quantity    int32  `json:"quantity"`
}

// ReservationService manages bookings from checkout through return.
type ReservationService interface {
	// Checkout validates the cart, re-checks availability per line,
	// reprices every line from the current catalog, persists the
	// reservation, and queues contract delivery.
	Checkout(ctx context.Context, contact domain.ContactInfo, cart []domain.CartItem) (*CheckoutResult, error)

	GetReservation(ctx context.Context, id int32) (*domain.Reservation, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Reservation, error)

	// ListReservations returns all reservations with items attached.
	// Statuses are advanced in place when the calendar has moved past
	// the reservation's dates.
	ListReservations(ctx context.Context) ([]domain.Reservation, error)

	UpdatePeriod(ctx context.Context, id int32, dateFrom, dateTo string, quantity int32) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) (*domain.Reservation, error)
	ReplaceItems(ctx context.Context, id int32, edits []ItemEdit) ([]domain.ReservationItem, error)
	DeleteReservation(ctx context.Context, id int32) error

	// EquipmentCalendar returns the booked date ranges for one piece of
	// equipment, for rendering an availability calendar.
	EquipmentCalendar(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error)

	// BuildContract renders the rental agreement PDF for a reservation.
	BuildContract(ctx context.Context, id int32) ([]byte, error)

	// SyncStatuses advances pending and borrowed reservations whose
	// dates have passed. Returns the number of reservations updated.
	SyncStatuses(ctx context.Context) (int, error)
	// SendReturnReminders emails customers whose rental ends tomorrow.
	// Returns the number of reminders sent.
	SendReturnReminders(ctx context.Context) (int, error)
}

// AuthService authenticates the back-office administrator.
type AuthService interface {
	// Login verifies the credentials and returns a signed session token.
	Login(ctx context.Context, username, password string) (string, error)
}

// EmailService delivers transactional mail.
type EmailService interface {
	// SendContractEmail sends the rental agreement to the customer.
	SendContractEmail(ctx context.Context, to, customerName, orderNumber string, contractPDF []byte) error
	// SendOwnerNotification tells the owner about a new booking.
	SendOwnerNotification(ctx context.Context, customerName, customerEmail, orderNumber string, contractPDF []byte) error
	// SendReturnReminder reminds the customer of tomorrow's return.
	SendReturnReminder(ctx context.Context, to, customerName, orderNumber, dateTo string) error
}
