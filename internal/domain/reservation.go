package domain

import (
	"errors"
	"time"
)

type ReservationStatus string

// Persisted status values. These strings are part of the API contract with
// the admin UI and must not be renamed.
const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusBorrowed  ReservationStatus = "borrowed"
	ReservationStatusReturned  ReservationStatus = "returned"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

var (
	ErrEmptyName     = errors.New("name must not be empty")
	ErrNegativeStock = errors.New("stock must not be negative")
	ErrNegativePrice = errors.New("prices must not be negative")
	ErrInvalidRange  = errors.New("dateFrom must not be after dateTo")
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Reservation is one customer order covering a date range. Line items live
// in ReservationItem; totals here are the sums frozen at booking time.
type Reservation struct {
	ID              int32             `json:"id"`
	OrderNumber     string            `json:"orderNumber"`
	EquipmentID     int32             `json:"equipmentId"`
	DateFrom        string            `json:"dateFrom"`
	DateTo          string            `json:"dateTo"`
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	CustomerPhone   string            `json:"customerPhone"`
	CustomerAddress string            `json:"customerAddress"`
	CustomerNote    string            `json:"customerNote,omitempty"`
	PickupLocation  string            `json:"pickupLocation"`
	TotalPrice      int32             `json:"totalPrice"`
	TotalDeposit    int32             `json:"totalDeposit"`
	Quantity        int32             `json:"quantity"`
	Status          ReservationStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`

	// Items is populated on admin listings and order lookups.
	Items []ReservationItem `json:"items,omitempty"`
}

// ReservationItem is one cart line of a reservation. The daily price is the
// tiered rate frozen at booking time; deposit is per unit.
type ReservationItem struct {
	ID            int32  `json:"id"`
	ReservationID int32  `json:"reservationId"`
	EquipmentID   int32  `json:"equipmentId"`
	DateFrom      string `json:"dateFrom"`
	DateTo        string `json:"dateTo"`
	Days          int32  `json:"days"`
	Quantity      int32  `json:"quantity"`
	DailyPrice    int32  `json:"dailyPrice"`
	TotalPrice    int32  `json:"totalPrice"`
	Deposit       int32  `json:"deposit"`
}

// ValidStatus reports whether s is one of the four persisted status values.
func ValidStatus(s string) bool {
	switch ReservationStatus(s) {
	case ReservationStatusPending, ReservationStatusBorrowed,
		ReservationStatusReturned, ReservationStatusCancelled:
		return true
	}
	return false
}

// ValidateRange checks that both dates parse and dateFrom <= dateTo.
func ValidateRange(dateFrom, dateTo string) error {
	from, err := time.Parse(DateLayout, dateFrom)
	if err != nil {
		return err
	}
	to, err := time.Parse(DateLayout, dateTo)
	if err != nil {
		return err
	}
	if from.After(to) {
		return ErrInvalidRange
	}
	return nil
}

// AutoStatus derives the effective status from the calendar: a pending
// reservation becomes borrowed once the rental period starts and returned
// once it is over. Cancelled and manually returned reservations are left
// alone.
func (r *Reservation) AutoStatus(today string) ReservationStatus {
	switch r.Status {
	case ReservationStatusPending:
		if today > r.DateTo {
			return ReservationStatusReturned
		}
		if today >= r.DateFrom {
			return ReservationStatusBorrowed
		}
	case ReservationStatusBorrowed:
		if today > r.DateTo {
			return ReservationStatusReturned
		}
	}
	return r.Status
}
