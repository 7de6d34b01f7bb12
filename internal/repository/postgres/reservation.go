package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"outdoor-rental-backend/internal/domain"
	"outdoor-rental-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, order_number, equipment_id, date_from::text, date_to::text, customer_name, customer_email, customer_phone, customer_address, COALESCE(customer_note, ''), pickup_location, total_price, total_deposit, quantity, status, created_at`

func scanReservation(row interface{ Scan(...any) error }) (*domain.Reservation, error) {
	r := &domain.Reservation{}
	err := row.Scan(&r.ID, &r.OrderNumber, &r.EquipmentID, &r.DateFrom, &r.DateTo,
		&r.CustomerName, &r.CustomerEmail, &r.CustomerPhone, &r.CustomerAddress,
		&r.CustomerNote, &r.PickupLocation, &r.TotalPrice, &r.TotalDeposit,
		&r.Quantity, &r.Status, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `INSERT INTO reservations (order_number, equipment_id, date_from, date_to, customer_name, customer_email, customer_phone, customer_address, customer_note, pickup_location, total_price, total_deposit, quantity, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, res.OrderNumber, res.EquipmentID, res.DateFrom, res.DateTo,
		res.CustomerName, res.CustomerEmail, res.CustomerPhone, res.CustomerAddress, res.CustomerNote,
		res.PickupLocation, res.TotalPrice, res.TotalDeposit, res.Quantity, res.Status, now).Scan(&res.ID)
	if err != nil {
		return err
	}
	res.CreatedAt = now
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

func (r *reservationRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE order_number = $1`
	res, err := scanReservation(r.db.QueryRowContext(ctx, query, orderNumber))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

func (r *reservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *res)
	}
	return list, rows.Err()
}

func (r *reservationRepository) ListOrderNumbers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT order_number FROM reservations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

func (r *reservationRepository) ListEndingOn(ctx context.Context, date string) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE date_to = $1 AND status IN ('pending', 'borrowed')`
	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *res)
	}
	return list, rows.Err()
}

func (r *reservationRepository) UpdatePeriod(ctx context.Context, id int32, dateFrom, dateTo string, quantity int32) (bool, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE reservations SET date_from = $1, date_to = $2, quantity = $3 WHERE id = $4`, dateFrom, dateTo, quantity, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE reservations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Delete removes a reservation together with its line items.
func (r *reservationRepository) Delete(ctx context.Context, id int32) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reservation_items WHERE reservation_id = $1`, id); err != nil {
		return false, err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *reservationRepository) CreateItem(ctx context.Context, item *domain.ReservationItem) error {
	query := `INSERT INTO reservation_items (reservation_id, equipment_id, date_from, date_to, days, quantity, daily_price, total_price, deposit)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, item.ReservationID, item.EquipmentID, item.DateFrom, item.DateTo,
		item.Days, item.Quantity, item.DailyPrice, item.TotalPrice, item.Deposit).Scan(&item.ID)
}

const itemColumns = `id, reservation_id, equipment_id, date_from::text, date_to::text, days, quantity, daily_price, total_price, deposit`

func (r *reservationRepository) ListItems(ctx context.Context, reservationID int32) ([]domain.ReservationItem, error) {
	query := `SELECT ` + itemColumns + ` FROM reservation_items WHERE reservation_id = $1 ORDER BY id ASC`
	return r.queryItems(ctx, query, reservationID)
}

func (r *reservationRepository) DeleteItems(ctx context.Context, reservationID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reservation_items WHERE reservation_id = $1`, reservationID)
	return err
}

// ListItemsByEquipment returns every line item ever booked for the
// equipment, regardless of the parent reservation's status. Availability
// sums are computed over this set.
func (r *reservationRepository) ListItemsByEquipment(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error) {
	query := `SELECT ` + itemColumns + ` FROM reservation_items WHERE equipment_id = $1`
	return r.queryItems(ctx, query, equipmentID)
}

func (r *reservationRepository) queryItems(ctx context.Context, query string, arg any) ([]domain.ReservationItem, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ReservationItem
	for rows.Next() {
		var it domain.ReservationItem
		if err := rows.Scan(&it.ID, &it.ReservationID, &it.EquipmentID, &it.DateFrom, &it.DateTo,
			&it.Days, &it.Quantity, &it.DailyPrice, &it.TotalPrice, &it.Deposit); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
