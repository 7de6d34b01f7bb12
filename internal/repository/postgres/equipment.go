package postgres

import (
	"context"
	"database/sql"
	"errors"

	"outdoor-rental-backend/internal/domain"
	"outdoor-rental-backend/internal/repository"

	"github.com/lib/pq"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	query := `INSERT INTO equipment (name, description, daily_price, price_1_to_3_days, price_4_to_7_days, price_8_plus_days, deposit, stock, image_url, sort_order, categories)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.Name, e.Description, e.DailyPrice, e.Price1To3Days, e.Price4To7Days, e.Price8PlusDays, e.Deposit, e.Stock, e.ImageURL, e.SortOrder, pq.Array(e.Categories)).Scan(&e.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	query := `SELECT id, name, COALESCE(description, ''), daily_price, price_1_to_3_days, price_4_to_7_days, price_8_plus_days, deposit, stock, image_url, sort_order, categories FROM equipment WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Description, &e.DailyPrice, &e.Price1To3Days, &e.Price4To7Days, &e.Price8PlusDays, &e.Deposit, &e.Stock, &e.ImageURL, &e.SortOrder, pq.Array(&e.Categories))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	query := `SELECT id, name, COALESCE(description, ''), daily_price, price_1_to_3_days, price_4_to_7_days, price_8_plus_days, deposit, stock, image_url, sort_order, categories
	          FROM equipment ORDER BY sort_order ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.DailyPrice, &e.Price1To3Days, &e.Price4To7Days, &e.Price8PlusDays, &e.Deposit, &e.Stock, &e.ImageURL, &e.SortOrder, pq.Array(&e.Categories)); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) (bool, error) {
	query := `UPDATE equipment SET name=$1, description=$2, daily_price=$3, price_1_to_3_days=$4, price_4_to_7_days=$5, price_8_plus_days=$6, deposit=$7, stock=$8, image_url=$9, sort_order=$10, categories=$11 WHERE id=$12`
	result, err := r.db.ExecContext(ctx, query, e.Name, e.Description, e.DailyPrice, e.Price1To3Days, e.Price4To7Days, e.Price8PlusDays, e.Deposit, e.Stock, e.ImageURL, e.SortOrder, pq.Array(e.Categories), e.ID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id int32) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *equipmentRepository) UpdateSortOrders(ctx context.Context, orders []domain.SortOrderUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, o := range orders {
		if _, err := tx.ExecContext(ctx, `UPDATE equipment SET sort_order = $1 WHERE id = $2`, o.SortOrder, o.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
