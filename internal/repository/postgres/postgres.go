package postgres

import (
	"database/sql"

	"outdoor-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.EquipmentRepository
	repository.ReservationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		EquipmentRepository:   NewEquipmentRepository(db),
		ReservationRepository: NewReservationRepository(db),
	}
}
