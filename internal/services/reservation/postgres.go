package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dinehub/internal/database"
	"dinehub/internal/models"
)

// PostgresStore persists reservations in PostgreSQL. Writes are
// synchronous; the booking service calls them inside its per-table
// critical section so the availability check stays race-free.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a store over an open database connection.
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, r models.Reservation) error {
	err := s.db.Exec(ctx, database.InsertReservationSQL,
		r.ID, r.RestaurantID, r.TableNumber, r.Time, r.GuestCount,
		string(r.Status), r.SpecialRequests, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (models.Reservation, error) {
	row := s.db.QueryRow(ctx, database.GetReservationByIDSQL, id)

	r, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Reservation{}, ErrReservationNotFound
		}
		return models.Reservation{}, fmt.Errorf("failed to get reservation: %w", err)
	}
	return r, nil
}

// UpdateStatus is a compare-and-set: the UPDATE matches on both id and
// the expected current status, so a row changed by a concurrent writer
// is left alone and reported as ErrStatusConflict.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, from, to models.ReservationStatus) error {
	tag, err := s.db.Pool.Exec(ctx, database.UpdateReservationStatusSQL, string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.Get(ctx, id); errors.Is(err, ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return ErrStatusConflict
	}
	return nil
}

func (s *PostgresStore) ListByRestaurant(ctx context.Context, restaurantID string) ([]models.Reservation, error) {
	rows, err := s.db.Query(ctx, database.ListReservationsByRestaurantSQL, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (s *PostgresStore) ListByTable(ctx context.Context, restaurantID string, tableNumber int) ([]models.Reservation, error) {
	rows, err := s.db.Query(ctx, database.ListReservationsByTableSQL, restaurantID, tableNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list table reservations: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func collectReservations(rows pgx.Rows) ([]models.Reservation, error) {
	var out []models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanReservation(row pgx.Row) (models.Reservation, error) {
	var r models.Reservation
	var status string
	err := row.Scan(
		&r.ID,
		&r.RestaurantID,
		&r.TableNumber,
		&r.Time,
		&r.GuestCount,
		&status,
		&r.SpecialRequests,
		&r.CreatedAt,
	)
	if err != nil {
		return models.Reservation{}, err
	}
	r.Status = models.ReservationStatus(status)
	return r, nil
}
