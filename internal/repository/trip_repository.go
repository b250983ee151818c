package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/bikeshare-go/internal/models"
)

// TimestampLayout is how timestamps are stored in the trips table
const TimestampLayout = "2006-01-02 15:04:05"

// TripRepository handles database operations for trips
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

// TripInserter writes trips through a prepared statement inside a transaction
type TripInserter struct {
	stmt *sql.Stmt
}

// NewInserter prepares the insert statement on tx
func (r *TripRepository) NewInserter(ctx context.Context, tx *sql.Tx) (*TripInserter, error) {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO trips (
		id, start_time, end_time, trip_duration, start_station, end_station,
		user_type, gender, birth_year, month, day_of_week, hour
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare trip insert: %w", err)
	}
	return &TripInserter{stmt: stmt}, nil
}

// Insert writes one trip
func (i *TripInserter) Insert(ctx context.Context, t models.Trip) error {
	var endTime sql.NullString
	if !t.EndTime.IsZero() {
		endTime = sql.NullString{String: t.EndTime.Format(TimestampLayout), Valid: true}
	}
	_, err := i.stmt.ExecContext(ctx,
		t.ID, t.StartTime.Format(TimestampLayout), endTime, t.TripDuration,
		t.StartStation, t.EndStation,
		t.UserType, t.Gender, t.BirthYear,
		t.Month, t.DayOfWeek, t.Hour,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip %d: %w", t.ID, err)
	}
	return nil
}

// Close releases the prepared statement
func (i *TripInserter) Close() error {
	return i.stmt.Close()
}

// CountTrips returns the number of trips matching the filter
func (r *TripRepository) CountTrips(ctx context.Context, filter models.TripFilter) (int64, error) {
	where, args := filter.Where()

	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trips"+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return total, nil
}

// GetTrips retrieves trips matching the filter in source order, each with
// its position in the source file. An offset past the last row yields an
// empty slice.
func (r *TripRepository) GetTrips(ctx context.Context, filter models.TripFilter, offset, limit int) ([]models.Trip, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		return []models.Trip{}, nil
	}

	where, args := filter.Where()
	query := `SELECT seq, id, start_time, end_time, trip_duration, start_station, end_station,
		user_type, gender, birth_year, month, day_of_week, hour
		FROM trips` + where + ` ORDER BY seq LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		var seq int64
		var start string
		var end sql.NullString
		err := rows.Scan(
			&seq, &t.ID, &start, &end, &t.TripDuration, &t.StartStation, &t.EndStation,
			&t.UserType, &t.Gender, &t.BirthYear, &t.Month, &t.DayOfWeek, &t.Hour,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		t.Row = seq - 1
		if t.StartTime, err = time.Parse(TimestampLayout, start); err != nil {
			return nil, fmt.Errorf("failed to parse start time of trip %d: %w", t.ID, err)
		}
		if end.Valid {
			if t.EndTime, err = time.Parse(TimestampLayout, end.String); err != nil {
				return nil, fmt.Errorf("failed to parse end time of trip %d: %w", t.ID, err)
			}
		}
		trips = append(trips, t)
	}

	return trips, rows.Err()
}
