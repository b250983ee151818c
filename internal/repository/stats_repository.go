package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/bikeshare-go/internal/models"
)

// Columns that may be grouped on. Column names are never taken from input.
const (
	ColumnMonth        = "month"
	ColumnDayOfWeek    = "day_of_week"
	ColumnHour         = "hour"
	ColumnStartStation = "start_station"
	ColumnEndStation   = "end_station"
	ColumnUserType     = "user_type"
	ColumnGender       = "gender"
)

var groupable = map[string]bool{
	ColumnMonth:        true,
	ColumnDayOfWeek:    true,
	ColumnHour:         true,
	ColumnStartStation: true,
	ColumnEndStation:   true,
	ColumnUserType:     true,
	ColumnGender:       true,
}

// StatsRepository handles aggregate queries over the trips table
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetMode returns the most frequent value of column among the filtered
// trips. Null and blank values are skipped. Ties go to the smallest value.
// ok is false when no trip has a value.
func (r *StatsRepository) GetMode(ctx context.Context, filter models.TripFilter, column string) (value string, count int64, ok bool, err error) {
	if !groupable[column] {
		return "", 0, false, fmt.Errorf("column %q cannot be grouped", column)
	}

	where, args := filter.Where()
	query := `SELECT CAST(` + column + ` AS TEXT), COUNT(*) AS cnt
		FROM trips` + and(where, present(column)) + `
		GROUP BY ` + column + `
		ORDER BY cnt DESC, ` + column + ` ASC
		LIMIT 1`

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value, &count)
	if err == sql.ErrNoRows {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, fmt.Errorf("failed to get mode of %s: %w", column, err)
	}
	return value, count, true, nil
}

// GetPopularTrip returns the most frequent start/end station pair. Trips with
// a blank station are skipped. Ties go to the first pair in ascending
// (start, end) order. Nil when no trip has both stations.
func (r *StatsRepository) GetPopularTrip(ctx context.Context, filter models.TripFilter) (*models.StationPair, error) {
	where, args := filter.Where()
	query := `SELECT start_station, end_station, COUNT(*) AS cnt
		FROM trips` + and(where, present(ColumnStartStation)+" AND "+present(ColumnEndStation)) + `
		GROUP BY start_station, end_station
		ORDER BY cnt DESC, start_station ASC, end_station ASC
		LIMIT 1`

	var p models.StationPair
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.StartStation, &p.EndStation, &p.Count)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get popular trip: %w", err)
	}
	return &p, nil
}

// GetValueCounts returns a frequency table of column including a bucket for
// missing values, ordered by descending count then ascending value with the
// missing bucket last among equals.
func (r *StatsRepository) GetValueCounts(ctx context.Context, filter models.TripFilter, column string) ([]models.ValueCount, error) {
	if !groupable[column] {
		return nil, fmt.Errorf("column %q cannot be grouped", column)
	}

	where, args := filter.Where()
	query := `SELECT CAST(` + column + ` AS TEXT), COUNT(*) AS cnt
		FROM trips` + where + `
		GROUP BY ` + column + `
		ORDER BY cnt DESC, ` + column + ` IS NULL, ` + column + ` ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query value counts of %s: %w", column, err)
	}
	defer rows.Close()

	counts := []models.ValueCount{}
	for rows.Next() {
		var v sql.NullString
		var vc models.ValueCount
		if err := rows.Scan(&v, &vc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan value count: %w", err)
		}
		vc.Value, vc.Valid = v.String, v.Valid
		counts = append(counts, vc)
	}

	return counts, rows.Err()
}

// GetDurations returns the trip durations in seconds of the filtered trips
func (r *StatsRepository) GetDurations(ctx context.Context, filter models.TripFilter) ([]float64, error) {
	where, args := filter.Where()
	return r.floats(ctx, "SELECT trip_duration FROM trips"+where+" ORDER BY seq", args, "trip durations")
}

// GetBirthYears returns the non-missing birth years of the filtered trips
func (r *StatsRepository) GetBirthYears(ctx context.Context, filter models.TripFilter) ([]float64, error) {
	where, args := filter.Where()
	query := "SELECT birth_year FROM trips" + and(where, "birth_year IS NOT NULL") + " ORDER BY seq"
	return r.floats(ctx, query, args, "birth years")
}

func (r *StatsRepository) floats(ctx context.Context, query string, args []interface{}, what string) ([]float64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	defer rows.Close()

	values := []float64{}
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

// present is the condition that column holds a value
func present(column string) string {
	return column + " IS NOT NULL AND " + column + " <> ''"
}

// and appends a condition to a WHERE clause rendered by TripFilter.Where
func and(where, cond string) string {
	if where == "" {
		return " WHERE " + cond
	}
	return where + " AND " + cond
}
