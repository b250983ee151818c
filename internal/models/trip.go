package models

import (
	"database/sql"
	"strings"
	"time"
)

// Trip represents one bike rental from a city's trip file
type Trip struct {
	ID  int64 `db:"id"`  // Record id from the source file, or its row number
	Row int64 `db:"seq"` // 0-based position in the source file

	// Raw fields
	StartTime    time.Time      `db:"start_time"`
	EndTime      time.Time      `db:"end_time"`
	TripDuration float64        `db:"trip_duration"` // Seconds
	StartStation string         `db:"start_station"`
	EndStation   string         `db:"end_station"`
	UserType     sql.NullString `db:"user_type"`
	Gender       sql.NullString `db:"gender"`     // chicago and new york only
	BirthYear    sql.NullInt64  `db:"birth_year"` // chicago and new york only

	// Derived from StartTime
	Month     int    `db:"month"`       // 1-12
	DayOfWeek string `db:"day_of_week"` // lowercase full weekday name
	Hour      int    `db:"hour"`        // 0-23
}

// Derive fills the calendar fields from StartTime
func (t *Trip) Derive() {
	t.Month = int(t.StartTime.Month())
	t.DayOfWeek = strings.ToLower(t.StartTime.Weekday().String())
	t.Hour = t.StartTime.Hour()
}

// Dataset is the filtered trip table for one prompt cycle.
//
// It is backed by an in-memory database owned by the dataset; Close
// releases it. Every row visible through a Dataset satisfies Filter.
type Dataset struct {
	DB     *sql.DB
	Filter TripFilter
	Source string // Path of the CSV the rows were read from

	HasGender    bool
	HasBirthYear bool

	TotalRows int64 // Rows in the source before filtering
}

// Close releases the backing database
func (d *Dataset) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// Columns returns the viewer column headers in display order
func (d *Dataset) Columns() []string {
	cols := []string{"Start Time", "End Time", "Trip Duration", "Start Station", "End Station", "User Type"}
	if d.HasGender {
		cols = append(cols, "Gender")
	}
	if d.HasBirthYear {
		cols = append(cols, "Birth Year")
	}
	return append(cols, "month", "day_of_week")
}
