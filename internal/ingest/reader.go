// Package ingest reads city trip files into Trip records.
//
// Files are comma separated with a header row. Columns are located by
// header name, case-insensitively, so column order does not matter. A
// leading column with an empty header holds the record id; files without
// one get the 1-based row number as id.
package ingest

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/bikeshare-go/internal/models"
)

// ErrMissingColumn is returned when a required column is absent from the header
var ErrMissingColumn = errors.New("missing required column")

// Column names as they appear in the source header
const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColTripDuration = "Trip Duration"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

var required = []string{ColStartTime, ColTripDuration, ColStartStation, ColEndStation}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// Reader streams trips out of a CSV source
type Reader struct {
	csvr *csv.Reader
	line int

	id, startTime, endTime, duration   int
	startStation, endStation, userType int
	gender, birthYear                  int
}

// NewReader reads the header from r and locates every column
func NewReader(r io.Reader) (*Reader, error) {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	csvr.ReuseRecord = true

	head, err := csvr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	head = append([]string(nil), head...)
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}

	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}

	for _, col := range required {
		if idx(col) < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	rd := &Reader{
		csvr:         csvr,
		line:         1,
		id:           -1,
		startTime:    idx(ColStartTime),
		endTime:      idx(ColEndTime),
		duration:     idx(ColTripDuration),
		startStation: idx(ColStartStation),
		endStation:   idx(ColEndStation),
		userType:     idx(ColUserType),
		gender:       idx(ColGender),
		birthYear:    idx(ColBirthYear),
	}
	if strings.TrimSpace(head[0]) == "" {
		rd.id = 0
	}
	return rd, nil
}

// HasGender reports whether the source carries a gender column
func (r *Reader) HasGender() bool { return r.gender >= 0 }

// HasBirthYear reports whether the source carries a birth year column
func (r *Reader) HasBirthYear() bool { return r.birthYear >= 0 }

// Next returns the next trip, or io.EOF after the last row
func (r *Reader) Next() (models.Trip, error) {
	row, err := r.csvr.Read()
	if err != nil {
		if err == io.EOF {
			return models.Trip{}, io.EOF
		}
		return models.Trip{}, fmt.Errorf("failed to read row %d: %w", r.line, err)
	}
	r.line++

	trip, err := r.parse(row)
	if err != nil {
		return models.Trip{}, fmt.Errorf("row %d: %w", r.line-1, err)
	}
	return trip, nil
}

func (r *Reader) parse(row []string) (models.Trip, error) {
	var t models.Trip
	var err error

	t.ID = int64(r.line - 1)
	if v := field(row, r.id); v != "" {
		if t.ID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return t, fmt.Errorf("invalid record id %q", v)
		}
	}

	if t.StartTime, err = ParseTime(field(row, r.startTime)); err != nil {
		return t, err
	}
	if v := field(row, r.endTime); v != "" {
		if t.EndTime, err = ParseTime(v); err != nil {
			return t, err
		}
	}

	if v := field(row, r.duration); v != "" {
		if t.TripDuration, err = strconv.ParseFloat(v, 64); err != nil {
			return t, fmt.Errorf("invalid trip duration %q", v)
		}
	}

	t.StartStation = field(row, r.startStation)
	t.EndStation = field(row, r.endStation)
	t.UserType = nullString(field(row, r.userType))
	t.Gender = nullString(field(row, r.gender))

	// Birth years are written as floats ("1989.0") in some files
	if v := field(row, r.birthYear); v != "" {
		year, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return t, fmt.Errorf("invalid birth year %q", v)
		}
		t.BirthYear = sql.NullInt64{Int64: int64(math.Round(year)), Valid: true}
	}

	t.Derive()
	return t, nil
}

// ParseTime parses a trip timestamp in any of the layouts seen in city files
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
