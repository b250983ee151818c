package models

import "strings"

// DayAll disables the day-of-week filter
const DayAll = "all"

// TripFilter represents the month/day selection for one city
type TripFilter struct {
	City  string // chicago, new york, washington
	Month int    // 0 = all, 1 = january ... 6 = june
	Day   string // "all" or a lowercase weekday name
}

// Where renders the filter as a SQL predicate over the trips table.
// The returned clause is empty when no filter applies.
func (f TripFilter) Where() (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if f.Month != 0 {
		conditions = append(conditions, "month = ?")
		args = append(args, f.Month)
	}
	if day := strings.ToLower(strings.TrimSpace(f.Day)); day != "" && day != DayAll {
		conditions = append(conditions, "day_of_week = ?")
		args = append(args, day)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
