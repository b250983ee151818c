package models

// ValueCount is one bucket of a frequency table
type ValueCount struct {
	Value string
	Valid bool // false for the missing-value bucket
	Count int64
}

// TimeStats represents the most frequent times of travel
type TimeStats struct {
	Rows int64

	// Nil when the dataset is empty
	Month     *int
	DayOfWeek *string
	Hour      *int
}

// StationStats represents the most popular stations and trip
type StationStats struct {
	Rows int64

	StartStation *string
	EndStation   *string

	// Most frequent (start, end) pair; nil when the dataset is empty
	Trip *StationPair
}

// StationPair is a start/end station combination and how often it occurs
type StationPair struct {
	StartStation string
	EndStation   string
	Count        int64
}

// DurationStats represents total and mean trip duration
type DurationStats struct {
	Rows int64

	TotalSeconds int64
	// Nil when the dataset is empty
	MeanSeconds *int64
}

// UserStats represents rider demographics
type UserStats struct {
	Rows int64

	UserTypes []ValueCount

	HasGender bool
	Genders   []ValueCount

	HasBirthYear bool
	BirthYears   *BirthYearStats // Nil when no birth year is present
}

// BirthYearStats holds earliest, most recent and most common birth year
type BirthYearStats struct {
	Earliest   int
	MostRecent int
	MostCommon int
}
