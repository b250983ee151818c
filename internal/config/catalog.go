package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownCity is returned when a city is not part of the catalog
var ErrUnknownCity = errors.New("unknown city")

var months = []string{"all", "january", "february", "march", "april", "may", "june"}

var days = []string{"all", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Catalog holds the fixed enumerations the prompts validate against and the
// city to source file mapping the loader resolves through. A Catalog is
// never mutated after construction; accessors hand out copies.
type Catalog struct {
	cityNames []string
	sources   map[string]string
}

// NewCatalog builds a catalog resolving city files relative to dataDir
func NewCatalog(dataDir string, cities []CitySource) Catalog {
	c := Catalog{
		cityNames: make([]string, 0, len(cities)),
		sources:   make(map[string]string, len(cities)),
	}
	for _, city := range cities {
		name := normalize(city.Name)
		c.cityNames = append(c.cityNames, name)
		c.sources[name] = filepath.Join(dataDir, city.File)
	}
	return c
}

// Cities returns the accepted city names in configuration order
func (c Catalog) Cities() []string {
	return append([]string(nil), c.cityNames...)
}

// Months returns "all" followed by the supported month names; a month's
// index in this slice is its filter value.
func (c Catalog) Months() []string {
	return append([]string(nil), months...)
}

// Days returns "all" followed by the weekday names, monday first
func (c Catalog) Days() []string {
	return append([]string(nil), days...)
}

// Source resolves a city name to its CSV path
func (c Catalog) Source(city string) (string, error) {
	path, ok := c.sources[normalize(city)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	return path, nil
}

// MonthIndex returns the filter value for a month name: 0 for "all",
// 1 for january through 6 for june.
func (c Catalog) MonthIndex(name string) (int, bool) {
	name = normalize(name)
	for i, m := range months {
		if m == name {
			return i, true
		}
	}
	return 0, false
}

// IsDay reports whether name is "all" or a weekday name
func (c Catalog) IsDay(name string) bool {
	name = normalize(name)
	for _, d := range days {
		if d == name {
			return true
		}
	}
	return false
}

// IsCity reports whether name is one of the configured cities
func (c Catalog) IsCity(name string) bool {
	_, ok := c.sources[normalize(name)]
	return ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
