// Package prompt asks the user for the trip filter and yes/no answers on a
// line-oriented terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jengzang/bikeshare-go/internal/config"
	"github.com/jengzang/bikeshare-go/internal/models"
	"github.com/jengzang/bikeshare-go/pkg/response"
)

const greeting = "Hello! Let's explore some US bikeshare data!"

const (
	monthRetry = "Please type out the full month name or all:"
	dayRetry   = "Please type out the full weekday name or all:"
)

// Collector reads answers from in and writes questions to out
type Collector struct {
	in      *bufio.Reader
	out     io.Writer
	catalog config.Catalog
	logger  *slog.Logger

	cityQuestion  string
	cityRetry     string
	monthQuestion string
	dayQuestion   string
}

// NewCollector creates a collector validating against catalog. The
// questions list the catalog's choices.
func NewCollector(in io.Reader, out io.Writer, catalog config.Catalog, logger *slog.Logger) *Collector {
	cities := choices(catalog.Cities(), ", or ")
	return &Collector{
		in:      bufio.NewReader(in),
		out:     out,
		catalog: catalog,
		logger:  logger,

		cityQuestion:  "Would you like to see data for " + cities + "?",
		cityRetry:     "Please type out a city (" + cities + "):",
		monthQuestion: "Which month? " + choices(catalog.Months(), " or ") + "?",
		dayQuestion:   "Which day? " + choices(catalog.Days(), " or ") + "?",
	}
}

// choices title-cases names and joins them with commas, putting last
// before the final one: "Chicago, New York, or Washington".
func choices(names []string, last string) string {
	for i, name := range names {
		names[i] = response.Title(name)
	}
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + last + names[len(names)-1]
}

// CollectFilters asks for city, month and day until each answer is valid.
// Answers are trimmed and lowercased before validation. Invalid answers are
// never reported to the caller; the only error is the end of input (io.EOF)
// or a cancelled context.
func (c *Collector) CollectFilters(ctx context.Context) (models.TripFilter, error) {
	fmt.Fprintln(c.out, greeting)

	city, err := c.choose(ctx, c.cityQuestion, c.cityRetry, c.catalog.IsCity)
	if err != nil {
		return models.TripFilter{}, err
	}

	monthName, err := c.choose(ctx, c.monthQuestion, monthRetry, func(s string) bool {
		_, ok := c.catalog.MonthIndex(s)
		return ok
	})
	if err != nil {
		return models.TripFilter{}, err
	}
	month, _ := c.catalog.MonthIndex(monthName)

	day, err := c.choose(ctx, c.dayQuestion, dayRetry, c.catalog.IsDay)
	if err != nil {
		return models.TripFilter{}, err
	}

	filter := models.TripFilter{City: city, Month: month, Day: day}
	c.logger.Debug("filters collected", "city", filter.City, "month", filter.Month, "day", filter.Day)
	return filter, nil
}

// Confirm asks a yes/no question. Only "yes", in any case, is true.
func (c *Collector) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintln(c.out)
	answer, err := c.ask(ctx, question+" Enter yes or no.")
	if err != nil {
		return false, err
	}
	return answer == "yes", nil
}

func (c *Collector) choose(ctx context.Context, question, retry string, valid func(string) bool) (string, error) {
	answer, err := c.ask(ctx, question)
	for err == nil && !valid(answer) {
		c.logger.Debug("rejected answer", "answer", answer)
		answer, err = c.ask(ctx, retry)
	}
	return answer, err
}

// ask prints question on its own line and returns the normalized answer.
// A final line without a newline is still returned; the read after it
// reports io.EOF.
func (c *Collector) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintln(c.out, question)

	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
