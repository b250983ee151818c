package handler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jengzang/bikeshare-go/internal/models"
	"github.com/jengzang/bikeshare-go/internal/service"
	"github.com/jengzang/bikeshare-go/internal/stats"
	"github.com/jengzang/bikeshare-go/pkg/response"
)

// StatsHandler prints the four trip reports
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// TimeStats prints the most frequent times of travel
func (h *StatsHandler) TimeStats(ctx context.Context, w io.Writer, ds *models.Dataset) error {
	response.Header(w, "The Most Frequent Times of Travel")

	ts, err := h.statsService.GetTimeStats(ctx, ds)
	if err != nil {
		return err
	}

	if ts.Month != nil {
		response.Line(w, "Most common month:", time.Month(*ts.Month))
	} else {
		response.NoData(w, "Most common month:")
	}

	if ts.DayOfWeek != nil {
		response.Line(w, "Most common day of week:", response.Title(*ts.DayOfWeek))
	} else {
		response.NoData(w, "Most common day of week:")
	}

	if ts.Hour != nil {
		response.Line(w, "Most common start hour:", *ts.Hour)
	} else {
		response.NoData(w, "Most common start hour:")
	}
	return nil
}

// StationStats prints the most popular stations and trip
func (h *StatsHandler) StationStats(ctx context.Context, w io.Writer, ds *models.Dataset) error {
	response.Header(w, "The Most Popular Stations and Trip")

	st, err := h.statsService.GetStationStats(ctx, ds)
	if err != nil {
		return err
	}

	if st.StartStation != nil {
		response.Line(w, "Most common start station:", *st.StartStation)
	} else {
		response.NoData(w, "Most common start station:")
	}

	if st.EndStation != nil {
		response.Line(w, "Most common end station:", *st.EndStation)
	} else {
		response.NoData(w, "Most common end station:")
	}

	if st.Trip == nil {
		response.NoData(w, "Most popular trip:")
		return nil
	}
	response.Line(w, "Most popular trip:", fmt.Sprintf("From %s to %s", st.Trip.StartStation, st.Trip.EndStation))
	response.Line(w, "", fmt.Sprintf("%d times", st.Trip.Count))
	return nil
}

// DurationStats prints total and mean travel time
func (h *StatsHandler) DurationStats(ctx context.Context, w io.Writer, ds *models.Dataset) error {
	response.Header(w, "Trip Duration")

	d, err := h.statsService.GetDurationStats(ctx, ds)
	if err != nil {
		return err
	}

	if d.Rows == 0 || d.MeanSeconds == nil {
		response.NoData(w, "Total travel time:")
		response.NoData(w, "Mean travel time:")
		return nil
	}
	response.Line(w, "Total travel time:", stats.FormatDuration(d.TotalSeconds))
	response.Line(w, "Mean travel time:", stats.FormatDuration(*d.MeanSeconds))
	return nil
}

// UserStats prints user type and gender counts and birth years
func (h *StatsHandler) UserStats(ctx context.Context, w io.Writer, ds *models.Dataset) error {
	response.Header(w, "User Stats")

	u, err := h.statsService.GetUserStats(ctx, ds)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Count of user types:")
	printCounts(w, u.UserTypes)

	if u.HasGender {
		fmt.Fprintln(w, "\nCount of each gender:")
		printCounts(w, u.Genders)
	} else {
		fmt.Fprintln(w, "\nGender information not available")
	}

	if !u.HasBirthYear {
		fmt.Fprintln(w, "\nYear of birth information not available")
		return nil
	}

	fmt.Fprintln(w)
	if u.BirthYears == nil {
		response.NoData(w, "Earliest year of birth:")
		response.NoData(w, "Most recent year of birth:")
		response.NoData(w, "Most common year of birth:")
		return nil
	}
	response.Year(w, "Earliest year of birth:", u.BirthYears.Earliest)
	response.Year(w, "Most recent year of birth:", u.BirthYears.MostRecent)
	response.Year(w, "Most common year of birth:", u.BirthYears.MostCommon)
	return nil
}

func printCounts(w io.Writer, counts []models.ValueCount) {
	if len(counts) == 0 {
		response.Line(w, "", response.NoDataMessage)
		return
	}
	for _, vc := range counts {
		response.Count(w, vc.Value, vc.Valid, vc.Count)
	}
}
