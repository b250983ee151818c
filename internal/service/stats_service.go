package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jengzang/bikeshare-go/internal/models"
	"github.com/jengzang/bikeshare-go/internal/repository"
	"github.com/jengzang/bikeshare-go/internal/stats"
)

// StatsService computes the four trip reports over a dataset. It holds no
// state and never modifies the dataset.
type StatsService struct{}

// NewStatsService creates a new stats service
func NewStatsService() *StatsService {
	return &StatsService{}
}

// GetTimeStats returns the most common month, day of week and start hour
func (s *StatsService) GetTimeStats(ctx context.Context, ds *models.Dataset) (*models.TimeStats, error) {
	repo := repository.NewStatsRepository(ds.DB)
	out := &models.TimeStats{}

	rows, err := repository.NewTripRepository(ds.DB).CountTrips(ctx, ds.Filter)
	if err != nil {
		return nil, err
	}
	out.Rows = rows
	if rows == 0 {
		return out, nil
	}

	if out.Month, err = intMode(ctx, repo, ds.Filter, repository.ColumnMonth); err != nil {
		return nil, err
	}
	if out.DayOfWeek, err = stringMode(ctx, repo, ds.Filter, repository.ColumnDayOfWeek); err != nil {
		return nil, err
	}
	if out.Hour, err = intMode(ctx, repo, ds.Filter, repository.ColumnHour); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStationStats returns the most common start station, end station and
// start/end combination
func (s *StatsService) GetStationStats(ctx context.Context, ds *models.Dataset) (*models.StationStats, error) {
	repo := repository.NewStatsRepository(ds.DB)
	out := &models.StationStats{}

	rows, err := repository.NewTripRepository(ds.DB).CountTrips(ctx, ds.Filter)
	if err != nil {
		return nil, err
	}
	out.Rows = rows
	if rows == 0 {
		return out, nil
	}

	if out.StartStation, err = stringMode(ctx, repo, ds.Filter, repository.ColumnStartStation); err != nil {
		return nil, err
	}
	if out.EndStation, err = stringMode(ctx, repo, ds.Filter, repository.ColumnEndStation); err != nil {
		return nil, err
	}
	if out.Trip, err = repo.GetPopularTrip(ctx, ds.Filter); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDurationStats returns total and mean trip duration in whole seconds.
// The total is truncated; the mean is rounded half to even.
func (s *StatsService) GetDurationStats(ctx context.Context, ds *models.Dataset) (*models.DurationStats, error) {
	durations, err := repository.NewStatsRepository(ds.DB).GetDurations(ctx, ds.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get duration statistics: %w", err)
	}

	out := &models.DurationStats{
		Rows:         int64(len(durations)),
		TotalSeconds: int64(stats.Sum(durations)),
	}
	if len(durations) > 0 {
		mean := stats.Round(stats.Mean(durations))
		out.MeanSeconds = &mean
	}
	return out, nil
}

// GetUserStats returns user type and gender counts and birth year extremes.
// Gender and birth year are only computed when the source carries them.
func (s *StatsService) GetUserStats(ctx context.Context, ds *models.Dataset) (*models.UserStats, error) {
	repo := repository.NewStatsRepository(ds.DB)
	out := &models.UserStats{
		HasGender:    ds.HasGender,
		HasBirthYear: ds.HasBirthYear,
	}

	var err error
	if out.UserTypes, err = repo.GetValueCounts(ctx, ds.Filter, repository.ColumnUserType); err != nil {
		return nil, fmt.Errorf("failed to get user statistics: %w", err)
	}
	for _, vc := range out.UserTypes {
		out.Rows += vc.Count
	}

	if ds.HasGender {
		if out.Genders, err = repo.GetValueCounts(ctx, ds.Filter, repository.ColumnGender); err != nil {
			return nil, fmt.Errorf("failed to get user statistics: %w", err)
		}
	}

	if ds.HasBirthYear {
		years, err := repo.GetBirthYears(ctx, ds.Filter)
		if err != nil {
			return nil, fmt.Errorf("failed to get user statistics: %w", err)
		}
		if len(years) > 0 {
			out.BirthYears = &models.BirthYearStats{
				Earliest:   int(stats.Min(years)),
				MostRecent: int(stats.Max(years)),
				MostCommon: int(stats.Mode(years)),
			}
		}
	}

	return out, nil
}

func intMode(ctx context.Context, repo *repository.StatsRepository, filter models.TripFilter, column string) (*int, error) {
	v, err := stringMode(ctx, repo, filter, column)
	if err != nil || v == nil {
		return nil, err
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mode of %s: %w", column, err)
	}
	return &n, nil
}

func stringMode(ctx context.Context, repo *repository.StatsRepository, filter models.TripFilter, column string) (*string, error) {
	v, _, ok, err := repo.GetMode(ctx, filter, column)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &v, nil
}
