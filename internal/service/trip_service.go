package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jengzang/bikeshare-go/internal/config"
	"github.com/jengzang/bikeshare-go/internal/database"
	"github.com/jengzang/bikeshare-go/internal/ingest"
	"github.com/jengzang/bikeshare-go/internal/models"
	"github.com/jengzang/bikeshare-go/internal/repository"
)

// TripService loads city trip files and pages through the filtered rows
type TripService struct {
	catalog config.Catalog
	logger  *slog.Logger
}

// NewTripService creates a new trip service
func NewTripService(catalog config.Catalog, logger *slog.Logger) *TripService {
	return &TripService{catalog: catalog, logger: logger}
}

// LoadData reads the filter's city file into a fresh in-memory table and
// returns the dataset restricted to the filter's month and day. The caller
// owns the dataset and must Close it.
func (s *TripService) LoadData(ctx context.Context, filter models.TripFilter) (*models.Dataset, error) {
	source, err := s.catalog.Source(filter.City)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open trip data for %s: %w", filter.City, err)
	}
	defer f.Close()

	start := time.Now()
	ds, err := s.load(ctx, f, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", source, err)
	}
	ds.Source = source

	s.logger.Info("trip data loaded",
		"city", filter.City,
		"source", source,
		"rows", ds.TotalRows,
		"elapsed", time.Since(start),
	)
	return ds, nil
}

func (s *TripService) load(ctx context.Context, r io.Reader, filter models.TripFilter) (*models.Dataset, error) {
	reader, err := ingest.NewReader(r)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, s.logger)
	if err != nil {
		return nil, err
	}

	repo := repository.NewTripRepository(db)
	var total int64
	err = database.Transaction(ctx, db, func(tx *sql.Tx) error {
		ins, err := repo.NewInserter(ctx, tx)
		if err != nil {
			return err
		}
		defer ins.Close()

		for {
			trip, err := reader.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := ins.Insert(ctx, trip); err != nil {
				return err
			}
			total++
		}
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &models.Dataset{
		DB:           db,
		Filter:       filter,
		HasGender:    reader.HasGender(),
		HasBirthYear: reader.HasBirthYear(),
		TotalRows:    total,
	}, nil
}

// Count returns the number of rows in the dataset
func (s *TripService) Count(ctx context.Context, ds *models.Dataset) (int64, error) {
	return repository.NewTripRepository(ds.DB).CountTrips(ctx, ds.Filter)
}

// Page returns up to limit rows starting at offset, in source order.
// Past the end it returns an empty page.
func (s *TripService) Page(ctx context.Context, ds *models.Dataset, offset, limit int) ([]models.Trip, error) {
	trips, err := repository.NewTripRepository(ds.DB).GetTrips(ctx, ds.Filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get trips: %w", err)
	}
	return trips, nil
}
