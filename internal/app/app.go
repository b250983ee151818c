// Package app runs the interactive bikeshare session: collect filters, load
// the city's trips, print the reports, page through raw rows on request and
// offer a restart.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jengzang/bikeshare-go/internal/config"
	"github.com/jengzang/bikeshare-go/internal/handler"
	"github.com/jengzang/bikeshare-go/internal/middleware"
	"github.com/jengzang/bikeshare-go/internal/models"
	"github.com/jengzang/bikeshare-go/internal/prompt"
	"github.com/jengzang/bikeshare-go/internal/service"
	"github.com/jengzang/bikeshare-go/pkg/response"
)

const (
	viewQuestion    = "Would you like to view individual trip data?"
	restartQuestion = "Would you like to restart?"
)

// App holds the session's collaborators
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	pageSize int

	collector   *prompt.Collector
	tripService *service.TripService
	trips       *handler.TripHandler
	reports     middleware.ReportFunc
}

// NewApp wires an App reading answers from in, printing the session to outW
// and logging to logW.
func NewApp(cfg *config.Config, in io.Reader, outW, logW io.Writer) *App {
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, logW)
	catalog := cfg.Catalog()

	tripService := service.NewTripService(catalog, logger)
	stats := handler.NewStatsHandler(service.NewStatsService())

	app := &App{
		outW:        outW,
		logger:      logger,
		pageSize:    cfg.PageSize,
		collector:   prompt.NewCollector(in, outW, catalog, logger),
		tripService: tripService,
		trips:       handler.NewTripHandler(tripService),
		reports: middleware.Chain(
			middleware.Timing(logger, "time", stats.TimeStats),
			middleware.Timing(logger, "station", stats.StationStats),
			middleware.Timing(logger, "duration", stats.DurationStats),
			middleware.Timing(logger, "user", stats.UserStats),
		),
	}
	logger.Debug("app configured", "data_dir", cfg.DataDir, "page_size", cfg.PageSize)
	return app
}

// Run repeats the collect, load, report and view cycle until the user
// declines to restart. Running out of input ends the session without error.
func (a *App) Run(ctx context.Context) error {
	err := a.run(ctx)
	if errors.Is(err, io.EOF) {
		a.logger.Debug("input closed, ending session")
		return nil
	}
	return err
}

func (a *App) run(ctx context.Context) error {
	for cycle := 1; ; cycle++ {
		filter, err := a.collector.CollectFilters(ctx)
		if err != nil {
			return err
		}

		if err := a.cycle(ctx, filter); err != nil {
			return err
		}

		again, err := a.collector.Confirm(ctx, restartQuestion)
		if err != nil {
			return err
		}
		if !again {
			a.logger.Debug("session finished", "cycles", cycle)
			return nil
		}
	}
}

// cycle loads a fresh dataset for filter, prints the reports and runs the
// viewer. The dataset is discarded when the cycle ends.
func (a *App) cycle(ctx context.Context, filter models.TripFilter) error {
	ds, err := a.tripService.LoadData(ctx, filter)
	if err != nil {
		return err
	}
	defer ds.Close()

	rows, err := a.tripService.Count(ctx, ds)
	if err != nil {
		return err
	}
	a.logger.Info("dataset ready",
		"source", ds.Source,
		"month", ds.Filter.Month,
		"day", ds.Filter.Day,
		"rows", rows,
		"total", ds.TotalRows,
	)
	response.Rule(a.outW)

	if err := a.reports(ctx, a.outW, ds); err != nil {
		return fmt.Errorf("failed to print reports: %w", err)
	}
	return a.view(ctx, ds)
}

// view asks before each page. A "yes" prints the next page, anything else
// ends the viewer. Past the last row the pages are empty.
func (a *App) view(ctx context.Context, ds *models.Dataset) error {
	v := newViewer(a.pageSize)
	for v.state == awaitingResponse {
		yes, err := a.collector.Confirm(ctx, viewQuestion)
		if err != nil {
			return err
		}

		offset, show := v.answer(yes)
		if !show {
			continue
		}
		if _, err := a.trips.PrintPage(ctx, a.outW, ds, offset, a.pageSize); err != nil {
			return err
		}
	}
	return nil
}
