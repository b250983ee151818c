package middleware

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jengzang/bikeshare-go/internal/models"
	"github.com/jengzang/bikeshare-go/pkg/response"
)

// ReportFunc prints one report over a dataset to w
type ReportFunc func(ctx context.Context, w io.Writer, ds *models.Dataset) error

// Timing wraps a report so it is followed by its elapsed time and the
// block separator. The elapsed time is also logged under name.
func Timing(logger *slog.Logger, name string, next ReportFunc) ReportFunc {
	return func(ctx context.Context, w io.Writer, ds *models.Dataset) error {
		// Start timer
		start := time.Now()

		err := next(ctx, w, ds)

		latency := time.Since(start)
		if err != nil {
			logger.Error("report failed", "report", name, "latency", latency, "error", err)
			return err
		}

		fmt.Fprintf(w, "\nThis took %.3f seconds.\n", latency.Seconds())
		response.Rule(w)

		logger.Debug("report printed",
			"report", name,
			"city", ds.Filter.City,
			"latency", latency,
		)
		return nil
	}
}

// Chain runs reports in order, stopping at the first error
func Chain(reports ...ReportFunc) ReportFunc {
	return func(ctx context.Context, w io.Writer, ds *models.Dataset) error {
		for _, report := range reports {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := report(ctx, w, ds); err != nil {
				return err
			}
		}
		return nil
	}
}
