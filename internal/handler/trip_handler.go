package handler

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/jengzang/bikeshare-go/internal/models"
	"github.com/jengzang/bikeshare-go/internal/repository"
	"github.com/jengzang/bikeshare-go/internal/service"
)

const (
	idColumn    = "id"
	missingCell = "NaN"
)

// TripHandler prints pages of raw trip rows
type TripHandler struct {
	service *service.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *service.TripService) *TripHandler {
	return &TripHandler{service: service}
}

// PrintPage prints up to limit trips starting at offset, without the record
// id. Each row is labelled with its position in the source file. Past the
// end it prints an empty page. It returns the number of rows printed.
func (h *TripHandler) PrintPage(ctx context.Context, w io.Writer, ds *models.Dataset, offset, limit int) (int, error) {
	trips, err := h.service.Page(ctx, ds, offset, limit)
	if err != nil {
		return 0, err
	}

	if len(trips) == 0 {
		fmt.Fprintf(w, "Empty page\nColumns: [%s]\n", strings.Join(ds.Columns(), ", "))
		return 0, nil
	}

	df := PageFrame(ds, trips)
	if df.Err != nil {
		return 0, fmt.Errorf("failed to build trip page: %w", df.Err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i, record := range df.Records() {
		label := ""
		if i > 0 {
			label = strconv.FormatInt(trips[i-1].Row, 10)
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", label, strings.Join(record, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write trip page: %w", err)
	}
	return df.Nrow(), nil
}

// PageFrame lays trips out as a string-typed frame with ds.Columns() as
// header. The record id is loaded as the leading column and dropped from
// the result. Missing values are shown as NaN.
func PageFrame(ds *models.Dataset, trips []models.Trip) dataframe.DataFrame {
	records := make([][]string, 0, len(trips)+1)
	records = append(records, append([]string{idColumn}, ds.Columns()...))
	for _, t := range trips {
		row := append([]string{strconv.FormatInt(t.ID, 10)}, tripRecord(ds, t)...)
		records = append(records, row)
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	return df.Drop(idColumn)
}

func tripRecord(ds *models.Dataset, t models.Trip) []string {
	end := missingCell
	if !t.EndTime.IsZero() {
		end = t.EndTime.Format(repository.TimestampLayout)
	}

	row := []string{
		t.StartTime.Format(repository.TimestampLayout),
		end,
		strconv.FormatFloat(t.TripDuration, 'f', -1, 64),
		nullable(t.StartStation, t.StartStation != ""),
		nullable(t.EndStation, t.EndStation != ""),
		nullable(t.UserType.String, t.UserType.Valid),
	}
	if ds.HasGender {
		row = append(row, nullable(t.Gender.String, t.Gender.Valid))
	}
	if ds.HasBirthYear {
		row = append(row, nullable(strconv.FormatInt(t.BirthYear.Int64, 10), t.BirthYear.Valid))
	}
	return append(row, strconv.Itoa(t.Month), t.DayOfWeek)
}

func nullable(s string, valid bool) string {
	if !valid {
		return missingCell
	}
	return s
}
