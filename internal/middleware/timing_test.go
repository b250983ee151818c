package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/jengzang/bikeshare-go/internal/models"
	"github.com/jengzang/bikeshare-go/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func printing(text string) ReportFunc {
	return func(ctx context.Context, w io.Writer, ds *models.Dataset) error {
		_, err := io.WriteString(w, text)
		return err
	}
}

func TestTimingAppendsFooter(t *testing.T) {
	var out bytes.Buffer
	report := Timing(discard, "time", printing("body\n"))

	require.NoError(t, report(context.Background(), &out, &models.Dataset{}))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "body", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Regexp(t, regexp.MustCompile(`^This took \d+\.\d{3} seconds\.$`), lines[2])
	assert.Equal(t, response.Separator, lines[3])
}

func TestTimingPropagatesError(t *testing.T) {
	var out bytes.Buffer
	boom := errors.New("boom")
	report := Timing(discard, "time", func(ctx context.Context, w io.Writer, ds *models.Dataset) error {
		return boom
	})

	assert.ErrorIs(t, report(context.Background(), &out, &models.Dataset{}), boom)
	assert.Empty(t, out.String())
}

func TestChainStopsAtFirstError(t *testing.T) {
	var out bytes.Buffer
	boom := errors.New("boom")
	failing := func(ctx context.Context, w io.Writer, ds *models.Dataset) error { return boom }

	err := Chain(printing("a"), failing, printing("b"))(context.Background(), &out, &models.Dataset{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "a", out.String())

	out.Reset()
	require.NoError(t, Chain(printing("a"), printing("b"))(context.Background(), &out, &models.Dataset{}))
	assert.Equal(t, "ab", out.String())
}
