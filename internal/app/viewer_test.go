package app

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewerAdvancesOnYes(t *testing.T) {
	v := newViewer(5)

	for _, want := range []int{0, 5, 10, 15} {
		offset, show := v.answer(true)
		assert.True(t, show)
		assert.Equal(t, want, offset)
		assert.Equal(t, awaitingResponse, v.state)
	}

	_, show := v.answer(false)
	assert.False(t, show)
	assert.Equal(t, done, v.state)

	_, show = v.answer(true)
	assert.False(t, show, "done is final")
}

func TestViewerNoOnFirstAnswer(t *testing.T) {
	v := newViewer(5)
	_, show := v.answer(false)
	assert.False(t, show)
	assert.Equal(t, done, v.state)
	assert.Zero(t, v.cursor)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("debug", "json", &buf)
	logger.Debug("hello", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	logger = NewLogger("bogus", "text", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}
