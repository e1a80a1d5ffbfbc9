package testutil

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("species extracted", slog.String("species", "Human"))
		logger.Error("species failed", slog.Int("records", 0))

		require.Len(t, handler.GetRecords(), 2)
		assert.True(t, handler.ContainsMessage("extracted"))
		assert.True(t, handler.ContainsAttr("species", "Human"))
		assert.True(t, handler.ContainsAttr("records", int64(0)))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
		assert.Equal(t, 4, handler.Count())
	})

	t.Run("derived loggers share the buffer", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("component", "extractor")).Info("start")

		require.Equal(t, 1, handler.Count())
		AssertLogAttr(t, handler, "component", "extractor")
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("message 1")
		logger.Info("message 2")
		require.Equal(t, 2, handler.Count())

		handler.Clear()
		assert.Zero(t, handler.Count())
	})

	t.Run("assertion helpers", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("chart rendered", slog.String("chart", "entropy_heatmap"))
		logger.Warn("chart skipped", slog.String("chart", "codon_usage_bar"))

		AssertLogContains(t, handler, slog.LevelInfo, "rendered")
		AssertLogContains(t, handler, slog.LevelWarn, "skipped")
		AssertLogAttr(t, handler, "chart", "entropy_heatmap")
		AssertNoErrors(t, handler)
	})

	t.Run("thread safety", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				logger.Info("concurrent log", slog.Int("goroutine", n))
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 10, handler.Count())
	})
}
