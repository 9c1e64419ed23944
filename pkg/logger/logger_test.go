package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmstand/recordkit/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with static attrs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("component", "pipeline")),
		)
		log.Info("transformer failed", slog.String("operation", "products.load"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "transformer failed", rec["msg"])
		assert.Equal(t, "pipeline", rec["component"])
		assert.Equal(t, "products.load", rec["operation"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithFormat(logger.FormatText),
		)
		log.Info("hello")
		assert.True(t, strings.Contains(buf.String(), "msg=hello"))
	})

	t.Run("level filters", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithLevel(slog.LevelError),
		)
		log.Info("dropped")
		assert.Empty(t, buf.Bytes())
		log.Error("kept")
		assert.NotEmpty(t, buf.Bytes())
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			logger.New(logger.WithFormat("xml"))
		})
	})

	t.Run("from config", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewFromConfig(
			logger.Config{Level: slog.LevelDebug, Format: logger.FormatText},
			logger.WithOutput(&buf),
		)
		log.Debug("visible")
		assert.NotEmpty(t, buf.Bytes())
	})
}
