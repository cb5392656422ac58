package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/postcard/core/logger"
)

func TestError(t *testing.T) {
	t.Run("nil error returns empty attr", func(t *testing.T) {
		attr := logger.Error(nil)
		assert.Equal(t, slog.Attr{}, attr)
	})

	t.Run("non-nil error keyed as error", func(t *testing.T) {
		err := errors.New("boom")
		attr := logger.Error(err)
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, err, attr.Value.Any())
	})
}

func TestComponent(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Component(""))

	attr := logger.Component("WelcomeEn")
	assert.Equal(t, "component", attr.Key)
	assert.Equal(t, "WelcomeEn", attr.Value.String())
}

func TestLocale(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Locale(""))
	assert.Equal(t, "fr", logger.Locale("fr").Value.String())
}

func TestTiming(t *testing.T) {
	attr := logger.Duration(250 * time.Millisecond)
	assert.Equal(t, "duration", attr.Key)
	assert.Equal(t, 250*time.Millisecond, attr.Value.Duration())

	elapsed := logger.Elapsed(time.Now().Add(-time.Second))
	assert.Equal(t, "elapsed", elapsed.Key)
	assert.GreaterOrEqual(t, elapsed.Value.Duration(), time.Second)
}
