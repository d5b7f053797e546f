package logger

import (
	"testing"

	"github.com/sefazor/gracex-storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	log, err := New(true, "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	log, err = New(false, "debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewFromConfig(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	log, err := New(cfg.IsProduction(), cfg.LogLevel)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(false, "chatty")
	assert.Error(t, err)
}
