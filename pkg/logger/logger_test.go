package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewParsesLevel(t *testing.T) {
	l, err := New(Config{Level: "WARN", Encoding: "json"})
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestMustPanicsOnBadConfig(t *testing.T) {
	assert.Panics(t, func() { Must(Config{Level: "loud"}) })
	assert.NotPanics(t, func() { Must(Config{Development: true, Encoding: "console"}) })
}
