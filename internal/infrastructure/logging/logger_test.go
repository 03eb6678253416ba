package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/bibkit/internal/infrastructure/config"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		in        config.LogConfig
		wantLevel string
		wantDev   bool
	}{
		{name: "production", in: config.LogConfig{Level: "info"}, wantLevel: "info"},
		{name: "development keeps explicit level", in: config.LogConfig{Level: "warn", Development: true}, wantLevel: "warn", wantDev: true},
		{name: "development default level", in: config.LogConfig{Development: true}, wantLevel: "debug", wantDev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromConfig(tt.in)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantDev, got.Development)
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", OutputPaths: []string{"stdout"}})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	logger, err := New(Config{Level: "warn", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)

	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.NotNil(t, logger.Component("cleanup"))
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
