package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/alchemorsel-v2/assistant/config"
)

func TestNew(t *testing.T) {
	logger, err := New(config.Development, "debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(config.Production, "")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))

	logger, err = New(config.Test, "WARN")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.Development, "loud")
	assert.Error(t, err)
}
