package observability

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for name, want := range cases {
		logger, err := NewLogger(name)
		require.NoError(t, err, "level %q", name)
		require.True(t, logger.Core().Enabled(want), "level %q should enable %s", name, want)
		if want > zapcore.DebugLevel {
			require.False(t, logger.Core().Enabled(want-1), "level %q should not enable %s", name, want-1)
		}
	}
}
