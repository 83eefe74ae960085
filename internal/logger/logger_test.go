package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelInfo, ParseLevel("INFO"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	require.Equal(t, slog.LevelError, ParseLevel("ERROR"))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestSetupFallback(t *testing.T) {
	var buf bytes.Buffer

	logger, f, err := Setup("", slog.LevelWarn, &buf)
	require.NoError(t, err)
	require.Nil(t, f)

	logger.Info("hidden")
	logger.Warn("shown", "key", 1)
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "key=1")
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "srf.log")

	logger, f, err := Setup(path, slog.LevelDebug, nil)
	require.NoError(t, err)
	require.NotNil(t, f)

	logger.Debug("decoded", "sweeps", 3)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "sweeps=3")
}
