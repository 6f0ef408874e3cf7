package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	logger, closer := NewLogger(Config{ServiceName: "pet-adoption-api", LogLevel: slog.LevelInfo, LogFile: path})
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil))) })

	logger.Info("search served", slog.Int("results", 3))
	logger.Debug("suppressed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &record))
	require.Equal(t, "search served", record["msg"])
	require.Equal(t, "pet-adoption-api", record["service"])
	require.EqualValues(t, 3, record["results"])
}

func TestInstruments_NilFallbacks(t *testing.T) {
	var inst *Instruments
	require.NotNil(t, inst.Tracer("x"))
	require.NotNil(t, inst.Meter("x"))
}
