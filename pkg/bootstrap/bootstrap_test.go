package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shared "github.com/fitglue/bodyhighlighter/pkg"
	infrapubsub "github.com/fitglue/bodyhighlighter/pkg/infrastructure/pubsub"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, shared.TopicMuscleClicked, cfg.ClickTopic)
	assert.Equal(t, shared.DefaultAssetsBucket, cfg.AssetsBucket)
	assert.False(t, cfg.EnablePublish)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highlighter.yaml")
	content := `
listen_addr: ":9000"
log_level: debug
highlighted_colors: ["#111", "#222"]
assets_bucket: from-file
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("SHOWCASE_ASSETS_BUCKET", "from-env")
	t.Setenv("ENABLE_PUBLISH", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"#111", "#222"}, cfg.HighlightedColors)
	assert.Equal(t, "from-env", cfg.AssetsBucket, "env overrides file")
	assert.True(t, cfg.EnablePublish)
}

func TestLoadConfig_PaletteFromEnv(t *testing.T) {
	t.Setenv("HIGHLIGHTER_HIGHLIGHTED_COLORS", "#a,#b,#c")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, []string{"#a", "#b", "#c"}, cfg.HighlightedColors)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLogger_ComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test-service", "info").With("component", "server")

	logger.Info("listening", "addr", ":8080")
	logger.Debug("hidden")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "[server] listening", record["message"])
	assert.Equal(t, "INFO", record["severity"])
	assert.Equal(t, "test-service", record["service"])
	assert.Equal(t, "server", record["component"])
}

func TestNewService_LocalDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	svc, err := NewService(context.Background(), cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer svc.Close()

	assert.IsType(t, &infrapubsub.LogPublisher{}, svc.Pub)
	assert.Nil(t, svc.Store, "export disabled")
}
