package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "settings.yaml", `
logging:
  level: debug
  format: json
output:
  format: table
batch:
  size: 10
state:
  path: /tmp/state.json
metrics:
  addr: ":9090"
`)

	s, err := LoadSettings(p)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.Logging.Level)
	assert.Equal(t, "json", s.Logging.Format)
	assert.Equal(t, "table", s.Output.Format)
	assert.Equal(t, 10, s.Batch.Size)
	assert.Equal(t, "/tmp/state.json", s.State.Path)
	assert.Equal(t, ":9090", s.Metrics.Addr)

	// untouched sections keep their defaults
	assert.Equal(t, 3, s.Batch.MaxRetries)
	assert.Equal(t, 5*time.Second, s.Batch.FlushInterval())
	assert.Equal(t, 30*time.Second, s.HTTP.Timeout())
	assert.Equal(t, 25, s.FreeTier.Limit)
}

func TestLoadSettings_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSettings(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	p := writeFile(t, dir, "bad.yaml", "logging: [")
	_, err = LoadSettings(p)
	assert.ErrorContains(t, err, "failed to parse YAML")

	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"level", "logging: {level: loud}", ErrInvalidLogLevel},
		{"log format", "logging: {format: xml}", ErrInvalidLogFormat},
		{"output", "output: {format: csv}", ErrInvalidOutputFormat},
		{"batch size", "batch: {size: 0}", ErrInvalidBatchSize},
		{"flush", "batch: {flush_interval_ms: 0}", ErrInvalidFlushInterval},
		{"retries", "batch: {max_retries: 0}", ErrInvalidMaxRetries},
		{"timeout", "http: {timeout_sec: 0}", ErrInvalidTimeout},
		{"free tier", "free_tier: {limit: 0}", ErrInvalidFreeTierLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, dir, tt.name+".yaml", tt.yaml)
			_, err := LoadSettings(p)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoggingSettings_NewSlog(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LoggingSettings{Level: "DEBUG"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LoggingSettings{Level: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LoggingSettings{Level: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LoggingSettings{Level: ""}.SlogLevel())

	var buf bytes.Buffer
	l := LoggingSettings{Level: "info", Format: "json"}.NewSlog(&buf)
	l.Debug("hidden")
	l.Info("shown", "n", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	l = LoggingSettings{Level: "debug", Format: "text"}.NewSlog(&buf)
	l.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "input.json5", `{
		// comments and trailing commas are fine
		mode: "search",
		keyword: "jazz",
		maxResults: 50,
	}`)

	raw, err := ReadInput(p)
	require.NoError(t, err)
	assert.Equal(t, "search", raw["mode"])
	assert.Equal(t, "jazz", raw["keyword"])
	assert.EqualValues(t, 50, raw["maxResults"])
}

func TestReadInput_LocalOverride(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "input.json5", `{mode: "search", keyword: "jazz", maxResults: 50}`)
	writeFile(t, dir, "input.local.json5", `{keyword: "rock", apiKey: "secret"}`)

	raw, err := ReadInput(p)
	require.NoError(t, err)
	assert.Equal(t, "search", raw["mode"])
	assert.Equal(t, "rock", raw["keyword"])
	assert.Equal(t, "secret", raw["apiKey"])
	assert.EqualValues(t, 50, raw["maxResults"])
}

func TestReadInput_OnlyLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "input.local.json5", `{keyword: "rock"}`)

	raw, err := ReadInput(filepath.Join(dir, "input.json5"))
	require.NoError(t, err)
	assert.Equal(t, "rock", raw["keyword"])
}

func TestReadInput_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadInput(filepath.Join(dir, "input.json5"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	p := writeFile(t, dir, "broken.json5", `{mode: `)
	_, err = ReadInput(p)
	assert.ErrorContains(t, err, "parse")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvApiKey, "from-env")

	raw := ApplyEnv(map[string]any{"apiKey": "  "})
	assert.Equal(t, "from-env", raw["apiKey"])

	raw = ApplyEnv(map[string]any{"apiKey": "explicit"})
	assert.Equal(t, "explicit", raw["apiKey"])

	raw = ApplyEnv(nil)
	assert.Equal(t, "from-env", raw["apiKey"])

	t.Setenv(EnvApiKey, "")
	raw = ApplyEnv(map[string]any{})
	assert.NotContains(t, raw, "apiKey")
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, ".env", "TICKETMASTER_API_KEY=dotenv-key\n")

	t.Setenv(EnvApiKey, "")
	require.NoError(t, os.Unsetenv(EnvApiKey))
	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), p))
	assert.Equal(t, "dotenv-key", os.Getenv(EnvApiKey))

	// already set variables win
	t.Setenv(EnvApiKey, "shell-key")
	require.NoError(t, LoadEnv(p))
	assert.Equal(t, "shell-key", os.Getenv(EnvApiKey))
}

func TestFreeTier(t *testing.T) {
	tests := []struct {
		atHome, paying string
		want           bool
	}{
		{"", "", false},
		{"1", "", true},
		{"TRUE", "false", true},
		{"true", "1", false},
		{"yes", "", false},
	}
	for _, tt := range tests {
		t.Setenv(EnvIsAtHome, tt.atHome)
		t.Setenv(EnvUserIsPaying, tt.paying)
		assert.Equal(t, tt.want, FreeTier(), "atHome=%q paying=%q", tt.atHome, tt.paying)
	}
}
