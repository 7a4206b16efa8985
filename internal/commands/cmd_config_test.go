package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toasty/internal/core/config"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestWriteConfig_YAML(t *testing.T) {
	cfg := config.DefaultConfig()

	var out bytes.Buffer
	require.NoError(t, writeConfig(&out, &bytes.Buffer{}, &cfg, "yaml"))

	assert.Contains(t, out.String(), "default_position: top-right")
	assert.Contains(t, out.String(), "default_duration: 5s")
	assert.Contains(t, out.String(), "theme: tokyo-night")
}

func TestWriteConfig_JSON(t *testing.T) {
	cfg := config.DefaultConfig()

	var out bytes.Buffer
	require.NoError(t, writeConfig(&out, &bytes.Buffer{}, &cfg, "json"))

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "top-right", got["toasts"]["default_position"])
	assert.Equal(t, "100ms", got["toasts"]["tick_interval"])
	assert.InDelta(t, 5, got["toasts"]["max_notifications"], 0)
}

func TestWriteConfig_UnknownFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	err := writeConfig(&bytes.Buffer{}, &bytes.Buffer{}, &cfg, "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestValidateConfigFile(t *testing.T) {
	t.Run("missing file is valid", func(t *testing.T) {
		report := validateConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
	})

	t.Run("field errors are listed", func(t *testing.T) {
		path := writeConfigFile(t, "toasts:\n  default_position: middle\ntui:\n  theme: neon\n")

		report := validateConfigFile(path)
		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 2)
		assert.Equal(t, "toasts.default_position", report.Errors[0].Field)
		assert.Equal(t, "tui.theme", report.Errors[1].Field)
	})

	t.Run("parse errors have no field", func(t *testing.T) {
		path := writeConfigFile(t, "toasts: [\n")

		report := validateConfigFile(path)
		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 1)
		assert.Empty(t, report.Errors[0].Field)
		assert.Contains(t, report.Errors[0].Message, "parse config file")
	})

	t.Run("warnings on valid config", func(t *testing.T) {
		path := writeConfigFile(t, "toasts:\n  max_notifications: 30\n")

		report := validateConfigFile(path)
		assert.True(t, report.Valid)
		require.Len(t, report.Warnings, 1)
		assert.Contains(t, report.Warnings[0], "max_notifications")
	})
}

func TestWriteReport(t *testing.T) {
	var out bytes.Buffer
	writeReport(&out, ValidationReport{
		Path:   "/tmp/config.yaml",
		Errors: []ValidationIssue{{Field: "tui.width", Message: "must be at least 20"}},
	})

	assert.Contains(t, out.String(), "/tmp/config.yaml")
	assert.Contains(t, out.String(), "tui.width: must be at least 20")
	assert.NotContains(t, out.String(), "ok")
}
