package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loop.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.EnableJitter)
	assert.False(t, cfg.EnableOrbitDrift)
	assert.Equal(t, 90, cfg.Frames)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
width = 320
height = 240
enable_jitter = true
seed = 99
matcap = "assets/matcap3.jpg"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	expected := Default()
	expected.Width = 320
	expected.Height = 240
	expected.EnableJitter = true
	expected.Seed = 99
	expected.Matcap = "assets/matcap3.jpg"
	assert.Equal(t, expected, cfg)
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeFile(t, "width = 320\nsamples = 4\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), "samples")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "width = = 3"},
		{"type", `width = "wide"`},
		{"invalid size", "width = 0"},
		{"invalid frames", "frames = -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrUnknownKey)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Width = 800
	cfg.EnableOrbitDrift = true
	cfg.Matcap = "m.png"

	path := filepath.Join(t.TempDir(), "nested", "loop.toml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
