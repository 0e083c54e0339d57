// Package config holds the settings shared by the CLI, the viewer and the
// web preview. Settings are stored as TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ErrUnknownKey is returned when a config file contains keys that do not
// map to any setting
var ErrUnknownKey = errors.New("unknown config key")

// Config contains every setting a front end needs to run the loop
type Config struct {
	Width           int    `toml:"width" comment:"Image width in pixels"`
	Height          int    `toml:"height" comment:"Image height in pixels"`
	SamplesPerPixel int    `toml:"samples_per_pixel" comment:"Camera rays per pixel, rounded down to a perfect square"`
	TileSize        int    `toml:"tile_size"`
	Workers         int    `toml:"workers" comment:"Render workers, 0 uses every CPU"`
	FPS             int    `toml:"fps" comment:"Frames per second for streaming and the viewer"`
	Frames          int    `toml:"frames" comment:"Frames exported per loop by the CLI"`
	Matcap          string `toml:"matcap" comment:"Matcap image path, empty uses the built-in studio matcap"`
	MatcapSize      int    `toml:"matcap_size"`

	EnableJitter     bool  `toml:"enable_jitter"`
	EnableOrbitDrift bool  `toml:"enable_orbit_drift"`
	Seed             int64 `toml:"seed"`

	Port int `toml:"port" comment:"Web preview port"`
}

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		Width:           640,
		Height:          480,
		SamplesPerPixel: 4,
		TileSize:        32,
		Workers:         0,
		FPS:             30,
		Frames:          90,
		MatcapSize:      256,
		Port:            8080,
	}
}

// Load reads a TOML file on top of the defaults. Keys absent from the file
// keep their default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("config %s: %w\n%s", path, ErrUnknownKey, strict.String())
		}
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as TOML, creating parent directories as needed
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate reports settings that cannot produce a frame
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples_per_pixel must be positive, got %d", c.SamplesPerPixel)
	case c.FPS <= 0:
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	case c.Frames <= 0:
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
