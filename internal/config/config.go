// Package config loads aup3tool's optional TOML configuration file,
// the way spindle's config package loads its own sample_config.toml via
// go:embed and pelletier/go-toml/v2.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Recovery holds defaults for the corruption-recovery helper.
type Recovery struct {
	SQLite3Binary  string `toml:"sqlite3_binary"`
	IgnoreFreelist bool   `toml:"ignore_freelist"`
	// AutoRecover enables automatically running the recovery helper and
	// retrying once, when opening a project file observes DbCorrupt.
	AutoRecover bool `toml:"auto_recover"`
}

// Extraction holds sample rate/format values for sample block or track
// extraction, defaulting to the same values as the CLI flags; the CLI
// takes rate and format from its --sample_rate/--sample_format flags, not
// from here.
type Extraction struct {
	SampleRate   uint32 `toml:"sample_rate"`
	SampleFormat string `toml:"sample_format"`
}

// Config is aup3tool's full configuration surface.
type Config struct {
	LogLevel   string     `toml:"log_level"`
	LogFormat  string     `toml:"log_format"`
	Recovery   Recovery   `toml:"recovery"`
	Extraction Extraction `toml:"extraction"`
}

// Default returns a Config populated with built-in defaults.
func Default() Config {
	return Config{
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
		Recovery: Recovery{
			SQLite3Binary:  defaultSQLite3Binary,
			IgnoreFreelist: false,
			AutoRecover:    false,
		},
		Extraction: Extraction{
			SampleRate:   defaultSampleRate,
			SampleFormat: defaultSampleFormat,
		},
	}
}

// Load reads path (if non-empty and present) over the built-in defaults.
// A missing path is not an error: aup3tool runs from flags alone with no
// config file required.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Sample returns the embedded sample configuration file contents, used by
// a future `config init`-style command to seed a starting file.
func Sample() string {
	return sampleConfig
}
