// Package config loads fixcat settings from a TOML file.
//
// A file looks like:
//
//	[schema]
//	file = "layouts/phones.json"
//
//	[convert]
//	delimiter = ";"
//	format = "csv"
//	jobs = 4
//
//	[log]
//	level = "debug"
//
// Every key is optional; missing keys keep the values from Default.
// Command line flags that are set explicitly override file values.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"github.com/vegasq/fixcat/transcode"
)

// Config is the full set of file settings.
type Config struct {
	Schema  SchemaConfig  `toml:"schema"`
	Convert ConvertConfig `toml:"convert"`
	Log     LogConfig     `toml:"log"`
}

// SchemaConfig locates the layout. File and Inline are mutually exclusive.
type SchemaConfig struct {
	File   string `toml:"file"`
	Inline string `toml:"inline"`
}

type ConvertConfig struct {
	Delimiter    string `toml:"delimiter"`
	Format       string `toml:"format"`
	Unit         string `toml:"unit"`
	NFC          bool   `toml:"nfc"`
	Encoding     string `toml:"encoding"`
	Compress     string `toml:"compress"`
	ParquetCodec string `toml:"parquet_codec"`
	OutDir       string `toml:"out_dir"`
	FailureDir   string `toml:"failure_dir"`
	Jobs         int64  `toml:"jobs"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Convert: ConvertConfig{
			Delimiter: ",",
			Format:    "csv",
			Unit:      "runes",
			Compress:  "none",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Color:  "auto",
		},
	}
}

// Load reads path over Default. Unknown keys are an error. A relative
// schema file is resolved against the directory of path.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("schema", "file") && cfg.Schema.File != "" && !filepath.IsAbs(cfg.Schema.File) {
		cfg.Schema.File = filepath.Join(filepath.Dir(path), cfg.Schema.File)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be checked by type alone.
func (c Config) Validate() error {
	if c.Schema.File != "" && strings.TrimSpace(c.Schema.Inline) != "" {
		return errors.New("[schema] file and inline are mutually exclusive")
	}
	if c.Convert.Delimiter == "" {
		return errors.New("[convert].delimiter must not be empty")
	}
	if _, err := transcode.ParseUnit(c.Convert.Unit); err != nil {
		return fmt.Errorf("[convert].unit: %w", err)
	}
	if _, err := c.JobCount(); err != nil {
		return err
	}
	return nil
}

// JobCount returns Convert.Jobs as an int. Zero means one job per CPU.
func (c Config) JobCount() (int, error) {
	if c.Convert.Jobs < 0 {
		return 0, fmt.Errorf("[convert].jobs must not be negative, got %d", c.Convert.Jobs)
	}
	n, err := safecast.Conv[int](c.Convert.Jobs)
	if err != nil {
		return 0, fmt.Errorf("[convert].jobs out of range: %w", err)
	}
	return n, nil
}
