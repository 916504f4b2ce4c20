// Package config loads phonekit settings from .phonekit.yaml and the environment.
//
// Settings are layered: built-in defaults, then .phonekit.yaml in the root
// directory, then settings.env next to it, then the process environment.
// Every layer is optional; later layers win.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/minios-linux/phonekit/country"
	"github.com/minios-linux/phonekit/langmeta"
	"github.com/minios-linux/phonekit/logger"
	"github.com/minios-linux/phonekit/phoneinput"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .phonekit.yaml structure.
type File struct {
	// Lang is the widget language used for country names and search (default "en").
	Lang string `yaml:"lang,omitempty"`
	// DefaultCountry is the ISO code selected at start (default "TR").
	DefaultCountry string `yaml:"default_country,omitempty"`
	// Mask overrides every country's mask when set.
	Mask string `yaml:"mask,omitempty"`
	// DisableCountryChange keeps the picker from opening.
	DisableCountryChange bool `yaml:"disable_country_change,omitempty"`
	// Log configures diagnostics output.
	Log Log `yaml:"log,omitempty"`
}

// Log holds logging settings.
type Log struct {
	// Level: debug, info, warn, error (default "info").
	Level string `yaml:"level,omitempty"`
	// File is an optional log file path; stderr is always written.
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxBackups is the number of rotated files kept.
	MaxBackups int `yaml:"max_backups,omitempty"`
	// MaxAgeDays is how long rotated files are kept.
	MaxAgeDays int `yaml:"max_age_days,omitempty"`
	// Compress gzips rotated files.
	Compress bool `yaml:"compress"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// FileName is the default config file name.
const FileName = ".phonekit.yaml"

// EnvFileName is the optional dotenv file read after FileName.
const EnvFileName = "settings.env"

// Environment variables recognized by Load.
const (
	EnvLang                 = "PHONEKIT_LANG"
	EnvDefaultCountry       = "PHONEKIT_DEFAULT_COUNTRY"
	EnvMask                 = "PHONEKIT_MASK"
	EnvDisableCountryChange = "PHONEKIT_DISABLE_COUNTRY_CHANGE"
	EnvLogLevel             = "PHONEKIT_LOG_LEVEL"
	EnvLogFile              = "PHONEKIT_LOG_FILE"
)

// Defaults returns the settings used when nothing is configured.
func Defaults() *File {
	return &File{
		Lang:           langmeta.DefaultLang,
		DefaultCountry: country.FallbackCode,
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// Load reads and validates the configuration for rootDir.
func Load(rootDir string) (*File, error) {
	f := Defaults()

	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	envPath := filepath.Join(rootDir, EnvFileName)
	fileVars, err := godotenv.Read(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", envPath, err)
	}
	if err := f.applyEnv(fileVars); err != nil {
		return nil, err
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// applyEnv overlays dotenv values, then process environment values.
func (f *File) applyEnv(fileVars map[string]string) error {
	get := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok && v != ""
	}

	if v, ok := get(EnvLang); ok {
		f.Lang = v
	}
	if v, ok := get(EnvDefaultCountry); ok {
		f.DefaultCountry = v
	}
	if v, ok := get(EnvMask); ok {
		f.Mask = v
	}
	if v, ok := get(EnvDisableCountryChange); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDisableCountryChange, err)
		}
		f.DisableCountryChange = b
	}
	if v, ok := get(EnvLogLevel); ok {
		f.Log.Level = v
	}
	if v, ok := get(EnvLogFile); ok {
		f.Log.File = v
	}
	return nil
}

// Validate checks the settings and normalizes the language key.
func (f *File) Validate() error {
	lang, err := langmeta.Normalize(f.Lang)
	if err != nil {
		return fmt.Errorf("lang: %w", err)
	}
	f.Lang = lang

	if _, err := logger.ParseLevel(f.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if f.Log.MaxSizeMB < 0 || f.Log.MaxBackups < 0 || f.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log: rotation settings must not be negative")
	}
	return nil
}

// Options converts the settings to controller options. Callbacks and the
// picker are left for the caller.
func (f *File) Options() phoneinput.Options {
	return phoneinput.Options{
		Lang:                 f.Lang,
		DefaultCountry:       f.DefaultCountry,
		Mask:                 f.Mask,
		DisableCountryChange: f.DisableCountryChange,
	}
}

// Rotation returns the log rotation settings.
func (f *File) Rotation() logger.Rotation {
	return logger.Rotation{
		MaxSizeMB:  f.Log.MaxSizeMB,
		MaxBackups: f.Log.MaxBackups,
		MaxAgeDays: f.Log.MaxAgeDays,
		Compress:   f.Log.Compress,
	}
}
