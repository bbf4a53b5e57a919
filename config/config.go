// Package config loads validation settings for the CLI and for services that
// build a contracts.Validator from a file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/contracts"
	"github.com/reoring/fmeaskema/i18n"
	"github.com/reoring/fmeaskema/observe"
)

var validate = validator.New()

// Config is the on-disk form of contracts.Options.
type Config struct {
	DuplicateKeys         string   `yaml:"duplicateKeys" toml:"duplicateKeys" validate:"omitempty,oneof=ignore warn error"`
	MaxDepth              int      `yaml:"maxDepth" toml:"maxDepth" validate:"min=0"`
	MaxBytes              int64    `yaml:"maxBytes" toml:"maxBytes" validate:"min=0"`
	FailFast              bool     `yaml:"failFast" toml:"failFast"`
	Language              string   `yaml:"language" toml:"language" validate:"omitempty,oneof=en ja zh"`
	WarningsAsErrors      bool     `yaml:"warningsAsErrors" toml:"warningsAsErrors"`
	StrictActionDetection bool     `yaml:"strictActionDetection" toml:"strictActionDetection"`
	LogLevel              string   `yaml:"logLevel" toml:"logLevel" validate:"omitempty,oneof=debug info warn error"`
	Observers             []string `yaml:"observers" toml:"observers" validate:"dive,required"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		DuplicateKeys: "warn",
		MaxDepth:      256,
		MaxBytes:      8 << 20,
		Language:      "en",
		LogLevel:      "info",
	}
}

// Load reads path, choosing the decoder by extension (.yaml, .yml, .toml).
// Keys missing from the file keep their Default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(filepath.Ext(path), data)
}

// Parse decodes data in the format named by ext.
func Parse(ext string, data []byte) (Config, error) {
	cfg := Default()
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("config: unsupported format %q", ext)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values and that every observer name is registered.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	for _, name := range c.Observers {
		if _, err := observe.GetObserver(name); err != nil {
			return fmt.Errorf("config: observers: %w", err)
		}
	}
	return nil
}

// ParseOpt projects the parsing limits.
func (c Config) ParseOpt() fmeaskema.ParseOpt {
	sev, _ := fmeaskema.ParseSeverity(c.DuplicateKeys)
	return fmeaskema.ParseOpt{
		Strictness: fmeaskema.Strictness{OnDuplicateKey: sev},
		MaxDepth:   c.MaxDepth,
		MaxBytes:   c.MaxBytes,
		FailFast:   c.FailFast,
	}
}

// ValidatorOptions projects the config into contracts.Options. Observers are
// resolved from the observe registry.
func (c Config) ValidatorOptions() (contracts.Options, error) {
	opts := contracts.Options{
		ParseOpt:              c.ParseOpt(),
		WarningsAsErrors:      c.WarningsAsErrors,
		StrictActionDetection: c.StrictActionDetection,
	}
	if len(c.Observers) > 0 {
		obs := make([]observe.Observer, 0, len(c.Observers))
		for _, name := range c.Observers {
			o, err := observe.GetObserver(name)
			if err != nil {
				return contracts.Options{}, err
			}
			obs = append(obs, o)
		}
		opts.Observer = observe.NewMultiObserver(obs...)
	}
	return opts, nil
}

// Level returns the configured log level, Info when unset.
func (c Config) Level() log.Level {
	if c.LogLevel == "" {
		return log.InfoLevel
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Apply installs the process-wide settings: message language and the
// package logger level.
func (c Config) Apply() {
	if c.Language != "" {
		i18n.SetLanguage(c.Language)
	}
	fmeaskema.Logger().SetLevel(c.Level())
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, e := range verrs {
		switch e.Tag() {
		case "oneof":
			return fmt.Errorf("config: %s: must be one of [%s], got %q", e.Field(), e.Param(), e.Value())
		case "min":
			return fmt.Errorf("config: %s: must be at least %s", e.Field(), e.Param())
		case "required":
			return fmt.Errorf("config: %s: value is required", e.Field())
		default:
			return fmt.Errorf("config: %s: validation failed (%s)", e.Field(), e.Tag())
		}
	}
	return err
}
