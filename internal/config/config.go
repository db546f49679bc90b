package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/mc-version-probe/internal/logger"
)

// Config holds the probe settings shared by mcprobe commands.
type Config struct {
	// LogLevel is the minimum level of diagnostic messages (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// Runtime locates the class that exposes version information.
	Runtime Runtime `yaml:"runtime"`
	// Accessors lists the accessor symbols looked up on that class.
	Accessors Accessors `yaml:"accessors"`
}

// Runtime identifies the version class inside the host runtime.
type Runtime struct {
	// Package pins the logical package of the class.
	// When empty it is derived from the server revision.
	Package string `yaml:"package"`
	// Class is the simple name of the version class.
	Class string `yaml:"class"`
}

// Accessors names the zero-argument accessors of the version class.
type Accessors struct {
	// LegacyName returns the display version up to 1.19.3.
	LegacyName string `yaml:"legacy_name"`
	// RenamedName returns the display version from 1.19.4 on (obfuscated).
	RenamedName string `yaml:"renamed_name"`
	// ReleaseTarget returns the release family, absent in some builds.
	ReleaseTarget string `yaml:"release_target"`
}

const (
	// DefaultConfigFilename is the default filename for probe settings.
	DefaultConfigFilename = "mcprobe-settings.yaml"

	// DefaultClass is the simple name of the runtime version class.
	DefaultClass = "MinecraftVersion"

	// DefaultLegacyNameAccessor is the display version accessor before 1.19.4.
	DefaultLegacyNameAccessor = "getName"

	// DefaultRenamedNameAccessor is the obfuscated display version accessor since 1.19.4.
	DefaultRenamedNameAccessor = "c"

	// DefaultReleaseTargetAccessor is the release family accessor.
	DefaultReleaseTargetAccessor = "getReleaseTarget"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidLogLevel is returned for an unknown log_level value.
	errInvalidLogLevel = errors.New("invalid log level")
	// errInvalidSymbol is returned when a class or accessor name contains whitespace.
	errInvalidSymbol = errors.New("symbol names must not contain whitespace")
)

// Default returns the settings matching the vanilla server runtime.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Runtime: Runtime{
			Class: DefaultClass,
		},
		Accessors: Accessors{
			LegacyName:    DefaultLegacyNameAccessor,
			RenamedName:   DefaultRenamedNameAccessor,
			ReleaseTarget: DefaultReleaseTargetAccessor,
		},
	}
}

// Load reads configuration from path and validates it.
// A missing file at the default location yields Default settings.
func Load(path string) (*Config, error) {
	implicit := path == ""
	if implicit {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if implicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the settings to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults for empty fields and rejects malformed values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
	}

	setDefault(&cfg.Runtime.Class, DefaultClass)
	setDefault(&cfg.Accessors.LegacyName, DefaultLegacyNameAccessor)
	setDefault(&cfg.Accessors.RenamedName, DefaultRenamedNameAccessor)
	setDefault(&cfg.Accessors.ReleaseTarget, DefaultReleaseTargetAccessor)

	symbols := []string{
		cfg.Runtime.Package,
		cfg.Runtime.Class,
		cfg.Accessors.LegacyName,
		cfg.Accessors.RenamedName,
		cfg.Accessors.ReleaseTarget,
	}

	for _, s := range symbols {
		if strings.ContainsFunc(s, unicode.IsSpace) {
			return fmt.Errorf("%w: %q", errInvalidSymbol, s)
		}
	}

	return nil
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
