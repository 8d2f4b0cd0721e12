package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-rstify/internal/fileutil"
	"github.com/alnah/go-rstify/internal/pipeline"
	"github.com/alnah/go-rstify/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrEmptyConfigName  = errors.New("config name cannot be empty")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrInvalidWidth     = errors.New("invalid wrap width")
	ErrInvalidExtension = errors.New("invalid input extension")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxDirLength   = 4096 // PATH_MAX on Linux
	MaxStyleLength = 50   // chroma style names are short
)

// DefaultStyle is the chroma style used when colorizing output.
const DefaultStyle = "monokai"

// dirName is the directory under the user config dir searched for named configs.
const dirName = "go-rstify"

// Config holds all configuration for a conversion run.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Wrap      WrapConfig      `yaml:"wrap"`
	Highlight HighlightConfig `yaml:"highlight"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Extensions []string `yaml:"extensions"` // Directory discovery filter
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// WrapConfig defines line wrapping.
type WrapConfig struct {
	Width int `yaml:"width"`
}

// HighlightConfig defines terminal colorization for --color.
type HighlightConfig struct {
	Style string `yaml:"style"`
}

// Validate checks field ranges and lengths.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxDirLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxDirLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleLength); err != nil {
		return err
	}

	for _, ext := range c.Input.Extensions {
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidExtension, err)
		}
	}

	if c.Wrap.Width < pipeline.MinPageWidth || c.Wrap.Width > pipeline.MaxPageWidth {
		return fmt.Errorf("%w: %d (must be between %d and %d)",
			ErrInvalidWidth, c.Wrap.Width, pipeline.MinPageWidth, pipeline.MaxPageWidth)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:     InputConfig{DefaultDir: "", Extensions: []string{".txt"}},
		Output:    OutputConfig{DefaultDir: ""},
		Wrap:      WrapConfig{Width: pipeline.DefaultPageWidth},
		Highlight: HighlightConfig{Style: DefaultStyle},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	err := yamlutil.DecodeFile(configPath, cfg)
	switch {
	case err == nil, errors.Is(err, yamlutil.ErrNilData):
		// An empty file selects the defaults.
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	case errors.Is(err, os.ErrPermission):
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if len(cfg.Input.Extensions) == 0 {
		cfg.Input.Extensions = DefaultConfig().Input.Extensions
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// current directory, then the user config directory, each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, dirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
