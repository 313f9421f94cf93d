// Package config loads the optional repodoc.yml configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB
)

// DefaultFiles are looked up in the working directory, in order.
var DefaultFiles = []string{"repodoc.yml", "repodoc.yaml"}

// ErrMalformed wraps every parse or validation failure of a config file.
var ErrMalformed = errors.New("malformed config file")

// Config is the content of a repodoc config file.
type Config struct {
	// IgnorePatterns are substring patterns; any path containing one is skipped.
	IgnorePatterns []string `koanf:"ignore_patterns"`

	// Path is the file the config was loaded from.
	Path string `koanf:"-"`
}

// Load reads the config file at path. When path is empty the DefaultFiles
// are tried in dir; if none exists Load returns (nil, nil). An explicit path
// that does not exist is an error.
func Load(dir, path string) (*Config, error) {
	if path == "" {
		for _, name := range DefaultFiles {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return nil, nil
		}
	}

	content, err := readLimited(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes YAML config content.
func Parse(content []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: false}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &cfg, nil
}

// Validate rejects empty patterns.
func (c *Config) Validate() error {
	for i, p := range c.IgnorePatterns {
		if p == "" {
			return fmt.Errorf("ignore_patterns[%d] is empty", i)
		}
	}
	return nil
}

// readLimited reads a config file, refusing directories and files larger
// than maxConfigFileSize.
func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s does not exist: %w", path, err)
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s too large: %d bytes (max %d)", path, info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}
