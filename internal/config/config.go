// Package config holds conversion settings loaded from an optional YAML
// file and overridden by command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"runtime"

	"github.com/goccy/go-yaml"

	"github.com/vd09-projects/v8toistanbul/internal/wrapper"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = ".v8toistanbul.yaml"

// Output formats.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatDir   = "dir"
)

type Config struct {
	// WrapperLength is subtracted from every runtime offset; -1 derives it
	// from NodeVersion.
	WrapperLength int    `yaml:"wrapperLength"`
	NodeVersion   string `yaml:"nodeVersion"`

	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	Root    string   `yaml:"root"`

	Format string `yaml:"format"`
	Out    string `yaml:"out"`
	Pretty bool   `yaml:"pretty"`

	UTF16       bool `yaml:"utf16"`
	Workers     int  `yaml:"workers"`
	SkipMissing bool `yaml:"skipMissing"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
}

func Default() Config {
	return Config{
		WrapperLength: -1,
		Exclude:       []string{`(^|/)node_modules/`},
		Format:        FormatJSON,
		Workers:       runtime.NumCPU(),
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load reads path over Default. A missing file is an error only when
// required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("could not read config %q: %w", path, err)
	}
	if err := yaml.UnmarshalWithOptions(b, &cfg, yaml.Strict()); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatJSONL:
	case FormatDir:
		if c.Out == "" {
			return fmt.Errorf("format %q needs an output directory", c.Format)
		}
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.WrapperLength < -1 {
		return fmt.Errorf("wrapper length must be >= 0, got %d", c.WrapperLength)
	}
	if _, _, err := c.Patterns(); err != nil {
		return err
	}
	return nil
}

// ResolvedWrapperLength is WrapperLength, or the wrapper length of
// NodeVersion when WrapperLength is -1.
func (c Config) ResolvedWrapperLength() int {
	if c.WrapperLength >= 0 {
		return c.WrapperLength
	}
	return wrapper.Length(c.NodeVersion)
}

// Patterns compiles the include and exclude expressions.
func (c Config) Patterns() (include, exclude []*regexp.Regexp, err error) {
	if include, err = compile(c.Include); err != nil {
		return nil, nil, fmt.Errorf("include: %w", err)
	}
	if exclude, err = compile(c.Exclude); err != nil {
		return nil, nil, fmt.Errorf("exclude: %w", err)
	}
	return include, exclude, nil
}

func compile(exprs []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		re, err := regexp.Compile(e)
		if err != nil {
			return nil, err
		}
		res = append(res, re)
	}
	return res, nil
}
