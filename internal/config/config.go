// Package config loads CLI settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonshape"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = ".jsonshape.yaml"

// Config mirrors jsonshape.Options plus presentation settings.
type Config struct {
	NameCapacity     int     `yaml:"name_capacity"`
	TypeBuckets      int     `yaml:"type_buckets"`
	MaxLoad          float64 `yaml:"max_load"`
	PoolItemCount    int     `yaml:"pool_item_count"`
	EmptyArrayAsNone bool    `yaml:"empty_array_as_none"`
	DuplicateKeys    string  `yaml:"duplicate_keys"` // ignore | warn | error
	MaxDepth         int     `yaml:"max_depth"`
	MaxBytes         int64   `yaml:"max_bytes"`

	Language string `yaml:"language"` // en | ja
	Color    string `yaml:"color"`    // auto | always | never
}

// Default returns the settings used without a config file.
func Default() Config {
	return Config{DuplicateKeys: "ignore", Language: "en", Color: "auto"}
}

// Load reads path. An empty path tries DefaultFile and falls back to Default
// when it does not exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, rejecting unknown keys.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and ranged settings.
func (c Config) Validate() error {
	if _, err := severity(c.DuplicateKeys); err != nil {
		return err
	}
	switch strings.ToLower(c.Color) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color: unknown mode %q", c.Color)
	}
	if c.MaxLoad < 0 || c.MaxLoad >= 1 {
		return fmt.Errorf("max_load: %v out of range [0,1)", c.MaxLoad)
	}
	if c.PoolItemCount < 0 || c.PoolItemCount > 64 {
		return fmt.Errorf("pool_item_count: %d out of range 0..64", c.PoolItemCount)
	}
	return nil
}

func severity(s string) (jsonshape.Severity, error) {
	switch strings.ToLower(s) {
	case "", "ignore":
		return jsonshape.Ignore, nil
	case "warn":
		return jsonshape.Warn, nil
	case "error":
		return jsonshape.Error, nil
	}
	return jsonshape.Ignore, fmt.Errorf("duplicate_keys: unknown policy %q", s)
}

// Options converts c into Universe options using logger.
func (c Config) Options(logger *zap.Logger) jsonshape.Options {
	sev, _ := severity(c.DuplicateKeys)
	return jsonshape.Options{
		NameCapacity:     c.NameCapacity,
		TypeBuckets:      c.TypeBuckets,
		MaxLoad:          c.MaxLoad,
		PoolItemCount:    c.PoolItemCount,
		EmptyArrayAsNone: c.EmptyArrayAsNone,
		Strictness:       jsonshape.Strictness{OnDuplicateKey: sev},
		MaxDepth:         c.MaxDepth,
		MaxBytes:         c.MaxBytes,
		Logger:           logger,
	}
}
