// Package config loads the service configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all configurable paths and server settings.
type Config struct {
	// Server
	Addr         string   `json:"addr"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`

	// Paths
	AssetRoot   string `json:"asset_root"`
	StaticRoot  string `json:"static_root"`
	Favicon     string `json:"favicon"`
	CatalogFile string `json:"catalog_file"`

	// Render settings
	CanvasSize int  `json:"canvas_size"`
	Preload    bool `json:"preload"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// Duration is a time.Duration read from a JSON string such as "10s".
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts either a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case float64:
		d.Duration = time.Duration(v * float64(time.Second))
	case string:
		dur, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		d.Duration = dur
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
	return nil
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Addr       string
	AssetRoot  string
	Catalog    string
	LogLevel   string
	LogFile    string
	CanvasSize int
	Preload    bool
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty, then the PORT
// environment variable, then the config file.
func (c *Config) Resolve(flags Flags) {
	if flags.AssetRoot != "" {
		c.AssetRoot = flags.AssetRoot
	}
	if flags.Catalog != "" {
		c.CatalogFile = flags.Catalog
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.CanvasSize > 0 {
		c.CanvasSize = flags.CanvasSize
	}
	if flags.Preload {
		c.Preload = true
	}

	switch {
	case flags.Addr != "":
		c.Addr = flags.Addr
	case os.Getenv("PORT") != "":
		c.Addr = ":" + os.Getenv("PORT")
	case c.Addr == "":
		c.Addr = ":3000"
	}

	if c.AssetRoot == "" {
		c.AssetRoot = "."
	}
	// Resolve relative paths against the asset root
	if c.StaticRoot == "" {
		c.StaticRoot = filepath.Join(c.AssetRoot, "static")
	} else if !filepath.IsAbs(c.StaticRoot) {
		c.StaticRoot = filepath.Join(c.AssetRoot, c.StaticRoot)
	}
	if c.Favicon == "" {
		c.Favicon = filepath.Join(c.AssetRoot, "favicon.ico")
	} else if !filepath.IsAbs(c.Favicon) {
		c.Favicon = filepath.Join(c.AssetRoot, c.Favicon)
	}

	if c.CanvasSize <= 0 {
		c.CanvasSize = 140
	}
	if c.ReadTimeout.Duration <= 0 {
		c.ReadTimeout.Duration = 10 * time.Second
	}
	if c.WriteTimeout.Duration <= 0 {
		c.WriteTimeout.Duration = 30 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
