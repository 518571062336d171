// Package config loads mazegen settings.
//
// Settings are layered, later sources overriding earlier ones:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file (--config, or $XDG_CONFIG_HOME/mazegen/config.toml)
//  3. A .env file in the working directory, if present
//  4. MAZEGEN_* environment variables
//
// Command-line flags are applied on top by the CLI.
//
// # File Format
//
//	[maze]
//	width = 20
//	height = 10
//	algorithm = "prim"
//
//	[render]
//	style = "ascii"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[archive]
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	mzerrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/pipeline"
	"github.com/matzehuels/mazegen/pkg/render/text"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full application configuration.
type Config struct {
	Maze    MazeConfig    `toml:"maze"`
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Archive ArchiveConfig `toml:"archive"`
	Server  ServerConfig  `toml:"server"`
}

type MazeConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Algorithm string `toml:"algorithm"`
	Seed      uint64 `toml:"seed,omitempty"` // 0 = random
}

type RenderConfig struct {
	Style   string   `toml:"style"`
	Formats []string `toml:"formats"`
}

type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir,omitempty"` // empty = XDG cache dir
	RedisAddr string   `toml:"redis_addr,omitempty"`
	RedisDB   int      `toml:"redis_db,omitempty"`
	Prefix    string   `toml:"prefix,omitempty"`
	TTL       Duration `toml:"ttl"`
}

type ArchiveConfig struct {
	MongoURI   string `toml:"mongo_uri,omitempty"` // empty = in-memory archive
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxDimension int    `toml:"max_dimension"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Maze: MazeConfig{
			Width:     pipeline.DefaultWidth,
			Height:    pipeline.DefaultHeight,
			Algorithm: pipeline.DefaultAlgorithm,
		},
		Render: RenderConfig{
			Style:   pipeline.DefaultStyle,
			Formats: []string{pipeline.FormatText},
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Archive: ArchiveConfig{
			Database:   "mazegen",
			Collection: "mazes",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxDimension: mzerrors.DefaultMaxDimension,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/mazegen/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mazegen", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mazegen", "config.toml"), nil
}

// Load builds the configuration. An explicit path must exist; the default
// path is used only if present.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	// .env is optional; its values never override real environment variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("read .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// applyEnv overrides fields from MAZEGEN_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return mzerrors.New(mzerrors.ErrCodeInvalidConfig, "%s must be an integer, got %q", key, v)
		}
		*dst = n
		return nil
	}

	if err := num("MAZEGEN_WIDTH", &c.Maze.Width); err != nil {
		return err
	}
	if err := num("MAZEGEN_HEIGHT", &c.Maze.Height); err != nil {
		return err
	}
	if err := num("MAZEGEN_MAX_DIMENSION", &c.Server.MaxDimension); err != nil {
		return err
	}
	if err := num("MAZEGEN_REDIS_DB", &c.Cache.RedisDB); err != nil {
		return err
	}
	if v, ok := lookup("MAZEGEN_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return mzerrors.New(mzerrors.ErrCodeInvalidConfig, "MAZEGEN_SEED must be an unsigned integer, got %q", v)
		}
		c.Maze.Seed = seed
	}
	str("MAZEGEN_ALGORITHM", &c.Maze.Algorithm)
	str("MAZEGEN_STYLE", &c.Render.Style)
	str("MAZEGEN_CACHE", &c.Cache.Backend)
	str("MAZEGEN_CACHE_DIR", &c.Cache.Dir)
	str("MAZEGEN_REDIS_ADDR", &c.Cache.RedisAddr)
	str("MAZEGEN_MONGO_URI", &c.Archive.MongoURI)
	str("MAZEGEN_ADDR", &c.Server.Addr)
	return nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := mzerrors.ValidateDimensions(c.Maze.Width, c.Maze.Height, 0); err != nil {
		return err
	}
	if _, err := maze.ParseAlgorithm(c.Maze.Algorithm); err != nil {
		return mzerrors.FromMaze(err)
	}
	if err := mzerrors.ValidateStyle(c.Render.Style, text.Styles()); err != nil {
		return err
	}
	for _, f := range c.Render.Formats {
		if err := mzerrors.ValidateFormat(f, pipeline.Formats()); err != nil {
			return err
		}
	}
	if err := mzerrors.ValidateChoice(mzerrors.ErrCodeInvalidConfig, "cache backend", c.Cache.Backend,
		[]string{CacheFile, CacheRedis, CacheNone}); err != nil {
		return err
	}
	if c.Cache.Backend == CacheRedis {
		if err := mzerrors.ValidateRedisAddr(c.Cache.RedisAddr); err != nil {
			return err
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return mzerrors.New(mzerrors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Archive.MongoURI != "" {
		if err := mzerrors.ValidateMongoURI(c.Archive.MongoURI); err != nil {
			return err
		}
	}
	if c.Server.MaxDimension < 0 {
		return mzerrors.New(mzerrors.ErrCodeInvalidConfig, "server max_dimension must not be negative")
	}
	return nil
}

// Write encodes the configuration as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
