// Package config holds the process configuration of the server binaries.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	Addr   string
	WebDir string

	StoreKind     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	GameTTL       time.Duration

	DefaultDepth  int
	MaxDepth      int
	NodeLimit     int64
	SearchTimeout time.Duration
	AIConcurrency int

	LogLevel string
	LogJSON  bool
}

func Default() Config {
	return Config{
		Addr:          ":2888",
		WebDir:        "./web",
		StoreKind:     StoreMemory,
		RedisAddr:     "127.0.0.1:6379",
		GameTTL:       24 * time.Hour,
		DefaultDepth:  3,
		MaxDepth:      5,
		SearchTimeout: 10 * time.Second,
		AIConcurrency: 2,
		LogLevel:      "info",
	}
}

// Register binds every field to a flag on fs. Defaults come from the
// SHOGICHESS_* environment variables when set.
func (c *Config) Register(fs *flag.FlagSet) {
	d := *c
	fs.StringVar(&c.Addr, "addr", getenv("SHOGICHESS_ADDR", d.Addr), "listen address")
	fs.StringVar(&c.WebDir, "web", getenv("SHOGICHESS_WEB", d.WebDir), "directory with the web client")
	fs.StringVar(&c.StoreKind, "store", getenv("SHOGICHESS_STORE", d.StoreKind), "game store: memory or redis")
	fs.StringVar(&c.RedisAddr, "redis-addr", getenv("SHOGICHESS_REDIS_ADDR", d.RedisAddr), "redis address")
	fs.StringVar(&c.RedisPassword, "redis-password", getenv("SHOGICHESS_REDIS_PASSWORD", d.RedisPassword), "redis password")
	fs.IntVar(&c.RedisDB, "redis-db", getenvInt("SHOGICHESS_REDIS_DB", d.RedisDB), "redis database")
	fs.DurationVar(&c.GameTTL, "game-ttl", getenvDuration("SHOGICHESS_GAME_TTL", d.GameTTL), "expiry of stored games (0 keeps them)")
	fs.IntVar(&c.DefaultDepth, "depth", getenvInt("SHOGICHESS_DEPTH", d.DefaultDepth), "default AI search depth")
	fs.IntVar(&c.MaxDepth, "max-depth", getenvInt("SHOGICHESS_MAX_DEPTH", d.MaxDepth), "largest depth a client may request")
	fs.Int64Var(&c.NodeLimit, "node-limit", int64(getenvInt("SHOGICHESS_NODE_LIMIT", int(d.NodeLimit))), "node cap per AI search (0 = none)")
	fs.DurationVar(&c.SearchTimeout, "search-timeout", getenvDuration("SHOGICHESS_SEARCH_TIMEOUT", d.SearchTimeout), "time cap per AI search")
	fs.IntVar(&c.AIConcurrency, "ai-concurrency", getenvInt("SHOGICHESS_AI_CONCURRENCY", d.AIConcurrency), "concurrent AI searches")
	fs.StringVar(&c.LogLevel, "log-level", getenv("SHOGICHESS_LOG_LEVEL", d.LogLevel), "debug, info, warn or error")
	fs.BoolVar(&c.LogJSON, "log-json", getenb("SHOGICHESS_LOG_JSON", d.LogJSON), "log JSON instead of console output")
}

// Load parses args on top of the defaults and validates the result.
func Load(name string, args []string) (Config, error) {
	c := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.Register(fs)
	if err := fs.Parse(args); err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.StoreKind {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: redis store needs an address", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.StoreKind)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.DefaultDepth < 1 || c.DefaultDepth > c.MaxDepth {
		return fmt.Errorf("%w: depth %d outside 1..%d", ErrInvalidConfig, c.DefaultDepth, c.MaxDepth)
	}
	if c.NodeLimit < 0 || c.SearchTimeout < 0 || c.GameTTL < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidConfig)
	}
	if c.AIConcurrency < 1 {
		return fmt.Errorf("%w: ai concurrency %d", ErrInvalidConfig, c.AIConcurrency)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Logger builds the process logger described by the config.
func (c Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var l zerolog.Logger
	if c.LogJSON {
		l = zerolog.New(os.Stderr)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
	return l.Level(level).With().Timestamp().Logger()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
