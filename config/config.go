// Package config reads settings from the environment, optionally seeded from a .env file.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/minaorangina/skyjo/game"
	"github.com/minaorangina/skyjo/store"
	"github.com/sirupsen/logrus"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

var ErrUnknownStore = errors.New("unknown store")

type Config struct {
	Addr           string `env:"SKYJO_ADDR,default=:8000"`
	Store          string `env:"SKYJO_STORE,default=memory"`
	SQLitePath     string `env:"SKYJO_SQLITE_PATH,default=skyjo.db"`
	RedisAddr      string `env:"SKYJO_REDIS_ADDR,default=localhost:6379"`
	RedisPrefix    string `env:"SKYJO_REDIS_PREFIX,default=skyjo:"`
	ScoreLimit     int    `env:"SKYJO_SCORE_LIMIT,default=100"`
	Seed           uint64 `env:"SKYJO_SEED,default=0"`
	LogLevel       string `env:"SKYJO_LOG_LEVEL,default=info"`
	LogJSON        bool   `env:"SKYJO_LOG_JSON,default=false"`
	AllowedOrigins string `env:"SKYJO_ALLOWED_ORIGINS,default=*"`
}

// Load reads the given .env files, if they exist, then decodes the environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var c Config
	if err := envdecode.StrictDecode(&c); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("%w %q", ErrUnknownStore, c.Store)
	}
	if c.ScoreLimit <= 0 {
		return fmt.Errorf("score limit must be positive, got %d", c.ScoreLimit)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (c Config) Rules() game.Rules {
	return game.Rules{ScoreLimit: c.ScoreLimit}
}

func (c Config) Origins() []string {
	origins := []string{}
	for _, o := range strings.Split(c.AllowedOrigins, ";") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Logger builds a logger writing to w
func (c Config) Logger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if c.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// OpenStore connects to the configured snapshot store.
// The returned func releases it.
func (c Config) OpenStore(ctx context.Context) (store.GameStore, func() error, error) {
	switch c.Store {
	case StoreMemory:
		return store.NewInMemoryGameStore(), func() error { return nil }, nil

	case StoreSQLite:
		s, err := store.OpenSQLite(c.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case StoreRedis:
		s, err := store.DialRedis(ctx, c.RedisAddr, c.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("%w %q", ErrUnknownStore, c.Store)
}

// DotEnv is the file Load is usually given
func DotEnv() string {
	if f := os.Getenv("SKYJO_ENV_FILE"); f != "" {
		return f
	}
	return ".env"
}
