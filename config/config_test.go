package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minaorangina/skyjo/store"
	utils "github.com/minaorangina/skyjo/internal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allVars = []string{
	"SKYJO_ADDR", "SKYJO_STORE", "SKYJO_SQLITE_PATH", "SKYJO_REDIS_ADDR", "SKYJO_REDIS_PREFIX",
	"SKYJO_SCORE_LIMIT", "SKYJO_SEED", "SKYJO_LOG_LEVEL", "SKYJO_LOG_JSON", "SKYJO_ALLOWED_ORIGINS",
}

// clearEnv unsets every setting for the test and puts them back afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range allVars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load()
	utils.AssertNoError(t, err)

	utils.AssertEqual(t, c.Addr, ":8000")
	utils.AssertEqual(t, c.Store, StoreMemory)
	utils.AssertEqual(t, c.ScoreLimit, 100)
	utils.AssertEqual(t, c.Seed, uint64(0))
	utils.AssertEqual(t, c.LogLevel, "info")
	utils.AssertEqual(t, c.LogJSON, false)
	utils.AssertEqual(t, c.RedisPrefix, "skyjo:")
	assert.Equal(t, []string{"*"}, c.Origins())
	utils.AssertEqual(t, c.Rules().ScoreLimit, 100)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SKYJO_ADDR", ":9999")
	t.Setenv("SKYJO_STORE", "sqlite")
	t.Setenv("SKYJO_SCORE_LIMIT", "50")
	t.Setenv("SKYJO_SEED", "1234")
	t.Setenv("SKYJO_LOG_JSON", "true")
	t.Setenv("SKYJO_ALLOWED_ORIGINS", "http://a.test; http://b.test")

	c, err := Load()
	utils.AssertNoError(t, err)

	utils.AssertEqual(t, c.Addr, ":9999")
	utils.AssertEqual(t, c.Store, StoreSQLite)
	utils.AssertEqual(t, c.ScoreLimit, 50)
	utils.AssertEqual(t, c.Seed, uint64(1234))
	utils.AssertTrue(t, c.LogJSON)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.Origins())
}

func TestLoadFromDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SKYJO_ADDR", ":7000")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SKYJO_ADDR=:1111\nSKYJO_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SKYJO_LOG_LEVEL") })

	c, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	utils.AssertNoError(t, err)

	t.Log("The environment wins over the file")
	utils.AssertEqual(t, c.Addr, ":7000")
	utils.AssertEqual(t, c.LogLevel, "debug")
}

func TestLoadRejectsBadSettings(t *testing.T) {
	tt := map[string][2]string{
		"unknown store":           {"SKYJO_STORE", "postgres"},
		"zero score limit":        {"SKYJO_SCORE_LIMIT", "0"},
		"bad log level":           {"SKYJO_LOG_LEVEL", "loud"},
		"non-numeric seed":        {"SKYJO_SEED", "abc"},
		"non-numeric score limit": {"SKYJO_SCORE_LIMIT", "abc"},
		"non-boolean json flag":   {"SKYJO_LOG_JSON", "sometimes"},
	}

	for name, kv := range tt {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			utils.AssertErrored(t, err)
		})
	}

	clearEnv(t)
	t.Setenv("SKYJO_STORE", "postgres")
	_, err := Load()
	assert.True(t, errors.Is(err, ErrUnknownStore))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	c := Config{LogLevel: "warn", LogJSON: true}

	log := c.Logger(&buf)
	log.Info("hidden")
	log.WithField("game_id", "abc").Warn("shown")

	utils.AssertEqual(t, log.GetLevel(), logrus.WarnLevel)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"game_id":"abc"`)
}

func TestOpenStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		s, closeFn, err := Config{Store: StoreMemory}.OpenStore(context.Background())
		utils.AssertNoError(t, err)
		defer closeFn()
		_, ok := s.(*store.InMemoryGameStore)
		utils.AssertTrue(t, ok)
	})

	t.Run("sqlite", func(t *testing.T) {
		c := Config{Store: StoreSQLite, SQLitePath: filepath.Join(t.TempDir(), "skyjo.db")}
		s, closeFn, err := c.OpenStore(context.Background())
		utils.AssertNoError(t, err)
		defer closeFn()
		_, ok := s.(*store.SQLiteGameStore)
		utils.AssertTrue(t, ok)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := Config{Store: "floppy"}.OpenStore(context.Background())
		assert.True(t, errors.Is(err, ErrUnknownStore))
	})
}
