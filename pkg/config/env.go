package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override file configuration
const (
	EnvStorageBackend = "CLIMATE_STORAGE_BACKEND"
	EnvSQLitePath     = "CLIMATE_SQLITE_PATH"
	EnvPostgresDSN    = "CLIMATE_POSTGRES_DSN"
	EnvListenAddr     = "CLIMATE_LISTEN_ADDR"
	EnvHTTPPort       = "CLIMATE_HTTP_PORT"
)

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error. Variables already set are left alone.
func LoadDotEnv(filename string) error {
	err := godotenv.Load(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading %s: %w", filename, err)
	}
	return nil
}

// ApplyEnvOverrides replaces configured values with any CLIMATE_* environment variables that are set
func (c *ConfigData) ApplyEnvOverrides() error {
	if v, ok := os.LookupEnv(EnvStorageBackend); ok {
		c.Storage.Backend = v
	}
	if v, ok := os.LookupEnv(EnvSQLitePath); ok {
		if c.Storage.SQLite == nil {
			c.Storage.SQLite = &SQLiteData{}
		}
		c.Storage.SQLite.Path = v
	}
	if v, ok := os.LookupEnv(EnvPostgresDSN); ok {
		if c.Storage.Postgres == nil {
			c.Storage.Postgres = &PostgresData{}
		}
		c.Storage.Postgres.ConnectionString = v
	}
	if v, ok := os.LookupEnv(EnvListenAddr); ok {
		c.REST.ListenAddr = v
	}
	if v, ok := os.LookupEnv(EnvHTTPPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvHTTPPort, v, err)
		}
		c.REST.Port = port
	}
	return nil
}
