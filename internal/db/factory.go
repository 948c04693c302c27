package db

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"speedtests/internal/benchmark"

	"github.com/spf13/afero"
)

// DefaultSQLitePath is used when no connection string is configured.
const DefaultSQLitePath = ".speedtests.db"

// StoreConfig holds configuration for the storage backend
type StoreConfig struct {
	Type             string   // "sqlite", "postgres" or "json"
	ConnectionString string   // File path for SQLite and JSON, DSN for Postgres
	Fs               afero.Fs // Filesystem for the JSON store, the OS by default
}

func (c StoreConfig) filesystem() afero.Fs {
	if c.Fs == nil {
		return afero.NewOsFs()
	}
	return c.Fs
}

// NewStore creates a benchmark.Store based on the provided configuration
func NewStore(config StoreConfig) (benchmark.Store, error) {
	switch strings.ToLower(config.Type) {
	case "postgres", "postgresql":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(config.ConnectionString)
	case "sqlite", "sqlite3", "":
		if config.ConnectionString == "" {
			config.ConnectionString = DefaultSQLitePath
		}
		return NewSQLiteStore(config.ConnectionString)
	case "json":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("json store path is required")
		}
		return benchmark.NewFileStore(config.filesystem(), config.ConnectionString)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

// HasHistory reports whether the store described by config may already hold
// runs, without creating it. File-backed stores answer by checking for their
// file; a Postgres server is assumed to exist.
func HasHistory(config StoreConfig) (bool, error) {
	switch strings.ToLower(config.Type) {
	case "sqlite", "sqlite3", "":
		path := config.ConnectionString
		if path == "" {
			path = DefaultSQLitePath
		}
		if path == ":memory:" || strings.HasPrefix(path, "file:") {
			return true, nil
		}
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return err == nil, err
	case "json":
		return afero.Exists(config.filesystem(), config.ConnectionString)
	default:
		return true, nil
	}
}

// KnownStoreType reports whether NewStore accepts t, including aliases.
func KnownStoreType(t string) bool {
	switch strings.ToLower(t) {
	case "sqlite", "sqlite3", "postgres", "postgresql", "json":
		return true
	}
	return false
}

// StoreTypes lists the accepted StoreConfig.Type values.
func StoreTypes() []string {
	return []string{"sqlite", "postgres", "json"}
}
