// Package store defines the key-value medium the todo list persists into
// and opens one of its drivers by name.
package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/Makepad-fr/todolist/internal/store/diskvstore"
	"github.com/Makepad-fr/todolist/internal/store/jsonstore"
	"github.com/Makepad-fr/todolist/internal/store/memstore"
	"github.com/Makepad-fr/todolist/internal/store/sqlitestore"
)

// KV is a string-keyed store of string values that outlives the process.
type KV interface {
	// Get returns the value under key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverDiskv  = "diskv"
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("store: unknown driver")

// Config selects and locates a driver.
type Config struct {
	Driver string
	Path   string // directory; "~" is expanded
}

// Drivers lists the accepted driver names.
func Drivers() []string {
	return []string{DriverDiskv, DriverJSON, DriverSQLite, DriverMemory}
}

// Open returns the KV for cfg. An empty driver means diskv.
func Open(cfg Config) (KV, error) {
	if cfg.Driver == DriverMemory {
		return memstore.New(), nil
	}
	dir, err := homedir.Expand(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	dir = filepath.Clean(dir)

	switch cfg.Driver {
	case "", DriverDiskv:
		return diskvstore.New(dir), nil
	case DriverJSON:
		return jsonstore.New(dir), nil
	case DriverSQLite:
		s, err := sqlitestore.Open(filepath.Join(dir, sqlitestore.FileName))
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownDriver, cfg.Driver, Drivers())
}
