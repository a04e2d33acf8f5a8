// Package store persists small key-value records such as the best score.
//
// Two implementations exist: SQLite on disk and an in-memory map. The choice
// is made once, in Open; game code only sees the Prefs capability, which never
// fails.
package store

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store: closed")

// KV is a string key-value store.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Open returns a SQLite-backed store at path. An empty path, or any failure
// to open, migrate or write to the database, selects the in-memory store
// instead; the failure is logged and not returned.
func Open(path string, logger *log.Logger) KV {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if path == "" {
		logger.Info("using in-memory store")
		return NewMemory()
	}

	db, err := OpenSQLite(path)
	if err != nil {
		logger.Warn("storage unavailable, falling back to memory", "path", path, "err", err)
		return NewMemory()
	}
	logger.Info("opened store", "path", path)
	return db
}
