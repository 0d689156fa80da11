// Package storage provides durable key-value storage for persisted state.
//
// Every backend replaces a key's value as a whole: a Set either lands the full
// value or leaves the previous one in place.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Well-known keys.
const (
	KeyTasks = "tasks"
	KeyTheme = "theme"
)

var (
	// ErrNotFound is returned by Get when the key has no stored value.
	ErrNotFound = errors.New("key not found")
	// ErrInvalidKey is returned for keys outside [a-z0-9_-]+.
	ErrInvalidKey = errors.New("invalid key")
	// ErrUnknownBackend is returned by Open for unrecognized backend names.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Storage is a key-value store holding whole serialized values.
type Storage interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the recognized backend names.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendMemory}
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Dir is the data directory for the file backend.
	Dir string
	// DBPath is the database file for the sqlite backend.
	DBPath string
}

// Open creates the backend named in opts.
func Open(opts Options) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return NewFileStore(opts.Dir)
	case BackendSQLite:
		dbPath := opts.DBPath
		if dbPath == "" {
			dbPath = filepath.Join(opts.Dir, "tasklist.db")
		}
		return NewSQLiteStore(dbPath)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q (expected %s)", ErrUnknownBackend, opts.Backend, strings.Join(Backends(), "|"))
	}
}

// ValidateKey reports whether key is usable by every backend.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		valid := (c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '_' || c == '-'
		if !valid {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
