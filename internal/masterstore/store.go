package masterstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Driver identifies a storage backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
	DriverMemory     Driver = "memory"
)

// FileExt is appended to keys when they are written as files or objects.
const FileExt = ".csv"

var (
	// ErrNotFound is returned by Load when no master exists for the key.
	ErrNotFound = errors.New("master not found")
	// ErrInvalidKey is returned for keys that cannot be used as a file name.
	ErrInvalidKey = errors.New("invalid master key")
	// ErrLocked is returned when another process holds the period lock.
	ErrLocked = errors.New("master is locked by another import")
)

// Store is the persistence surface for master tables.
type Store interface {
	// Load returns the encoded master for key or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the master for key.
	Save(ctx context.Context, key string, data []byte) error
	// List returns all stored keys in ascending order.
	List(ctx context.Context) ([]string, error)
	Driver() Driver
}

// ValidateKey rejects keys that would escape the store root or collide with
// hidden files.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidKey, key)
	}
	return nil
}

func keyFromName(name string) (string, bool) {
	if !strings.HasSuffix(name, FileExt) || strings.HasPrefix(name, ".") {
		return "", false
	}
	key := strings.TrimSuffix(name, FileExt)
	if key == "" {
		return "", false
	}
	return key, true
}
