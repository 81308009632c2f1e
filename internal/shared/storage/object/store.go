package object

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	// ErrExists is returned by Create when the key is already taken.
	ErrExists = errors.New("object already exists")
	// ErrNotFound is returned by Open for a missing key.
	ErrNotFound = errors.New("object not found")
	// ErrInvalidKey is returned for absolute or traversing keys.
	ErrInvalidKey = errors.New("invalid storage key")
)

// ObjectStore defines the contract for saving and retrieving binary objects.
// Objects are immutable: Create never overwrites an existing key.
type ObjectStore interface {
	Create(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// CleanKey normalizes a storage key to forward slashes and rejects keys
// that are empty, absolute or escape the store root.
func CleanKey(storageKey string) (string, error) {
	key := strings.ReplaceAll(strings.TrimSpace(storageKey), "\\", "/")
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", ErrInvalidKey
		}
	}
	clean := path.Clean(key)
	if clean == "." {
		return "", ErrInvalidKey
	}
	return clean, nil
}
