package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrInvalidKey is returned for empty keys and keys escaping the storage root.
var ErrInvalidKey = errors.New("invalid object key")

//go:generate mockgen -source=storage.go -package storage -destination storage_mock.go Service

// Service stores product images and returns the URL clients fetch them from.
type Service interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// ObjectKey joins prefix and name into a slash separated object key.
func ObjectKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	name = strings.TrimLeft(name, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return strings.TrimPrefix(clean, "/"), nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
