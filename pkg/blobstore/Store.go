package blobstore

import (
	"fmt"
	"path"
	"strings"
)

var (
	ErrNotFound   = fmt.Errorf("blob not found")
	ErrInvalidKey = fmt.Errorf("invalid blob key")
)

/*
Store is a flat key/value store for binary blobs. Keys are slash
separated paths relative to the store root, such as
"thumbnails/abc.jpg" or "client_albums/{albumId}/beach.jpg".
*/
type Store interface {
	Exists(key string) (bool, error)
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
}

/*
CleanKey normalizes a key and rejects anything that would resolve
outside of the store root.
*/
func CleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, `\`, "/")
	cleaned := path.Clean("/" + key)
	cleaned = strings.TrimPrefix(cleaned, "/")

	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidKey, key)
	}

	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: '%s'", ErrInvalidKey, key)
		}
	}

	return cleaned, nil
}
