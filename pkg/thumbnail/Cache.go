package thumbnail

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"regexp"

	"github.com/avestudio/studio/pkg/blobstore"
)

const (
	Folder = "thumbnails"
)

var (
	ErrNotProduced   = fmt.Errorf("thumbnail could not be produced")
	ErrInvalidFileID = fmt.Errorf("invalid file ID for thumbnail")

	validFileID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

/*
Cache stores generated thumbnails keyed by the remote file ID. An
entry is written once and never replaced or expired. The presence of
the key is the only cache-hit signal.
*/
type Cache struct {
	store blobstore.Store
}

func NewCache(store blobstore.Store) Cache {
	return Cache{
		store: store,
	}
}

/*
Key returns the blob key for a file's thumbnail.
*/
func Key(fileID string) (string, error) {
	if !validFileID.MatchString(fileID) {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidFileID, fileID)
	}

	return path.Join(Folder, fileID+".jpg"), nil
}

func (c Cache) Exists(fileID string) bool {
	key, err := Key(fileID)
	if err != nil {
		return false
	}

	exists, err := c.store.Exists(key)
	if err != nil {
		slog.Error("error checking thumbnail cache", "fileID", fileID, "error", err)
		return false
	}

	return exists
}

func (c Cache) Lookup(fileID string) ([]byte, bool) {
	key, err := Key(fileID)
	if err != nil {
		return nil, false
	}

	b, err := c.store.Get(key)
	if err != nil {
		if !errors.Is(err, blobstore.ErrNotFound) {
			slog.Error("error reading cached thumbnail", "fileID", fileID, "error", err)
		}

		return nil, false
	}

	return b, true
}

/*
GetOrCreate returns the cached thumbnail for fileID. On a miss it is
generated from source and persisted. Any failure to decode, encode or
store is logged and reported as ErrNotProduced so the caller can fall
back to the original bytes.
*/
func (c Cache) GetOrCreate(fileID string, source []byte) ([]byte, error) {
	var (
		err error
		key string
		b   []byte
	)

	if key, err = Key(fileID); err != nil {
		return nil, err
	}

	if cached, ok := c.Lookup(fileID); ok {
		return cached, nil
	}

	l := slog.With("fileID", fileID, "key", key)

	if b, err = Generate(source); err != nil {
		l.Error("error generating thumbnail", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNotProduced, err)
	}

	if err = c.store.Put(key, b); err != nil {
		l.Error("error storing thumbnail", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNotProduced, err)
	}

	l.Debug("thumbnail created", "size", len(b))
	return b, nil
}
