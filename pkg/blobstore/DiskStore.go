package blobstore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

/*
DiskStore keeps blobs as files below a root directory. Writes go to a
temporary file in the destination directory which is then renamed into
place, so readers never see a partial file.
*/
type DiskStore struct {
	root string
}

func NewDiskStore(root string) DiskStore {
	return DiskStore{
		root: root,
	}
}

/*
Path returns the absolute location of key on disk.
*/
func (s DiskStore) Path(key string) (string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", err
	}

	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

func (s DiskStore) Exists(key string) (bool, error) {
	var (
		err      error
		fullPath string
		info     os.FileInfo
	)

	if fullPath, err = s.Path(key); err != nil {
		return false, err
	}

	if info, err = os.Stat(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("error checking blob '%s': %w", key, err)
	}

	return !info.IsDir(), nil
}

func (s DiskStore) Get(key string) ([]byte, error) {
	var (
		err      error
		fullPath string
		b        []byte
	)

	if fullPath, err = s.Path(key); err != nil {
		return nil, err
	}

	if b, err = os.ReadFile(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s'", ErrNotFound, key)
		}

		return nil, fmt.Errorf("error reading blob '%s': %w", key, err)
	}

	return b, nil
}

func (s DiskStore) Put(key string, data []byte) error {
	var (
		err      error
		fullPath string
		tmp      *os.File
	)

	if fullPath, err = s.Path(key); err != nil {
		return err
	}

	dir := filepath.Dir(fullPath)

	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directory for blob '%s': %w", key, err)
	}

	if tmp, err = os.CreateTemp(dir, ".tmp-"+filepath.Base(fullPath)+"-*"); err != nil {
		return fmt.Errorf("error creating temp file for blob '%s': %w", key, err)
	}

	tmpName := tmp.Name()

	cleanup := func() {
		if removeErr := os.Remove(tmpName); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			slog.Error("error removing temp file", "path", tmpName, "error", removeErr)
		}
	}

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("error writing blob '%s': %w", key, err)
	}

	if err = tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("error closing temp file for blob '%s': %w", key, err)
	}

	if err = os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("error setting permissions on blob '%s': %w", key, err)
	}

	if err = os.Rename(tmpName, fullPath); err != nil {
		cleanup()
		return fmt.Errorf("error moving blob '%s' into place: %w", key, err)
	}

	return nil
}

/*
Delete removes a blob. Deleting a missing blob is not an error.
*/
func (s DiskStore) Delete(key string) error {
	var (
		err      error
		fullPath string
	)

	if fullPath, err = s.Path(key); err != nil {
		return err
	}

	if err = os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error deleting blob '%s': %w", key, err)
	}

	return nil
}

/*
Keys lists every blob below prefix, sorted. Temporary files from
in-flight writes are skipped.
*/
func (s DiskStore) Keys(prefix string) ([]string, error) {
	var (
		err  error
		base string
	)

	result := []string{}

	if base, err = s.Path(prefix); err != nil {
		return nil, err
	}

	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}

			return walkErr
		}

		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}

		rel, relErr := filepath.Rel(s.root, p)
		if relErr != nil {
			return relErr
		}

		result = append(result, filepath.ToSlash(rel))
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error listing blobs under '%s': %w", prefix, err)
	}

	sort.Strings(result)
	return result, nil
}
