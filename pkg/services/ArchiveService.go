package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/avestudio/studio/pkg/blobstore"
	"github.com/avestudio/studio/pkg/models"
	"github.com/klauspost/compress/flate"
)

const (
	maxArchiveNameLength = 180
)

var (
	ErrNoImages = fmt.Errorf("no images found in this album")

	forbiddenFilenameChars = strings.NewReplacer(
		"<", " ",
		">", " ",
		":", " ",
		`"`, " ",
		"/", " ",
		`\`, " ",
		"|", " ",
		"?", " ",
		"*", " ",
		"\x00", " ",
	)
)

type ArchiveServicer interface {
	Export(album *models.Album, images []models.AlbumImage) (Archive, error)
}

type ArchiveServiceConfig struct {
	MediaStore blobstore.Store
}

/*
Archive is a finished ZIP held in memory.
*/
type Archive struct {
	Filename string
	Data     []byte
	Entries  []string
}

/*
ContentDisposition builds an attachment header. Non-ASCII file names
are encoded per RFC 2231.
*/
func (a Archive) ContentDisposition() string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename})
}

type ArchiveService struct {
	mediaStore blobstore.Store
}

func NewArchiveService(config ArchiveServiceConfig) ArchiveService {
	return ArchiveService{
		mediaStore: config.MediaStore,
	}
}

/*
Export zips every image of the album that still exists in the media
store. Images whose files are gone are skipped. An album with nothing
left to zip returns ErrNoImages.
*/
func (s ArchiveService) Export(album *models.Album, images []models.AlbumImage) (Archive, error) {
	var (
		err  error
		buf  bytes.Buffer
		data []byte
		w    io.Writer
	)

	l := slog.With("albumID", album.ID)

	result := Archive{
		Filename: ArchiveFilename(album.Title, album.ID),
		Entries:  []string{},
	}

	zipWriter := zip.NewWriter(&buf)
	zipWriter.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	used := map[string]struct{}{}

	for _, image := range images {
		if data, err = s.mediaStore.Get(image.ImagePath); err != nil {
			if errors.Is(err, blobstore.ErrNotFound) || errors.Is(err, blobstore.ErrInvalidKey) {
				l.Debug("skipping missing album image", "key", image.ImagePath)
				continue
			}

			return Archive{}, fmt.Errorf("error reading album image '%s': %w", image.ImagePath, err)
		}

		name := uniqueEntryName(image.Filename(), used)

		header := &zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		}

		if !image.CreatedAt.IsZero() {
			header.Modified = image.CreatedAt
		}

		if w, err = zipWriter.CreateHeader(header); err != nil {
			return Archive{}, fmt.Errorf("error adding '%s' to zip: %w", name, err)
		}

		if _, err = w.Write(data); err != nil {
			return Archive{}, fmt.Errorf("error writing '%s' to zip: %w", name, err)
		}

		result.Entries = append(result.Entries, name)
	}

	if err = zipWriter.Close(); err != nil {
		return Archive{}, fmt.Errorf("error finishing zip: %w", err)
	}

	if len(result.Entries) == 0 {
		return Archive{}, ErrNoImages
	}

	result.Data = buf.Bytes()
	l.Info("album archive created", "entries", len(result.Entries), "size", len(result.Data))
	return result, nil
}

/*
ArchiveFilename turns an album title into "album_{title}.zip". Characters
that are not allowed in file names are dropped, runs of whitespace become
a single underscore and the result is capped at 180 characters. A title
with nothing usable left falls back to the album ID.
*/
func ArchiveFilename(title, albumID string) string {
	safe := forbiddenFilenameChars.Replace(title)
	safe = strings.Join(strings.Fields(safe), "_")
	safe = strings.Trim(safe, "_")

	if utf8.RuneCountInString(safe) > maxArchiveNameLength {
		safe = string([]rune(safe)[:maxArchiveNameLength])
	}

	if safe == "" {
		safe = albumID
	}

	return "album_" + safe + ".zip"
}

/*
uniqueEntryName suffixes a counter before the extension when name was
already used in this archive.
*/
func uniqueEntryName(name string, used map[string]struct{}) string {
	if name == "" {
		name = "image"
	}

	candidate := name
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for n := 1; ; n++ {
		if _, taken := used[candidate]; !taken {
			used[candidate] = struct{}{}
			return candidate
		}

		candidate = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
}
