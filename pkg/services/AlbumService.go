package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/avestudio/studio/pkg/blobstore"
	"github.com/avestudio/studio/pkg/models"
	"github.com/google/uuid"
	"github.com/rfberaldo/sqlz"
)

var (
	ErrInvalidImageName = fmt.Errorf("invalid image file name")
)

type AlbumServicer interface {
	AddImage(albumID, filename string, data []byte) (*models.AlbumImage, error)
	CreateAlbum(title string) (*models.Album, error)
	DeleteAlbum(albumID string) error
	GetAlbum(albumID string) (*models.Album, error)
	GetAlbumByPin(albumID, pin string) (*models.Album, error)
	GetAlbumImages(albumID string) ([]models.AlbumImage, error)
	GetAlbumList() ([]*models.Album, error)
	RegenerateQRCode(albumID string) (*models.Album, error)
}

type AlbumServiceConfig struct {
	DB            *sqlz.DB
	MediaStore    blobstore.Store
	QRCodeService QRCodeServicer
}

type AlbumService struct {
	db            *sqlz.DB
	mediaStore    blobstore.Store
	qrCodeService QRCodeServicer
}

func NewAlbumService(config AlbumServiceConfig) AlbumService {
	return AlbumService{
		db:            config.DB,
		mediaStore:    config.MediaStore,
		qrCodeService: config.QRCodeService,
	}
}

/*
CreateAlbum stores a new album with a fresh PIN and generates its QR
code. A failed QR code does not fail the album; it can be regenerated.
*/
func (s AlbumService) CreateAlbum(title string) (*models.Album, error) {
	var (
		err error
		pin string
	)

	if pin, err = GeneratePin(); err != nil {
		return nil, err
	}

	album := &models.Album{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Pin:       pin,
		CreatedAt: time.Now().UTC(),
	}

	sql := `
INSERT INTO client_albums (
	id
	, title
	, pin
	, created_at
) VALUES (?, ?, ?, ?)
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, album.ID, album.Title, album.Pin, album.CreatedAt); err != nil {
		return nil, fmt.Errorf("error inserting album '%s': %w", album.Title, err)
	}

	if err = s.generateQRCode(album); err != nil {
		slog.Error("error generating QR code for album", "albumID", album.ID, "error", err)
	}

	return album, nil
}

func (s AlbumService) GetAlbum(albumID string) (*models.Album, error) {
	var (
		err error
	)

	result := &models.Album{}

	sql := `
SELECT
	a.id
	, a.title
	, a.pin
	, a.qr_code_path
	, a.created_at
FROM client_albums AS a
WHERE 1=1
	AND a.id=?
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, result, sql, albumID); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrAlbumNotFound, albumID)
		}

		return nil, fmt.Errorf("error querying for album %s: %w", albumID, err)
	}

	return result, nil
}

/*
GetAlbumByPin is a single exact match on album ID and PIN. A wrong PIN
and an unknown album both come back as ErrAlbumNotFound.
*/
func (s AlbumService) GetAlbumByPin(albumID, pin string) (*models.Album, error) {
	var (
		err error
	)

	result := &models.Album{}

	sql := `
SELECT
	a.id
	, a.title
	, a.pin
	, a.qr_code_path
	, a.created_at
FROM client_albums AS a
WHERE 1=1
	AND a.id=?
	AND a.pin=?
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, result, sql, albumID, pin); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrAlbumNotFound, albumID)
		}

		return nil, fmt.Errorf("error querying for album %s by PIN: %w", albumID, err)
	}

	return result, nil
}

func (s AlbumService) GetAlbumList() ([]*models.Album, error) {
	var (
		err error
	)

	result := []*models.Album{}

	sql := `
SELECT
	a.id
	, a.title
	, a.pin
	, a.qr_code_path
	, a.created_at
FROM client_albums AS a
WHERE 1=1
ORDER BY a.created_at DESC
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &result, sql); err != nil && !sqlz.IsNotFound(err) {
		return result, fmt.Errorf("error querying for albums: %w", err)
	}

	return result, nil
}

func (s AlbumService) GetAlbumImages(albumID string) ([]models.AlbumImage, error) {
	var (
		err error
	)

	result := []models.AlbumImage{}

	sql := `
SELECT
	i.id
	, i.album_id
	, i.image_path
	, i.created_at
FROM album_images AS i
WHERE 1=1
	AND i.album_id=?
ORDER BY i.created_at, i.id
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &result, sql, albumID); err != nil && !sqlz.IsNotFound(err) {
		return result, fmt.Errorf("error querying for images in album %s: %w", albumID, err)
	}

	return result, nil
}

/*
AddImage writes the image to client_albums/{albumId}/ in the media store
and records it against the album. A name already taken in that folder
gets a numeric suffix.
*/
func (s AlbumService) AddImage(albumID, filename string, data []byte) (*models.AlbumImage, error) {
	var (
		err   error
		key   string
		album *models.Album
	)

	if album, err = s.GetAlbum(albumID); err != nil {
		return nil, err
	}

	name, ok := imageName(filename)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidImageName, filename)
	}

	if key, err = availableKey(s.mediaStore, album.ImageSource().Location, name); err != nil {
		return nil, err
	}

	if err = s.mediaStore.Put(key, data); err != nil {
		return nil, fmt.Errorf("error storing image '%s' for album %s: %w", name, albumID, err)
	}

	image := &models.AlbumImage{
		AlbumID:   albumID,
		ImagePath: key,
		CreatedAt: time.Now().UTC(),
	}

	sql := `
INSERT INTO album_images (
	album_id
	, image_path
	, created_at
) VALUES (?, ?, ?)
RETURNING id
`

	inserted := insertedRow{}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, &inserted, sql, image.AlbumID, image.ImagePath, image.CreatedAt); err != nil {
		_ = s.mediaStore.Delete(key)
		return nil, fmt.Errorf("error inserting image '%s' for album %s: %w", key, albumID, err)
	}

	image.ID = inserted.ID
	return image, nil
}

/*
DeleteAlbum removes the album and its image rows, then their files and
its QR code. Files are only touched once the rows are gone.
*/
func (s AlbumService) DeleteAlbum(albumID string) error {
	var (
		err    error
		album  *models.Album
		images []models.AlbumImage
	)

	if album, err = s.GetAlbum(albumID); err != nil {
		return err
	}

	if images, err = s.GetAlbumImages(albumID); err != nil {
		return err
	}

	l := slog.With("albumID", albumID)

	if err = s.deleteAlbumRows(albumID); err != nil {
		return err
	}

	for _, image := range images {
		if err = s.mediaStore.Delete(image.ImagePath); err != nil {
			l.Error("error deleting album image file", "key", image.ImagePath, "error", err)
		}
	}

	if album.QRCodePath != "" {
		if err = s.mediaStore.Delete(album.QRCodePath); err != nil {
			l.Error("error deleting album QR code", "key", album.QRCodePath, "error", err)
		}
	}

	l.Info("album deleted", "images", len(images))
	return nil
}

/*
deleteAlbumRows removes the album and its image rows in one transaction,
so a failure leaves both in place.
*/
func (s AlbumService) deleteAlbumRows(albumID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction to delete album %s: %w", albumID, err)
	}

	defer tx.Rollback()

	if _, err = tx.Exec(ctx, `DELETE FROM album_images WHERE album_id=?`, albumID); err != nil {
		return fmt.Errorf("error deleting images for album %s: %w", albumID, err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM client_albums WHERE id=?`, albumID); err != nil {
		return fmt.Errorf("error deleting album %s: %w", albumID, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing delete of album %s: %w", albumID, err)
	}

	return nil
}

/*
imageName reduces an uploaded filename to its base name. Names that
would resolve to a directory are rejected.
*/
func imageName(filename string) (string, bool) {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), `\`, "/"))

	switch name {
	case "", ".", "..", "/":
		return "", false
	}

	return name, true
}

func (s AlbumService) RegenerateQRCode(albumID string) (*models.Album, error) {
	var (
		err   error
		album *models.Album
	)

	if album, err = s.GetAlbum(albumID); err != nil {
		return nil, err
	}

	if err = s.generateQRCode(album); err != nil {
		return nil, err
	}

	return album, nil
}

func (s AlbumService) generateQRCode(album *models.Album) error {
	var (
		err error
		key string
	)

	if key, err = s.qrCodeService.Generate(album); err != nil {
		return err
	}

	sql := `
UPDATE client_albums SET
	qr_code_path=?
WHERE 1=1
	AND id=?
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, key, album.ID); err != nil {
		return fmt.Errorf("error saving QR code path for album %s: %w", album.ID, err)
	}

	album.QRCodePath = key
	return nil
}

/*
availableKey returns folder/name, or folder/name_N.ext for the first N
that is not already taken.
*/
func availableKey(store blobstore.Store, folder, name string) (string, error) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := path.Join(folder, name)

	for n := 1; ; n++ {
		exists, err := store.Exists(candidate)
		if err != nil {
			if errors.Is(err, blobstore.ErrInvalidKey) {
				return "", fmt.Errorf("%w: '%s'", ErrInvalidImageName, name)
			}

			return "", err
		}

		if !exists {
			return candidate, nil
		}

		candidate = path.Join(folder, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}
}
