package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avestudio/studio/pkg/blobstore"
	"github.com/avestudio/studio/pkg/gdrive"
	"github.com/avestudio/studio/pkg/models"
	"github.com/google/uuid"
	"github.com/rfberaldo/sqlz"
)

type DriveAlbumServicer interface {
	CreateDriveAlbum(title, folderLink string) (*models.DriveAlbum, error)
	DeleteDriveAlbum(albumID string) error
	GetDriveAlbum(albumID string) (*models.DriveAlbum, error)
	GetDriveAlbumList() ([]*models.DriveAlbum, error)
	RegenerateQRCode(albumID string) (*models.DriveAlbum, error)
	SetFolderLink(albumID, folderLink string) (*models.DriveAlbum, error)
}

type DriveAlbumServiceConfig struct {
	DB            *sqlz.DB
	MediaStore    blobstore.Store
	QRCodeService QRCodeServicer
}

type DriveAlbumService struct {
	db            *sqlz.DB
	mediaStore    blobstore.Store
	qrCodeService QRCodeServicer
}

func NewDriveAlbumService(config DriveAlbumServiceConfig) DriveAlbumService {
	return DriveAlbumService{
		db:            config.DB,
		mediaStore:    config.MediaStore,
		qrCodeService: config.QRCodeService,
	}
}

/*
CreateDriveAlbum extracts the folder ID from the share link before
anything is written. A link that does not yield a folder ID fails with
gdrive.ErrInvalidFolderLink and nothing is stored.
*/
func (s DriveAlbumService) CreateDriveAlbum(title, folderLink string) (*models.DriveAlbum, error) {
	var (
		err      error
		folderID string
	)

	folderLink = strings.TrimSpace(folderLink)

	if folderID, err = gdrive.ExtractFolderID(folderLink); err != nil {
		return nil, err
	}

	album := &models.DriveAlbum{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(title),
		FolderID:   folderID,
		FolderLink: folderLink,
		CreatedAt:  time.Now().UTC(),
	}

	sql := `
INSERT INTO drive_albums (
	id
	, title
	, folder_id
	, folder_link
	, created_at
) VALUES (?, ?, ?, ?, ?)
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, album.ID, album.Title, album.FolderID, album.FolderLink, album.CreatedAt); err != nil {
		return nil, fmt.Errorf("error inserting drive album '%s': %w", album.Title, err)
	}

	if err = s.generateQRCode(album); err != nil {
		slog.Error("error generating QR code for drive album", "albumID", album.ID, "error", err)
	}

	return album, nil
}

/*
SetFolderLink points the album at a new folder. The folder ID is
re-extracted from the new link; when that fails the stored record is
left exactly as it was.
*/
func (s DriveAlbumService) SetFolderLink(albumID, folderLink string) (*models.DriveAlbum, error) {
	var (
		err      error
		album    *models.DriveAlbum
		folderID string
	)

	if album, err = s.GetDriveAlbum(albumID); err != nil {
		return nil, err
	}

	folderLink = strings.TrimSpace(folderLink)

	if folderID, err = gdrive.ExtractFolderID(folderLink); err != nil {
		return nil, err
	}

	sql := `
UPDATE drive_albums SET
	folder_id=?
	, folder_link=?
WHERE 1=1
	AND id=?
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, folderID, folderLink, albumID); err != nil {
		return nil, fmt.Errorf("error updating folder link for drive album %s: %w", albumID, err)
	}

	album.FolderID = folderID
	album.FolderLink = folderLink
	return album, nil
}

func (s DriveAlbumService) GetDriveAlbum(albumID string) (*models.DriveAlbum, error) {
	var (
		err error
	)

	result := &models.DriveAlbum{}

	sql := `
SELECT
	d.id
	, d.title
	, d.folder_id
	, d.folder_link
	, d.qr_code_path
	, d.created_at
FROM drive_albums AS d
WHERE 1=1
	AND d.id=?
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, result, sql, albumID); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrDriveAlbumNotFound, albumID)
		}

		return nil, fmt.Errorf("error querying for drive album %s: %w", albumID, err)
	}

	return result, nil
}

func (s DriveAlbumService) GetDriveAlbumList() ([]*models.DriveAlbum, error) {
	var (
		err error
	)

	result := []*models.DriveAlbum{}

	sql := `
SELECT
	d.id
	, d.title
	, d.folder_id
	, d.folder_link
	, d.qr_code_path
	, d.created_at
FROM drive_albums AS d
WHERE 1=1
ORDER BY d.created_at DESC
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &result, sql); err != nil && !sqlz.IsNotFound(err) {
		return result, fmt.Errorf("error querying for drive albums: %w", err)
	}

	return result, nil
}

func (s DriveAlbumService) DeleteDriveAlbum(albumID string) error {
	var (
		err   error
		album *models.DriveAlbum
	)

	if album, err = s.GetDriveAlbum(albumID); err != nil {
		return err
	}

	if album.QRCodePath != "" {
		if err = s.mediaStore.Delete(album.QRCodePath); err != nil {
			slog.Error("error deleting drive album QR code", "albumID", albumID, "key", album.QRCodePath, "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, `DELETE FROM drive_albums WHERE id=?`, albumID); err != nil {
		return fmt.Errorf("error deleting drive album %s: %w", albumID, err)
	}

	return nil
}

func (s DriveAlbumService) RegenerateQRCode(albumID string) (*models.DriveAlbum, error) {
	var (
		err   error
		album *models.DriveAlbum
	)

	if album, err = s.GetDriveAlbum(albumID); err != nil {
		return nil, err
	}

	if err = s.generateQRCode(album); err != nil {
		return nil, err
	}

	return album, nil
}

func (s DriveAlbumService) generateQRCode(album *models.DriveAlbum) error {
	var (
		err error
		key string
	)

	if key, err = s.qrCodeService.Generate(album); err != nil {
		return err
	}

	sql := `
UPDATE drive_albums SET
	qr_code_path=?
WHERE 1=1
	AND id=?
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, key, album.ID); err != nil {
		return fmt.Errorf("error saving QR code path for drive album %s: %w", album.ID, err)
	}

	album.QRCodePath = key
	return nil
}
