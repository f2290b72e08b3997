package models

import (
	"fmt"
	"path"
	"time"
)

var (
	ErrDriveAlbumNotFound = fmt.Errorf("drive album not found")
)

/*
DriveAlbum is an album whose images live in a shared Google Drive folder.
Nothing but the folder reference is stored locally; images are listed
live on every request.
*/
type DriveAlbum struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	FolderID   string    `db:"folder_id" json:"folder_id"`
	FolderLink string    `db:"folder_link" json:"folder_link"`
	QRCodePath string    `db:"qr_code_path" json:"qr_code,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

func (a *DriveAlbum) AlbumID() string {
	return a.ID
}

func (a *DriveAlbum) Kind() AlbumKind {
	return AlbumKindDrive
}

func (a *DriveAlbum) AccessPath() string {
	return path.Join("/drive", a.ID)
}

func (a *DriveAlbum) QRCodeKey() string {
	return QRCodeKey(a.ID)
}

func (a *DriveAlbum) ImageSource() ImageSource {
	return ImageSource{Kind: AlbumKindDrive, Location: a.FolderID}
}
