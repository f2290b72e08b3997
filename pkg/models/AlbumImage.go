package models

import (
	"path"
	"time"
)

const (
	AlbumImagesFolder = "client_albums"
)

type AlbumImage struct {
	ID        int64     `db:"id" json:"id"`
	AlbumID   string    `db:"album_id" json:"-"`
	ImagePath string    `db:"image_path" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Filename is derived from the stored path, never stored on its own.
func (i AlbumImage) Filename() string {
	if i.ImagePath == "" {
		return ""
	}

	return path.Base(i.ImagePath)
}
