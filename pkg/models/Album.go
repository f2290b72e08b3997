package models

import (
	"fmt"
	"path"
	"time"
)

var (
	ErrAlbumNotFound = fmt.Errorf("album not found")
)

/*
Album is a client album whose images are uploaded to and stored in the
media root. Access to its images is gated by a 4 digit PIN.
*/
type Album struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Pin        string    `db:"pin" json:"-"`
	QRCodePath string    `db:"qr_code_path" json:"qr_code,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

func (a *Album) AlbumID() string {
	return a.ID
}

func (a *Album) Kind() AlbumKind {
	return AlbumKindLocal
}

func (a *Album) AccessPath() string {
	return path.Join("/client", a.ID)
}

func (a *Album) QRCodeKey() string {
	return QRCodeKey(a.ID)
}

func (a *Album) ImageSource() ImageSource {
	return ImageSource{Kind: AlbumKindLocal, Location: path.Join(AlbumImagesFolder, a.ID)}
}
