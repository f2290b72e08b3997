package models

import "path"

type AlbumKind string

const (
	AlbumKindLocal AlbumKind = "local"
	AlbumKindDrive AlbumKind = "drive"

	QRCodesFolder = "qrcodes"
)

/*
HasQRCode is implemented by every album variant that gets a QR code
pointing at its public access page.
*/
type HasQRCode interface {
	AlbumID() string
	Kind() AlbumKind
	AccessPath() string
	QRCodeKey() string
}

/*
ImageSource is a media root folder for local albums and a Google Drive
folder ID for drive albums.
*/
type ImageSource struct {
	Kind     AlbumKind
	Location string
}

func QRCodeKey(albumID string) string {
	return path.Join(QRCodesFolder, albumID+".png")
}
