package viewmodels

import (
	"net/url"
	"time"

	"github.com/avestudio/studio/pkg/gdrive"
	"github.com/avestudio/studio/pkg/models"
)

type DriveAlbumSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	FolderID   string    `json:"folder_id"`
	FolderLink string    `json:"folder_link"`
	QRCode     string    `json:"qr_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type DriveAlbumDetail struct {
	DriveAlbumSummary

	Images      []DriveImage `json:"images"`
	ImagesError string       `json:"images_error,omitempty"`
}

/*
DriveImage is a Drive file plus links back through the image proxy, so
browsers never talk to Drive directly.
*/
type DriveImage struct {
	gdrive.File

	ProxyLink          string `json:"proxyLink"`
	ThumbnailProxyLink string `json:"thumbnailProxyLink"`
}

func NewDriveAlbumSummary(album *models.DriveAlbum, mediaURL string) DriveAlbumSummary {
	result := DriveAlbumSummary{
		ID:         album.ID,
		Title:      album.Title,
		FolderID:   album.FolderID,
		FolderLink: album.FolderLink,
		CreatedAt:  album.CreatedAt,
	}

	if album.QRCodePath != "" {
		result.QRCode = MediaURL(mediaURL, album.QRCodePath)
	}

	return result
}

func NewDriveImage(file gdrive.File, baseURL string) DriveImage {
	proxyLink := baseURL + "/api/google-drive/image/" + url.PathEscape(file.ID) + "/"

	return DriveImage{
		File:               file,
		ProxyLink:          proxyLink,
		ThumbnailProxyLink: proxyLink + "?thumbnail=true",
	}
}
