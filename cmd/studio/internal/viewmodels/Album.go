package viewmodels

import (
	"time"

	"github.com/avestudio/studio/pkg/models"
)

type AlbumSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

/*
AlbumDetail only carries images once the browser has unlocked the album
with its PIN.
*/
type AlbumDetail struct {
	AlbumSummary

	Locked bool         `json:"locked"`
	Images []AlbumImage `json:"images"`
}

type AlbumImage struct {
	ID        int64     `json:"id"`
	Image     string    `json:"image"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAlbumSummary(album *models.Album) AlbumSummary {
	return AlbumSummary{
		ID:        album.ID,
		Title:     album.Title,
		CreatedAt: album.CreatedAt,
	}
}

func NewAlbumImage(image models.AlbumImage, mediaURL string) AlbumImage {
	return AlbumImage{
		ID:        image.ID,
		Image:     MediaURL(mediaURL, image.ImagePath),
		Filename:  image.Filename(),
		CreatedAt: image.CreatedAt,
	}
}
