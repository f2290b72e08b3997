package viewmodels

import (
	"strings"
	"time"

	"github.com/avestudio/studio/pkg/models"
)

type PortfolioImage struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Image       string          `json:"image"`
	Category    models.Category `json:"category"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewPortfolioImage(image models.PortfolioImage, mediaURL string) PortfolioImage {
	return PortfolioImage{
		ID:          image.ID,
		Title:       image.Title,
		Image:       MediaURL(mediaURL, image.ImagePath),
		Category:    image.Category,
		Description: image.Description,
		CreatedAt:   image.CreatedAt,
	}
}

/*
MediaURL joins the public media prefix and a media key.
*/
func MediaURL(mediaURL, key string) string {
	if key == "" {
		return ""
	}

	return strings.TrimSuffix(mediaURL, "/") + "/" + strings.TrimPrefix(key, "/")
}
