package viewmodels

import (
	"context"
	"net/http"

	"github.com/avestudio/studio/pkg/models"
)

type contextKey string

const (
	albumAccessKey contextKey = "albumAccess"
)

/*
Paginated is the envelope used by list endpoints that page their results.
*/
type Paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func WithAlbumAccess(ctx context.Context, access *models.AlbumAccess) context.Context {
	return context.WithValue(ctx, albumAccessKey, access)
}

func GetAlbumAccessFromContext(r *http.Request) *models.AlbumAccess {
	if result, ok := r.Context().Value(albumAccessKey).(*models.AlbumAccess); ok && result != nil {
		return result
	}

	return &models.AlbumAccess{}
}
