package main

import (
	"net/http"

	"github.com/adampresley/adamgokit/sessions"
	"github.com/avestudio/studio/cmd/studio/internal/viewmodels"
	"github.com/avestudio/studio/pkg/models"
)

/*
newAlbumAccessMiddleware loads the albums this browser has unlocked
into the request context. A missing or unreadable session means nothing
is unlocked yet.
*/
func newAlbumAccessMiddleware(sessionService sessions.Session[*models.AlbumAccess]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				err    error
				access *models.AlbumAccess
			)

			if access, err = sessionService.Get(r); err != nil || access == nil {
				access = &models.AlbumAccess{}
			}

			ctx := viewmodels.WithAlbumAccess(r.Context(), access)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
