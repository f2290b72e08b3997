package clientaccess

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/avestudio/studio/cmd/studio/internal/httpjson"
	"github.com/avestudio/studio/cmd/studio/internal/viewmodels"
	"github.com/avestudio/studio/pkg/models"
	"github.com/avestudio/studio/pkg/services"
)

/*
AccessSession is the cookie session that remembers unlocked albums.
*/
type AccessSession interface {
	Get(r *http.Request) (*models.AlbumAccess, error)
	Set(r *http.Request, value *models.AlbumAccess) error
	Save(w http.ResponseWriter, r *http.Request) error
}

type ClientAccessControllerConfig struct {
	AccessService  services.AccessServicer
	AlbumService   services.AlbumServicer
	ArchiveService services.ArchiveServicer
	MediaURL       string
	SessionService AccessSession
}

type ClientAccessController struct {
	accessService  services.AccessServicer
	albumService   services.AlbumServicer
	archiveService services.ArchiveServicer
	mediaURL       string
	sessionService AccessSession
}

func NewClientAccessController(config ClientAccessControllerConfig) ClientAccessController {
	return ClientAccessController{
		accessService:  config.AccessService,
		albumService:   config.AlbumService,
		archiveService: config.ArchiveService,
		mediaURL:       config.MediaURL,
		sessionService: config.SessionService,
	}
}

/*
GET /api/albums/
*/
func (c ClientAccessController) AlbumList(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		albums []*models.Album
	)

	if albums, err = c.albumService.GetAlbumList(); err != nil {
		slog.Error("error getting album list", "error", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	result := make([]viewmodels.AlbumSummary, 0, len(albums))

	for _, album := range albums {
		result = append(result, viewmodels.NewAlbumSummary(album))
	}

	httpjson.WriteJSON(w, http.StatusOK, result)
}

/*
GET /api/albums/{id}/
*/
func (c ClientAccessController) ViewAlbum(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		album  *models.Album
		images []models.AlbumImage
	)

	albumID := r.PathValue("id")

	if album, err = c.albumService.GetAlbum(albumID); err != nil {
		if errors.Is(err, models.ErrAlbumNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "Not found.")
			return
		}

		slog.Error("error getting album", "albumID", albumID, "error", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	result := viewmodels.AlbumDetail{
		AlbumSummary: viewmodels.NewAlbumSummary(album),
		Locked:       true,
		Images:       []viewmodels.AlbumImage{},
	}

	if viewmodels.GetAlbumAccessFromContext(r).Has(album.ID) {
		if images, err = c.albumService.GetAlbumImages(album.ID); err != nil {
			slog.Error("error getting album images", "albumID", albumID, "error", err)
			httpjson.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred.")
			return
		}

		result.Locked = false

		for _, image := range images {
			result.Images = append(result.Images, viewmodels.NewAlbumImage(image, c.mediaURL))
		}
	}

	httpjson.WriteJSON(w, http.StatusOK, result)
}

/*
POST /api/verify-pin/
*/
func (c ClientAccessController) VerifyPin(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		fields map[string]string
		grant  models.AccessGrant
	)

	if fields, err = httpjson.ReadFields(r, "pin", "album_id"); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if grant, err = c.accessService.Verify(fields["album_id"], fields["pin"]); err != nil {
		writeAccessError(w, err, fields["album_id"])
		return
	}

	c.rememberGrant(w, r, grant.AlbumID)
	httpjson.WriteJSON(w, http.StatusOK, grant)
}

/*
POST /api/download-album/
*/
func (c ClientAccessController) DownloadAlbum(w http.ResponseWriter, r *http.Request) {
	var (
		err     error
		fields  map[string]string
		album   *models.Album
		images  []models.AlbumImage
		archive services.Archive
	)

	if fields, err = httpjson.ReadFields(r, "pin", "album_id"); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if album, err = c.accessService.Unlock(fields["album_id"], fields["pin"]); err != nil {
		writeAccessError(w, err, fields["album_id"])
		return
	}

	if images, err = c.albumService.GetAlbumImages(album.ID); err != nil {
		slog.Error("error getting album images for download", "albumID", album.ID, "error", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "Failed to prepare download")
		return
	}

	if archive, err = c.archiveService.Export(album, images); err != nil {
		if errors.Is(err, services.ErrNoImages) {
			httpjson.WriteError(w, http.StatusNotFound, "No images found in this album")
			return
		}

		slog.Error("error creating album archive", "albumID", album.ID, "error", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "Failed to prepare download")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", archive.ContentDisposition())
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(archive.Data)))
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(archive.Data); err != nil {
		slog.Error("error writing album archive", "albumID", album.ID, "error", err)
		return
	}

	slog.Info("album download completed", "albumID", album.ID, "filename", archive.Filename, "entries", len(archive.Entries))
}

func (c ClientAccessController) rememberGrant(w http.ResponseWriter, r *http.Request, albumID string) {
	access := viewmodels.GetAlbumAccessFromContext(r)
	access.Grant(albumID)

	if err := c.sessionService.Set(r, access); err != nil {
		slog.Error("error setting album access session", "albumID", albumID, "error", err)
		return
	}

	if err := c.sessionService.Save(w, r); err != nil {
		slog.Error("error saving album access session", "albumID", albumID, "error", err)
	}
}

func writeAccessError(w http.ResponseWriter, err error, albumID string) {
	switch {
	case errors.Is(err, services.ErrPinRequired):
		httpjson.WriteError(w, http.StatusBadRequest, "PIN is required")

	case errors.Is(err, services.ErrAlbumIDRequired):
		httpjson.WriteError(w, http.StatusBadRequest, "Album ID is required")

	case errors.Is(err, services.ErrInvalidPin):
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid PIN for this album")

	default:
		slog.Error("error verifying album PIN", "albumID", albumID, "error", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
