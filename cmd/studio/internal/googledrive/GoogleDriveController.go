package googledrive

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/avestudio/studio/cmd/studio/internal/httpjson"
	"github.com/avestudio/studio/cmd/studio/internal/viewmodels"
	"github.com/avestudio/studio/pkg/gdrive"
	"github.com/avestudio/studio/pkg/models"
	"github.com/avestudio/studio/pkg/services"
)

const (
	notConfiguredMessage = "Google Drive service is not configured. Please check your environment variables."
)

type GoogleDriveControllerConfig struct {
	Catalog           gdrive.Catalog
	DriveAlbumService services.DriveAlbumServicer
	ImageProxyService services.ImageProxyServicer
	MediaURL          string
}

type GoogleDriveController struct {
	catalog           gdrive.Catalog
	driveAlbumService services.DriveAlbumServicer
	imageProxyService services.ImageProxyServicer
	mediaURL          string
}

func NewGoogleDriveController(config GoogleDriveControllerConfig) GoogleDriveController {
	return GoogleDriveController{
		catalog:           config.Catalog,
		driveAlbumService: config.DriveAlbumService,
		imageProxyService: config.ImageProxyService,
		mediaURL:          config.MediaURL,
	}
}

/*
GET /api/google-drive/images/
*/
func (c GoogleDriveController) ListImages(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		images []gdrive.File
	)

	folderID := strings.TrimSpace(httphelpers.GetFromRequest[string](r, "folder_id"))

	if folderID == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "folder_id query parameter is required")
		return
	}

	if images, err = c.catalog.ListImages(r.Context(), folderID); err != nil {
		if errors.Is(err, gdrive.ErrNotConfigured) {
			httpjson.WriteError(w, http.StatusServiceUnavailable, notConfiguredMessage)
			return
		}

		slog.Error("error fetching images from google drive folder", "folderID", folderID, "error", err)
		httpjson.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch images: %s", err.Error()))
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, viewmodels.GoogleDriveImages{
		Success:  true,
		Count:    len(images),
		FolderID: folderID,
		Images:   images,
	})
}

/*
GET /api/google-drive/folder-info/
*/
func (c GoogleDriveController) FolderInfo(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		folder *gdrive.Folder
	)

	folderID := strings.TrimSpace(httphelpers.GetFromRequest[string](r, "folder_id"))

	if folderID == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "folder_id query parameter is required")
		return
	}

	if folder, err = c.catalog.GetFolder(r.Context(), folderID); err != nil {
		switch {
		case errors.Is(err, gdrive.ErrNotConfigured):
			httpjson.WriteError(w, http.StatusServiceUnavailable, notConfiguredMessage)

		case errors.Is(err, gdrive.ErrNotFound):
			httpjson.WriteError(w, http.StatusNotFound, "Folder not found or access denied")

		default:
			slog.Error("error fetching folder info from google drive", "folderID", folderID, "error", err)
			httpjson.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch folder info: %s", err.Error()))
		}

		return
	}

	httpjson.WriteJSON(w, http.StatusOK, viewmodels.GoogleDriveFolder{
		Success: true,
		Folder:  folder,
	})
}

/*
GET /api/google-drive/image/{fileId}/
*/
func (c GoogleDriveController) ProxyImage(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		result services.ProxiedImage
	)

	fileID := r.PathValue("fileId")
	wantThumbnail := isTruthy(httphelpers.GetFromRequest[string](r, "thumbnail"))

	if fileID == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	if result, err = c.imageProxyService.Serve(r.Context(), fileID, wantThumbnail); err != nil {
		switch {
		case errors.Is(err, gdrive.ErrNotConfigured):
			httpjson.WriteError(w, http.StatusServiceUnavailable, notConfiguredMessage)

		case errors.Is(err, services.ErrImageNotFound):
			httpjson.WriteError(w, http.StatusNotFound, "Image not found")

		case errors.Is(err, services.ErrImageUnavailable):
			httpjson.WriteError(w, http.StatusInternalServerError, "Failed to download image")

		default:
			slog.Error("error proxying google drive image", "fileID", fileID, "error", err)
			httpjson.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to proxy image: %s", err.Error()))
		}

		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Cache-Control", result.CacheControl())
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(result.Data)))

	if disposition := result.ContentDisposition(); disposition != "" {
		w.Header().Set("Content-Disposition", disposition)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

/*
GET /api/drive-albums/
*/
func (c GoogleDriveController) DriveAlbumList(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		albums []*models.DriveAlbum
	)

	if albums, err = c.driveAlbumService.GetDriveAlbumList(); err != nil {
		slog.Error("error getting drive album list", "error", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	result := make([]viewmodels.DriveAlbumSummary, 0, len(albums))

	for _, album := range albums {
		result = append(result, viewmodels.NewDriveAlbumSummary(album, c.mediaURL))
	}

	httpjson.WriteJSON(w, http.StatusOK, result)
}

/*
GET /api/drive-albums/{id}/
*/
func (c GoogleDriveController) ViewDriveAlbum(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		album  *models.DriveAlbum
		images []gdrive.File
	)

	albumID := r.PathValue("id")

	if album, err = c.driveAlbumService.GetDriveAlbum(albumID); err != nil {
		if errors.Is(err, models.ErrDriveAlbumNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "Album not found")
			return
		}

		slog.Error("error getting drive album", "albumID", albumID, "error", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	result := viewmodels.DriveAlbumDetail{
		DriveAlbumSummary: viewmodels.NewDriveAlbumSummary(album, c.mediaURL),
		Images:            []viewmodels.DriveImage{},
	}

	source := album.ImageSource()

	if images, err = c.catalog.ListImages(r.Context(), source.Location); err != nil {
		slog.Error("error listing drive album images", "albumID", albumID, "folderID", source.Location, "error", err)

		if errors.Is(err, gdrive.ErrNotConfigured) {
			result.ImagesError = notConfiguredMessage
		} else {
			result.ImagesError = "Failed to fetch images"
		}

		httpjson.WriteJSON(w, http.StatusOK, result)
		return
	}

	baseURL := httpjson.BaseURL(r)

	for _, image := range images {
		result.Images = append(result.Images, viewmodels.NewDriveImage(image, baseURL))
	}

	httpjson.WriteJSON(w, http.StatusOK, result)
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	}

	return false
}
