package cache

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"github.com/avestudio/studio/pkg/gdrive"
	"github.com/avestudio/studio/pkg/models"
	"github.com/avestudio/studio/pkg/services"
)

/*
Thumbnails is the part of thumbnail.Cache the warmer needs.
*/
type Thumbnails interface {
	Exists(fileID string) bool
	GetOrCreate(fileID string, source []byte) ([]byte, error)
}

type ThumbnailWarmer interface {
	Warm() WarmReport
}

type ThumbnailWarmerConfig struct {
	Catalog           gdrive.Catalog
	DriveAlbumService services.DriveAlbumServicer
	MaxCacheWorkers   int
	ShutdownCtx       context.Context
	Thumbnails        Thumbnails
}

type WarmReport struct {
	Albums  int
	Images  int
	Cached  int
	Created int64
	Failed  int64
}

/*
ThumbnailWarmerService walks every Drive album and generates the
thumbnails that are not cached yet, so the first visitor of an album
does not pay for them.
*/
type ThumbnailWarmerService struct {
	catalog           gdrive.Catalog
	driveAlbumService services.DriveAlbumServicer
	maxCacheWorkers   int
	shutdownCtx       context.Context
	thumbnails        Thumbnails
}

func NewThumbnailWarmerService(config ThumbnailWarmerConfig) ThumbnailWarmerService {
	workers := config.MaxCacheWorkers

	if workers <= 0 {
		workers = 1
	}

	ctx := config.ShutdownCtx

	if ctx == nil {
		ctx = context.Background()
	}

	return ThumbnailWarmerService{
		catalog:           config.Catalog,
		driveAlbumService: config.DriveAlbumService,
		maxCacheWorkers:   workers,
		shutdownCtx:       ctx,
		thumbnails:        config.Thumbnails,
	}
}

func (c ThumbnailWarmerService) Warm() WarmReport {
	var (
		err     error
		albums  []*models.DriveAlbum
		images  []gdrive.File
		created atomic.Int64
		failed  atomic.Int64
	)

	report := WarmReport{}

	slog.Info("starting thumbnail warm run...")

	if albums, err = c.driveAlbumService.GetDriveAlbumList(); err != nil {
		slog.Error("error retrieving drive albums", "error", err)
		return report
	}

	report.Albums = len(albums)
	pool := pond.NewPool(c.maxCacheWorkers, pond.WithContext(c.shutdownCtx))

	for _, album := range albums {
		source := album.ImageSource()

		if images, err = c.catalog.ListImages(c.shutdownCtx, source.Location); err != nil {
			slog.Error("error listing images for drive album", "albumID", album.ID, "folderID", source.Location, "error", err)
			continue
		}

		report.Images += len(images)

		for _, image := range images {
			if c.thumbnails.Exists(image.ID) {
				report.Cached++
				continue
			}

			pool.Submit(func() {
				content, err := c.catalog.GetContent(c.shutdownCtx, image.ID)
				if err != nil {
					slog.Error("error downloading image for thumbnail", "albumID", album.ID, "fileID", image.ID, "error", err)
					failed.Add(1)
					return
				}

				if _, err = c.thumbnails.GetOrCreate(image.ID, content); err != nil {
					failed.Add(1)
					return
				}

				slog.Debug("thumbnail warmed", "albumID", album.ID, "fileID", image.ID)
				created.Add(1)
			})
		}
	}

	_ = pool.Stop().Wait()

	report.Created = created.Load()
	report.Failed = failed.Load()

	slog.Info("thumbnail warm run finished",
		"albums", report.Albums,
		"images", report.Images,
		"cached", report.Cached,
		"created", report.Created,
		"failed", report.Failed,
	)

	return report
}
