package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"time"

	"github.com/avestudio/studio/pkg/gdrive"
)

const (
	ThumbnailMaxAge = 24 * time.Hour
	OriginalMaxAge  = time.Hour

	thumbnailContentType = "image/jpeg"
)

var (
	ErrImageNotFound    = fmt.Errorf("image not found")
	ErrImageUnavailable = fmt.Errorf("image content unavailable")
)

/*
ThumbnailCache is the part of thumbnail.Cache the image proxy needs.
*/
type ThumbnailCache interface {
	Lookup(fileID string) ([]byte, bool)
	GetOrCreate(fileID string, source []byte) ([]byte, error)
}

type ImageProxyServicer interface {
	Serve(ctx context.Context, fileID string, wantThumbnail bool) (ProxiedImage, error)
}

type ImageProxyServiceConfig struct {
	Catalog    gdrive.Catalog
	Thumbnails ThumbnailCache
}

/*
ProxiedImage is a response body plus what the HTTP layer needs to
describe it.
*/
type ProxiedImage struct {
	Data        []byte
	ContentType string
	Filename    string
	MaxAge      time.Duration
	Thumbnail   bool
}

func (p ProxiedImage) CacheControl() string {
	return fmt.Sprintf("max-age=%d", int(p.MaxAge.Seconds()))
}

/*
ContentDisposition is empty for thumbnails. Originals are served inline
with their Drive file name.
*/
func (p ProxiedImage) ContentDisposition() string {
	if p.Thumbnail || p.Filename == "" {
		return ""
	}

	return mime.FormatMediaType("inline", map[string]string{"filename": p.Filename})
}

type ImageProxyService struct {
	catalog    gdrive.Catalog
	thumbnails ThumbnailCache
}

func NewImageProxyService(config ImageProxyServiceConfig) ImageProxyService {
	return ImageProxyService{
		catalog:    config.Catalog,
		thumbnails: config.Thumbnails,
	}
}

/*
Serve resolves one Drive image. A cached thumbnail is returned without
touching Drive. Otherwise the metadata and bytes are fetched; when a
thumbnail was asked for it is generated and cached, and if that fails
the original is served instead.
*/
func (s ImageProxyService) Serve(ctx context.Context, fileID string, wantThumbnail bool) (ProxiedImage, error) {
	var (
		err      error
		metadata *gdrive.File
		content  []byte
		thumb    []byte
	)

	l := slog.With("fileID", fileID, "thumbnail", wantThumbnail)

	if wantThumbnail {
		if cached, ok := s.thumbnails.Lookup(fileID); ok {
			l.Debug("serving cached thumbnail")
			return thumbnailImage(cached), nil
		}
	}

	if metadata, err = s.catalog.GetMetadata(ctx, fileID); err != nil {
		return ProxiedImage{}, upstreamError(err, ErrImageNotFound)
	}

	if content, err = s.catalog.GetContent(ctx, fileID); err != nil {
		return ProxiedImage{}, upstreamError(err, ErrImageUnavailable)
	}

	if wantThumbnail {
		if thumb, err = s.thumbnails.GetOrCreate(fileID, content); err == nil {
			return thumbnailImage(thumb), nil
		}

		l.Warn("serving original in place of thumbnail", "error", err)
	}

	return ProxiedImage{
		Data:        content,
		ContentType: metadata.MimeType,
		Filename:    metadata.Name,
		MaxAge:      OriginalMaxAge,
	}, nil
}

func thumbnailImage(b []byte) ProxiedImage {
	return ProxiedImage{
		Data:        b,
		ContentType: thumbnailContentType,
		MaxAge:      ThumbnailMaxAge,
		Thumbnail:   true,
	}
}

func upstreamError(err, absent error) error {
	if errors.Is(err, gdrive.ErrNotFound) {
		return fmt.Errorf("%w: %w", absent, err)
	}

	return err
}
