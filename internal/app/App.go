package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/s3"
	"github.com/avestudio/studio/internal/cache"
	"github.com/avestudio/studio/internal/configuration"
	"github.com/avestudio/studio/internal/database"
	"github.com/avestudio/studio/pkg/blobstore"
	"github.com/avestudio/studio/pkg/gdrive"
	"github.com/avestudio/studio/pkg/services"
	"github.com/avestudio/studio/pkg/thumbnail"
	"github.com/rfberaldo/sqlz"
)

const (
	ThumbnailStoreDisk = "disk"
	ThumbnailStoreS3   = "s3"
)

/*
App holds the services shared by the web server and the admin CLI.
*/
type App struct {
	Config *configuration.Config
	DB     *sqlz.DB

	MediaStore     blobstore.DiskStore
	ThumbnailStore blobstore.Store
	Thumbnails     thumbnail.Cache
	Catalog        gdrive.Catalog

	AccessService     services.AccessService
	AlbumService      services.AlbumService
	ArchiveService    services.ArchiveService
	DriveAlbumService services.DriveAlbumService
	ImageProxyService services.ImageProxyService
	PortfolioService  services.PortfolioService
	QRCodeService     services.QRCodeService
	ShareService      services.ShareService
	ThumbnailWarmer   cache.ThumbnailWarmerService
}

/*
New connects to the database, runs migrations and builds every service.
Missing Google Drive credentials are not an error: the catalog becomes
gdrive.Unavailable and Drive endpoints answer 503.
*/
func New(ctx context.Context, config *configuration.Config) (*App, error) {
	var (
		err error
	)

	a := &App{
		Config:     config,
		MediaStore: blobstore.NewDiskStore(config.MediaRoot),
	}

	if a.DB, err = database.Connect(config.DSN); err != nil {
		return nil, err
	}

	if err = database.Migrate(a.DB); err != nil {
		return nil, err
	}

	if a.ThumbnailStore, err = newThumbnailStore(config, a.MediaStore); err != nil {
		return nil, err
	}

	if a.Catalog, err = newCatalog(ctx, config); err != nil {
		return nil, err
	}

	a.Thumbnails = thumbnail.NewCache(a.ThumbnailStore)

	a.QRCodeService = services.NewQRCodeService(services.QRCodeServiceConfig{
		FrontendURL: config.FrontendURL,
		MediaStore:  a.MediaStore,
	})

	a.AlbumService = services.NewAlbumService(services.AlbumServiceConfig{
		DB:            a.DB,
		MediaStore:    a.MediaStore,
		QRCodeService: a.QRCodeService,
	})

	a.DriveAlbumService = services.NewDriveAlbumService(services.DriveAlbumServiceConfig{
		DB:            a.DB,
		MediaStore:    a.MediaStore,
		QRCodeService: a.QRCodeService,
	})

	a.PortfolioService = services.NewPortfolioService(services.PortfolioServiceConfig{
		DB:              a.DB,
		DefaultPageSize: config.PortfolioPageSize,
		MediaStore:      a.MediaStore,
	})

	a.AccessService = services.NewAccessService(services.AccessServiceConfig{
		AlbumService: a.AlbumService,
	})

	a.ArchiveService = services.NewArchiveService(services.ArchiveServiceConfig{
		MediaStore: a.MediaStore,
	})

	a.ImageProxyService = services.NewImageProxyService(services.ImageProxyServiceConfig{
		Catalog:    a.Catalog,
		Thumbnails: a.Thumbnails,
	})

	a.ShareService = services.NewShareService(services.ShareServiceConfig{
		FromEmail:     config.EmailFromAddress,
		FromName:      config.EmailFromName,
		QRCodeService: a.QRCodeService,
		Sender:        services.ResendSender{ApiKey: config.EmailApiKey},
	})

	a.ThumbnailWarmer = cache.NewThumbnailWarmerService(cache.ThumbnailWarmerConfig{
		Catalog:           a.Catalog,
		DriveAlbumService: a.DriveAlbumService,
		MaxCacheWorkers:   config.MaxCacheWorkers,
		ShutdownCtx:       ctx,
		Thumbnails:        a.Thumbnails,
	})

	return a, nil
}

func newCatalog(ctx context.Context, config *configuration.Config) (gdrive.Catalog, error) {
	client, err := gdrive.NewClient(ctx, gdrive.Config{
		ApiKey:          config.GoogleDriveApiKey,
		CredentialsPath: config.GoogleDriveCredentialsPath,
		BaseURL:         config.DriveBaseURL,
	})

	if errors.Is(err, gdrive.ErrNotConfigured) {
		slog.Warn("google drive is not configured. drive endpoints will return 503")
		return gdrive.Unavailable{}, nil
	}

	if err != nil {
		return nil, err
	}

	return client, nil
}

func newThumbnailStore(config *configuration.Config, mediaStore blobstore.DiskStore) (blobstore.Store, error) {
	var (
		err      error
		s3Client s3.S3Client
	)

	switch config.ThumbnailStore {
	case "", ThumbnailStoreDisk:
		return mediaStore, nil

	case ThumbnailStoreS3:
		awsConfig := &awsconfig.Config{
			Endpoint:        config.AwsEndpointUrl,
			Region:          config.AwsRegion,
			AccessKeyID:     config.AwsAccessKeyId,
			SecretAccessKey: config.AwsSecretAccessKey,
		}

		retrier.Retry(func() error {
			if err = awsConfig.Load(); err != nil {
				slog.Error("failed to load AWS config. trying again", "error", err)
				return err
			}

			return nil
		})

		if err != nil {
			return nil, fmt.Errorf("error loading AWS config: %w", err)
		}

		if s3Client, err = s3.NewClient(awsConfig); err != nil {
			return nil, fmt.Errorf("error creating S3 client: %w", err)
		}

		store := blobstore.NewS3Store(blobstore.S3StoreConfig{
			Bucket:   config.AwsBucket,
			Region:   config.AwsRegion,
			S3Client: s3Client,
		})

		if err = store.EnsureBucket(); err != nil {
			return nil, err
		}

		return store, nil
	}

	return nil, fmt.Errorf("unknown thumbnail store '%s'. valid values are 'disk' and 's3'", config.ThumbnailStore)
}
