package main

import (
	"context"
	"encoding/gob"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/adamgokit/sessions"
	"github.com/avestudio/studio/cmd/studio/internal/clientaccess"
	"github.com/avestudio/studio/cmd/studio/internal/googledrive"
	"github.com/avestudio/studio/cmd/studio/internal/portfolio"
	"github.com/avestudio/studio/internal/app"
	"github.com/avestudio/studio/internal/configuration"
	"github.com/avestudio/studio/pkg/models"
)

var (
	Version string = "development"
	appName string = "studio"

	config configuration.Config

	/* Services */
	application    *app.App
	sessionService sessions.Session[*models.AlbumAccess]

	/* Controllers */
	clientAccessController clientaccess.ClientAccessController
	googleDriveController  googledrive.GoogleDriveController
	portfolioController    portfolio.PortfolioController
)

func main() {
	var (
		err error
	)

	config = configuration.LoadConfig()
	app.SetupLogger(&config, appName, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("mediaRoot", config.MediaRoot),
		slog.String("thumbnailStore", config.ThumbnailStore),
	)

	slog.Debug("setting up...")

	shutdownCtx, cancel := context.WithCancel(context.Background())

	/*
	 * Setup services
	 */
	if application, err = app.New(shutdownCtx, &config); err != nil {
		panic(err)
	}

	sessionService = newSessionService(config.CookieSecret)

	/*
	 * Setup controllers
	 */
	setupControllers()

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	routes := setupRoutes()

	routerConfig := mux.RouterConfig{
		Address:          config.Host,
		Debug:            Version == "development",
		HttpWriteTimeout: 60,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Start the thumbnail warmer job
	 */
	setupThumbnailWarmer(quit)

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit

	cancel()
	mux.Shutdown(httpServer)
	slog.Info("server stopped")
}

/*
newSessionService stores unlocked albums in a cookie scoped to the whole
site, so a grant earned on /api/verify-pin/ is sent to /api/albums/.
*/
func newSessionService(secret string) sessions.Session[*models.AlbumAccess] {
	gob.Register(&models.AlbumAccess{})

	cookieStore := sessions.NewCookieStore(secret)
	cookieStore.Options.Path = "/"

	return sessions.NewSessionWrapper[*models.AlbumAccess](cookieStore, "avestudioalbums", "albumAccess")
}

func setupControllers() {
	clientAccessController = clientaccess.NewClientAccessController(clientaccess.ClientAccessControllerConfig{
		AccessService:  application.AccessService,
		AlbumService:   application.AlbumService,
		ArchiveService: application.ArchiveService,
		MediaURL:       config.MediaURL,
		SessionService: sessionService,
	})

	googleDriveController = googledrive.NewGoogleDriveController(googledrive.GoogleDriveControllerConfig{
		Catalog:           application.Catalog,
		DriveAlbumService: application.DriveAlbumService,
		ImageProxyService: application.ImageProxyService,
		MediaURL:          config.MediaURL,
	})

	portfolioController = portfolio.NewPortfolioController(portfolio.PortfolioControllerConfig{
		MediaURL:         config.MediaURL,
		PortfolioService: application.PortfolioService,
		SiteURL:          config.SiteURL,
	})
}

func setupRoutes() []mux.Route {
	albumAccessMiddleware := newAlbumAccessMiddleware(sessionService)
	withAccess := []mux.MiddlewareFunc{albumAccessMiddleware}

	return []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "GET /sitemap.xml", HandlerFunc: portfolioController.Sitemap},

		{Path: "GET /api/categories/", HandlerFunc: portfolioController.Categories},
		{Path: "GET /api/portfolio/", HandlerFunc: portfolioController.Portfolio},

		{Path: "GET /api/albums/", HandlerFunc: clientAccessController.AlbumList},
		{Path: "GET /api/albums/{id}/", HandlerFunc: clientAccessController.ViewAlbum, Middlewares: withAccess},
		{Path: "POST /api/verify-pin", HandlerFunc: clientAccessController.VerifyPin, Middlewares: withAccess},
		{Path: "POST /api/verify-pin/", HandlerFunc: clientAccessController.VerifyPin, Middlewares: withAccess},
		{Path: "POST /api/download-album", HandlerFunc: clientAccessController.DownloadAlbum},
		{Path: "POST /api/download-album/", HandlerFunc: clientAccessController.DownloadAlbum},

		{Path: "GET /api/drive-albums/", HandlerFunc: googleDriveController.DriveAlbumList},
		{Path: "GET /api/drive-albums/{id}/", HandlerFunc: googleDriveController.ViewDriveAlbum},

		{Path: "GET /api/google-drive/images/", HandlerFunc: googleDriveController.ListImages},
		{Path: "GET /api/google-drive/folder-info/", HandlerFunc: googleDriveController.FolderInfo},
		{Path: "GET /api/google-drive/image/{fileId}/", HandlerFunc: googleDriveController.ProxyImage},
	}
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

func setupThumbnailWarmer(quit chan os.Signal) {
	if config.ThumbnailWarmMinutes <= 0 {
		slog.Info("thumbnail warmer disabled")
		return
	}

	go func() {
		var running atomic.Bool

		ticker := time.NewTicker(time.Duration(config.ThumbnailWarmMinutes) * time.Minute)
		defer ticker.Stop()

		runner := func() {
			if !running.CompareAndSwap(false, true) {
				return
			}

			defer running.Store(false)

			report := application.ThumbnailWarmer.Warm()
			slog.Info("thumbnail warmer finished.", "report", report)
		}

		go runner()

		for {
			select {
			case <-quit:
				return

			case <-ticker.C:
				if running.Load() {
					slog.Info("thumbnail warmer already running. skipping...")
					continue
				}

				go runner()
			}
		}
	}()
}
