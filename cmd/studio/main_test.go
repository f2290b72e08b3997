package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adampresley/adamgokit/mux"
	"github.com/avestudio/studio/cmd/studio/internal/viewmodels"
	"github.com/avestudio/studio/internal/app"
	"github.com/avestudio/studio/internal/configuration"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	var (
		err error
	)

	dir := t.TempDir()

	config = configuration.Config{
		CookieSecret:    "a-long-enough-cookie-secret-for-tests",
		DSN:             "file:" + filepath.Join(dir, "studio.db") + "?_pragma=foreign_keys(1)",
		FrontendURL:     "https://studio.example.com",
		Host:            "127.0.0.1:0",
		MaxCacheWorkers: 2,
		MediaRoot:       filepath.Join(dir, "media"),
		MediaURL:        "/media/",
		SiteURL:         "https://studio.example.com",
		ThumbnailStore:  app.ThumbnailStoreDisk,
	}

	application, err = app.New(context.Background(), &config)
	require.NoError(t, err)

	sessionService = newSessionService(config.CookieSecret)
	setupControllers()

	m := mux.SetupRouter(mux.RouterConfig{Address: config.Host}, setupRoutes())

	server := httptest.NewServer(m)
	t.Cleanup(server.Close)

	return server
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{Jar: jar}
}

func getAlbumDetail(t *testing.T, client *http.Client, server *httptest.Server, albumID string) viewmodels.AlbumDetail {
	t.Helper()

	response, err := client.Get(server.URL + "/api/albums/" + albumID + "/")
	require.NoError(t, err)
	defer response.Body.Close()

	require.Equal(t, http.StatusOK, response.StatusCode)

	result := viewmodels.AlbumDetail{}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&result))
	return result
}

func TestVerifyPinUnlocksAlbumForTheSameBrowser(t *testing.T) {
	server := newTestServer(t)
	browser := newBrowser(t)

	album, err := application.AlbumService.CreateAlbum("Smith Wedding")
	require.NoError(t, err)
	_, err = application.AlbumService.AddImage(album.ID, "first.jpg", []byte("jpeg"))
	require.NoError(t, err)

	before := getAlbumDetail(t, browser, server, album.ID)
	assert.True(t, before.Locked)
	assert.Empty(t, before.Images)

	body := fmt.Sprintf(`{"album_id":"%s","pin":"%s"}`, album.ID, album.Pin)
	response, err := browser.Post(server.URL+"/api/verify-pin/", "application/json", strings.NewReader(body))
	require.NoError(t, err)

	b, err := io.ReadAll(response.Body)
	response.Body.Close()
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.JSONEq(t, fmt.Sprintf(`{"album_id":"%s","valid":true}`, album.ID), string(b))

	cookies := response.Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "/", cookies[0].Path)

	after := getAlbumDetail(t, browser, server, album.ID)
	assert.False(t, after.Locked)
	require.Len(t, after.Images, 1)
	assert.Equal(t, "/media/client_albums/"+album.ID+"/first.jpg", after.Images[0].Image)

	stranger := getAlbumDetail(t, newBrowser(t), server, album.ID)
	assert.True(t, stranger.Locked)
}

func TestWrongPinLeavesAlbumLocked(t *testing.T) {
	server := newTestServer(t)
	browser := newBrowser(t)

	album, err := application.AlbumService.CreateAlbum("Smith Wedding")
	require.NoError(t, err)

	wrongPin := "1000"
	if album.Pin == wrongPin {
		wrongPin = "1001"
	}

	body := fmt.Sprintf(`{"album_id":"%s","pin":"%s"}`, album.ID, wrongPin)
	response, err := browser.Post(server.URL+"/api/verify-pin/", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	response.Body.Close()

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.True(t, getAlbumDetail(t, browser, server, album.ID).Locked)
}

func TestHeartbeat(t *testing.T) {
	server := newTestServer(t)

	response, err := http.Get(server.URL + "/heartbeat")
	require.NoError(t, err)
	defer response.Body.Close()

	b, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, string(b), "OK")
}
