package googledrive

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avestudio/studio/cmd/studio/internal/viewmodels"
	"github.com/avestudio/studio/pkg/gdrive"
	"github.com/avestudio/studio/pkg/models"
	"github.com/avestudio/studio/pkg/services"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ListImages(ctx context.Context, folderID string) ([]gdrive.File, error) {
	args := m.Called(folderID)
	files, _ := args.Get(0).([]gdrive.File)
	return files, args.Error(1)
}

func (m *mockCatalog) GetFolder(ctx context.Context, folderID string) (*gdrive.Folder, error) {
	args := m.Called(folderID)
	folder, _ := args.Get(0).(*gdrive.Folder)
	return folder, args.Error(1)
}

func (m *mockCatalog) GetMetadata(ctx context.Context, fileID string) (*gdrive.File, error) {
	args := m.Called(fileID)
	file, _ := args.Get(0).(*gdrive.File)
	return file, args.Error(1)
}

func (m *mockCatalog) GetContent(ctx context.Context, fileID string) ([]byte, error) {
	args := m.Called(fileID)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type mockImageProxy struct {
	mock.Mock
}

func (m *mockImageProxy) Serve(ctx context.Context, fileID string, wantThumbnail bool) (services.ProxiedImage, error) {
	args := m.Called(fileID, wantThumbnail)
	return args.Get(0).(services.ProxiedImage), args.Error(1)
}

type mockDriveAlbums struct {
	mock.Mock
}

func (m *mockDriveAlbums) CreateDriveAlbum(title, folderLink string) (*models.DriveAlbum, error) {
	args := m.Called(title, folderLink)
	album, _ := args.Get(0).(*models.DriveAlbum)
	return album, args.Error(1)
}

func (m *mockDriveAlbums) DeleteDriveAlbum(albumID string) error {
	return m.Called(albumID).Error(0)
}

func (m *mockDriveAlbums) GetDriveAlbum(albumID string) (*models.DriveAlbum, error) {
	args := m.Called(albumID)
	album, _ := args.Get(0).(*models.DriveAlbum)
	return album, args.Error(1)
}

func (m *mockDriveAlbums) GetDriveAlbumList() ([]*models.DriveAlbum, error) {
	args := m.Called()
	albums, _ := args.Get(0).([]*models.DriveAlbum)
	return albums, args.Error(1)
}

func (m *mockDriveAlbums) RegenerateQRCode(albumID string) (*models.DriveAlbum, error) {
	args := m.Called(albumID)
	album, _ := args.Get(0).(*models.DriveAlbum)
	return album, args.Error(1)
}

func (m *mockDriveAlbums) SetFolderLink(albumID, folderLink string) (*models.DriveAlbum, error) {
	args := m.Called(albumID, folderLink)
	album, _ := args.Get(0).(*models.DriveAlbum)
	return album, args.Error(1)
}

func newController(catalog gdrive.Catalog, proxy services.ImageProxyServicer, albums services.DriveAlbumServicer) GoogleDriveController {
	return NewGoogleDriveController(GoogleDriveControllerConfig{
		Catalog:           catalog,
		DriveAlbumService: albums,
		ImageProxyService: proxy,
		MediaURL:          "/media/",
	})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	body := map[string]string{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestListImages(t *testing.T) {
	tcs := []struct {
		name           string
		query          string
		files          []gdrive.File
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing folder id",
			query:          "",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "folder_id query parameter is required",
		},
		{
			name:           "not configured",
			query:          "?folder_id=abc",
			err:            gdrive.ErrNotConfigured,
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  notConfiguredMessage,
		},
		{
			name:           "provider failure",
			query:          "?folder_id=abc",
			err:            fmt.Errorf("quota exceeded"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to fetch images: quota exceeded",
		},
		{
			name:           "success",
			query:          "?folder_id=abc",
			files:          []gdrive.File{{ID: "1", Name: "a.jpg"}, {ID: "2", Name: "b.png"}},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			catalog := &mockCatalog{}
			catalog.On("ListImages", "abc").Return(tc.files, tc.err)

			c := newController(catalog, &mockImageProxy{}, &mockDriveAlbums{})

			r := httptest.NewRequest(http.MethodGet, "/api/google-drive/images/"+tc.query, nil)
			w := httptest.NewRecorder()
			c.ListImages(w, r)

			assert.Equal(t, tc.expectedStatus, w.Code)

			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, decodeError(t, w))
				return
			}

			result := viewmodels.GoogleDriveImages{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
			assert.True(t, result.Success)
			assert.Equal(t, 2, result.Count)
			assert.Equal(t, "abc", result.FolderID)
			assert.Equal(t, "a.jpg", result.Images[0].Name)
		})
	}
}

func TestFolderInfoNotFound(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("GetFolder", "gone").Return(nil, fmt.Errorf("%w: folder gone", gdrive.ErrNotFound))

	c := newController(catalog, &mockImageProxy{}, &mockDriveAlbums{})

	r := httptest.NewRequest(http.MethodGet, "/api/google-drive/folder-info/?folder_id=gone", nil)
	w := httptest.NewRecorder()
	c.FolderInfo(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Folder not found or access denied", decodeError(t, w))
}

func TestFolderInfo(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("GetFolder", "abc").Return(&gdrive.Folder{ID: "abc", Name: "Wedding"}, nil)

	c := newController(catalog, &mockImageProxy{}, &mockDriveAlbums{})

	r := httptest.NewRequest(http.MethodGet, "/api/google-drive/folder-info/?folder_id=abc", nil)
	w := httptest.NewRecorder()
	c.FolderInfo(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	result := viewmodels.GoogleDriveFolder{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Wedding", result.Folder.Name)
}

func TestProxyImage(t *testing.T) {
	tcs := []struct {
		name                string
		query               string
		wantThumbnail       bool
		image               services.ProxiedImage
		err                 error
		expectedStatus      int
		expectedType        string
		expectedCache       string
		expectedDisposition string
	}{
		{
			name:  "original",
			query: "",
			image: services.ProxiedImage{
				Data:        []byte("original"),
				ContentType: "image/png",
				Filename:    "beach.png",
				MaxAge:      time.Hour,
			},
			expectedStatus:      http.StatusOK,
			expectedType:        "image/png",
			expectedCache:       "max-age=3600",
			expectedDisposition: "inline; filename=beach.png",
		},
		{
			name:          "thumbnail",
			query:         "?thumbnail=true",
			wantThumbnail: true,
			image: services.ProxiedImage{
				Data:        []byte("thumb"),
				ContentType: "image/jpeg",
				MaxAge:      24 * time.Hour,
				Thumbnail:   true,
			},
			expectedStatus: http.StatusOK,
			expectedType:   "image/jpeg",
			expectedCache:  "max-age=86400",
		},
		{
			name:           "not found",
			query:          "",
			err:            services.ErrImageNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "download failed",
			query:          "?thumbnail=false",
			err:            services.ErrImageUnavailable,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "not configured",
			query:          "?thumbnail=1",
			wantThumbnail:  true,
			err:            gdrive.ErrNotConfigured,
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			proxy := &mockImageProxy{}
			proxy.On("Serve", "file-1", tc.wantThumbnail).Return(tc.image, tc.err)

			c := newController(&mockCatalog{}, proxy, &mockDriveAlbums{})

			r := httptest.NewRequest(http.MethodGet, "/api/google-drive/image/file-1/"+tc.query, nil)
			r.SetPathValue("fileId", "file-1")
			w := httptest.NewRecorder()
			c.ProxyImage(w, r)

			assert.Equal(t, tc.expectedStatus, w.Code)
			proxy.AssertExpectations(t)

			if tc.err != nil {
				return
			}

			assert.Equal(t, tc.expectedType, w.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCache, w.Header().Get("Cache-Control"))
			assert.Equal(t, tc.expectedDisposition, w.Header().Get("Content-Disposition"))
			assert.Equal(t, tc.image.Data, w.Body.Bytes())
		})
	}
}

func TestProxyImageUsesPathFileID(t *testing.T) {
	proxy := &mockImageProxy{}
	proxy.On("Serve", "file-1", false).Return(services.ProxiedImage{Data: []byte("a"), ContentType: "image/png"}, nil)

	c := newController(&mockCatalog{}, proxy, &mockDriveAlbums{})

	r := httptest.NewRequest(http.MethodGet, "/api/google-drive/image/file-1/?fileId=file-2", nil)
	r.SetPathValue("fileId", "file-1")
	w := httptest.NewRecorder()
	c.ProxyImage(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	proxy.AssertExpectations(t)
	proxy.AssertNotCalled(t, "Serve", "file-2", false)
}

func TestViewDriveAlbum(t *testing.T) {
	album := &models.DriveAlbum{
		ID:         "album-1",
		Title:      "Garden Party",
		FolderID:   "folder-1",
		FolderLink: "https://drive.google.com/drive/folders/folder-1",
		QRCodePath: "qr_codes/qr_album-1.png",
	}

	albums := &mockDriveAlbums{}
	albums.On("GetDriveAlbum", "album-1").Return(album, nil)

	catalog := &mockCatalog{}
	catalog.On("ListImages", "folder-1").Return([]gdrive.File{{ID: "img 1", Name: "one.jpg"}}, nil)

	c := newController(catalog, &mockImageProxy{}, albums)

	r := httptest.NewRequest(http.MethodGet, "http://studio.example.com/api/drive-albums/album-1/", nil)
	r.SetPathValue("id", "album-1")
	w := httptest.NewRecorder()
	c.ViewDriveAlbum(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	result := viewmodels.DriveAlbumDetail{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.Equal(t, "Garden Party", result.Title)
	assert.Equal(t, "/media/qr_codes/qr_album-1.png", result.QRCode)
	require.Len(t, result.Images, 1)
	assert.Equal(t, "http://studio.example.com/api/google-drive/image/img%201/", result.Images[0].ProxyLink)
	assert.Equal(t, "http://studio.example.com/api/google-drive/image/img%201/?thumbnail=true", result.Images[0].ThumbnailProxyLink)
	assert.Empty(t, result.ImagesError)
}

func TestViewDriveAlbumDegradesWhenListingFails(t *testing.T) {
	albums := &mockDriveAlbums{}
	albums.On("GetDriveAlbum", "album-1").Return(&models.DriveAlbum{ID: "album-1", FolderID: "folder-1"}, nil)

	c := newController(gdrive.Unavailable{}, &mockImageProxy{}, albums)

	r := httptest.NewRequest(http.MethodGet, "/api/drive-albums/album-1/", nil)
	r.SetPathValue("id", "album-1")
	w := httptest.NewRecorder()
	c.ViewDriveAlbum(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	result := viewmodels.DriveAlbumDetail{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Empty(t, result.Images)
	assert.Equal(t, notConfiguredMessage, result.ImagesError)
}

func TestViewDriveAlbumNotFound(t *testing.T) {
	albums := &mockDriveAlbums{}
	albums.On("GetDriveAlbum", "missing").Return(nil, models.ErrDriveAlbumNotFound)

	c := newController(&mockCatalog{}, &mockImageProxy{}, albums)

	r := httptest.NewRequest(http.MethodGet, "/api/drive-albums/missing/", nil)
	r.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	c.ViewDriveAlbum(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
