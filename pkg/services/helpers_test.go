package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/avestudio/studio/internal/database"
	"github.com/avestudio/studio/pkg/blobstore"
	"github.com/avestudio/studio/pkg/gdrive"
	"github.com/avestudio/studio/pkg/models"
	"github.com/rfberaldo/sqlz"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlz.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "studio.db") + "?_pragma=foreign_keys(1)"

	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func fakeEncoder(content string) ([]byte, error) {
	return []byte("qr:" + content), nil
}

func newTestQRCodeService(store blobstore.Store) QRCodeService {
	return NewQRCodeService(QRCodeServiceConfig{
		Encoder:     fakeEncoder,
		FrontendURL: "https://studio.example.com/",
		MediaStore:  store,
	})
}

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
	content, _ := args.Get(0).([]byte)
	return content, args.Error(1)
}

type mockAlbumService struct {
	mock.Mock
}

func (m *mockAlbumService) AddImage(albumID, filename string, data []byte) (*models.AlbumImage, error) {
	args := m.Called(albumID, filename, data)
	image, _ := args.Get(0).(*models.AlbumImage)
	return image, args.Error(1)
}

func (m *mockAlbumService) CreateAlbum(title string) (*models.Album, error) {
	args := m.Called(title)
	album, _ := args.Get(0).(*models.Album)
	return album, args.Error(1)
}

func (m *mockAlbumService) DeleteAlbum(albumID string) error {
	return m.Called(albumID).Error(0)
}

func (m *mockAlbumService) GetAlbum(albumID string) (*models.Album, error) {
	args := m.Called(albumID)
	album, _ := args.Get(0).(*models.Album)
	return album, args.Error(1)
}

func (m *mockAlbumService) GetAlbumByPin(albumID, pin string) (*models.Album, error) {
	args := m.Called(albumID, pin)
	album, _ := args.Get(0).(*models.Album)
	return album, args.Error(1)
}

func (m *mockAlbumService) GetAlbumImages(albumID string) ([]models.AlbumImage, error) {
	args := m.Called(albumID)
	images, _ := args.Get(0).([]models.AlbumImage)
	return images, args.Error(1)
}

func (m *mockAlbumService) GetAlbumList() ([]*models.Album, error) {
	args := m.Called()
	albums, _ := args.Get(0).([]*models.Album)
	return albums, args.Error(1)
}

func (m *mockAlbumService) RegenerateQRCode(albumID string) (*models.Album, error) {
	args := m.Called(albumID)
	album, _ := args.Get(0).(*models.Album)
	return album, args.Error(1)
}
