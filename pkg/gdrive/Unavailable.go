package gdrive

import "context"

/*
Unavailable stands in for the catalog when no Google Drive credentials
are configured. Every call fails with ErrNotConfigured.
*/
type Unavailable struct{}

func (Unavailable) ListImages(ctx context.Context, folderID string) ([]File, error) {
	return nil, ErrNotConfigured
}

func (Unavailable) GetFolder(ctx context.Context, folderID string) (*Folder, error) {
	return nil, ErrNotConfigured
}

func (Unavailable) GetMetadata(ctx context.Context, fileID string) (*File, error) {
	return nil, ErrNotConfigured
}

func (Unavailable) GetContent(ctx context.Context, fileID string) ([]byte, error) {
	return nil, ErrNotConfigured
}
