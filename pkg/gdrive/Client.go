package gdrive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/adampresley/adamgokit/slices"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	DefaultBaseURL = "https://drive.google.com"

	listPageSize = 100
	listFields   = "nextPageToken, files(id, name, mimeType, size, createdTime, modifiedTime, webContentLink, thumbnailLink)"
	fileFields   = "id, name, mimeType, size, createdTime, modifiedTime, webContentLink, thumbnailLink"
	folderFields = "id, name, mimeType, createdTime, modifiedTime"
)

var (
	ErrNotConfigured = fmt.Errorf("google drive is not configured: set an API key or a service account credentials path")
	ErrNotFound      = fmt.Errorf("google drive item not found")

	ImageMimeTypes = []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/bmp",
		"image/svg+xml",
	}
)

/*
Catalog is the read-only view of Google Drive this application needs.
*/
type Catalog interface {
	ListImages(ctx context.Context, folderID string) ([]File, error)
	GetFolder(ctx context.Context, folderID string) (*Folder, error)
	GetMetadata(ctx context.Context, fileID string) (*File, error)
	GetContent(ctx context.Context, fileID string) ([]byte, error)
}

/*
Config selects one of two credential modes. CredentialsPath (a service
account JSON file) wins when the file exists, otherwise ApiKey is used.
With neither, NewClient returns ErrNotConfigured.
*/
type Config struct {
	ApiKey          string
	CredentialsPath string

	// BaseURL is used to build direct links. Defaults to DefaultBaseURL.
	BaseURL string

	// Endpoint overrides the Drive API endpoint.
	Endpoint string
}

type Client struct {
	baseURL string
	service *drive.Service
}

func NewClient(ctx context.Context, config Config) (*Client, error) {
	var (
		err  error
		opts []option.ClientOption
	)

	switch {
	case config.CredentialsPath != "" && fileExists(config.CredentialsPath):
		var credentials []byte

		if credentials, err = os.ReadFile(config.CredentialsPath); err != nil {
			return nil, fmt.Errorf("error reading google drive credentials '%s': %w", config.CredentialsPath, err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(credentials, drive.DriveReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("error processing google drive credentials: %w", err)
		}

		opts = append(opts, option.WithHTTPClient(jwtConfig.Client(ctx)))

	case config.ApiKey != "":
		opts = append(opts, option.WithAPIKey(config.ApiKey))

	default:
		return nil, ErrNotConfigured
	}

	if config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(config.Endpoint))
	}

	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error building google drive service: %w", err)
	}

	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		service: service,
	}, nil
}

/*
ListImages returns every image in a folder in the order Drive returns
them, following page tokens until the listing is exhausted.
*/
func (c *Client) ListImages(ctx context.Context, folderID string) ([]File, error) {
	var (
		err      error
		response *drive.FileList
	)

	result := []File{}

	mimeFilters := slices.Map(ImageMimeTypes, func(mimeType string, index int) string {
		return fmt.Sprintf("mimeType='%s'", mimeType)
	})

	query := fmt.Sprintf(
		"'%s' in parents and trashed=false and (%s)",
		escapeQueryValue(folderID),
		strings.Join(mimeFilters, " or "),
	)

	list := c.service.Files.List().
		Q(query).
		Spaces("drive").
		PageSize(listPageSize).
		Fields(googleapi.Field(listFields)).
		Context(ctx)

	for {
		if response, err = list.Do(); err != nil {
			slog.Error("error listing files in google drive folder", "folderID", folderID, "error", err)
			return nil, fmt.Errorf("error listing files in folder %s: %w", folderID, err)
		}

		for _, f := range response.Files {
			if !slices.IsInSlice(f.MimeType, ImageMimeTypes) {
				continue
			}

			result = append(result, c.toFile(f))
		}

		if response.NextPageToken == "" {
			break
		}

		list.PageToken(response.NextPageToken)
	}

	return result, nil
}

func (c *Client) GetFolder(ctx context.Context, folderID string) (*Folder, error) {
	folder, err := c.service.Files.Get(folderID).
		Fields(googleapi.Field(folderFields)).
		Context(ctx).
		Do()

	if err != nil {
		return nil, fetchError(err, "folder", folderID)
	}

	return &Folder{
		ID:           folder.Id,
		Name:         folder.Name,
		MimeType:     folder.MimeType,
		CreatedTime:  folder.CreatedTime,
		ModifiedTime: folder.ModifiedTime,
	}, nil
}

func (c *Client) GetMetadata(ctx context.Context, fileID string) (*File, error) {
	f, err := c.service.Files.Get(fileID).
		Fields(googleapi.Field(fileFields)).
		Context(ctx).
		Do()

	if err != nil {
		return nil, fetchError(err, "file metadata", fileID)
	}

	result := c.toFile(f)
	return &result, nil
}

func (c *Client) GetContent(ctx context.Context, fileID string) ([]byte, error) {
	response, err := c.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fetchError(err, "file content", fileID)
	}

	defer response.Body.Close()

	b, err := io.ReadAll(response.Body)
	if err != nil {
		slog.Error("error reading file content from google drive", "fileID", fileID, "error", err)
		return nil, fmt.Errorf("error reading content of file %s: %w", fileID, err)
	}

	return b, nil
}

/*
DirectLink is the anonymous "view" URL for a public file.
*/
func (c *Client) DirectLink(fileID string) string {
	return fmt.Sprintf("%s/uc?export=view&id=%s", c.baseURL, url.QueryEscape(fileID))
}

func (c *Client) toFile(f *drive.File) File {
	directLink := c.DirectLink(f.Id)
	downloadLink := f.WebContentLink

	if downloadLink == "" {
		downloadLink = directLink
	}

	return File{
		ID:            f.Id,
		Name:          f.Name,
		MimeType:      f.MimeType,
		Size:          f.Size,
		CreatedTime:   f.CreatedTime,
		ModifiedTime:  f.ModifiedTime,
		ThumbnailLink: f.ThumbnailLink,
		DownloadLink:  downloadLink,
		DirectLink:    directLink,
	}
}

/*
fetchError logs a failed single-item fetch. Provider errors become
ErrNotFound so callers can degrade instead of failing the request.
*/
func fetchError(err error, what, id string) error {
	var apiErr *googleapi.Error

	if errors.As(err, &apiErr) {
		slog.Error("google drive returned an error", "what", what, "id", id, "status", apiErr.Code, "error", err)
		return fmt.Errorf("%w: %s %s (status %d)", ErrNotFound, what, id, apiErr.Code)
	}

	slog.Error("error calling google drive", "what", what, "id", id, "error", err)
	return fmt.Errorf("error getting %s %s: %w", what, id, err)
}

// Drive query strings quote values with single quotes and escape with backslashes.
func escapeQueryValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
