package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/avestudio/studio/pkg/models"
)

var (
	ErrPinRequired     = fmt.Errorf("pin is required")
	ErrAlbumIDRequired = fmt.Errorf("album id is required")
	ErrInvalidPin      = fmt.Errorf("invalid pin for this album")
)

type AccessServicer interface {
	Unlock(albumID, pin string) (*models.Album, error)
	Verify(albumID, pin string) (models.AccessGrant, error)
}

type AccessServiceConfig struct {
	AlbumService AlbumServicer
}

/*
AccessService checks album ID and PIN pairs. There is no lockout or
backoff on repeated failures.
*/
type AccessService struct {
	albumService AlbumServicer
}

func NewAccessService(config AccessServiceConfig) AccessService {
	return AccessService{
		albumService: config.AlbumService,
	}
}

func (s AccessService) Verify(albumID, pin string) (models.AccessGrant, error) {
	album, err := s.Unlock(albumID, pin)
	if err != nil {
		return models.AccessGrant{}, err
	}

	return models.AccessGrant{
		AlbumID: album.ID,
		Valid:   true,
	}, nil
}

/*
Unlock validates the input and returns the album when the PIN matches.
The PIN is checked for presence before the album ID. An unknown album
and a wrong PIN both return ErrInvalidPin.
*/
func (s AccessService) Unlock(albumID, pin string) (*models.Album, error) {
	var (
		err   error
		album *models.Album
	)

	albumID = strings.TrimSpace(albumID)
	pin = strings.TrimSpace(pin)

	if pin == "" {
		return nil, ErrPinRequired
	}

	if albumID == "" {
		return nil, ErrAlbumIDRequired
	}

	if album, err = s.albumService.GetAlbumByPin(albumID, pin); err != nil {
		if errors.Is(err, models.ErrAlbumNotFound) {
			slog.Info("invalid PIN attempt", "albumID", albumID)
			return nil, ErrInvalidPin
		}

		return nil, fmt.Errorf("error verifying PIN for album %s: %w", albumID, err)
	}

	return album, nil
}
