package services

import (
	"fmt"
	"strings"

	"github.com/avestudio/studio/pkg/blobstore"
	"github.com/avestudio/studio/pkg/models"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	qrCodeSize = 256
)

/*
QREncoder turns a URL into PNG bytes.
*/
type QREncoder func(content string) ([]byte, error)

type QRCodeServicer interface {
	Generate(album models.HasQRCode) (string, error)
	TargetURL(album models.HasQRCode) string
}

type QRCodeServiceConfig struct {
	Encoder     QREncoder
	FrontendURL string
	MediaStore  blobstore.Store
}

/*
QRCodeService renders the QR code for any album kind. The code points at
the album's page on the public frontend.
*/
type QRCodeService struct {
	encoder     QREncoder
	frontendURL string
	mediaStore  blobstore.Store
}

func NewQRCodeService(config QRCodeServiceConfig) QRCodeService {
	encoder := config.Encoder

	if encoder == nil {
		encoder = EncodeQRCode
	}

	return QRCodeService{
		encoder:     encoder,
		frontendURL: strings.TrimSuffix(config.FrontendURL, "/"),
		mediaStore:  config.MediaStore,
	}
}

func EncodeQRCode(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, qrCodeSize)
}

func (s QRCodeService) TargetURL(album models.HasQRCode) string {
	return s.frontendURL + album.AccessPath()
}

/*
Generate renders and stores the album's QR code, replacing any earlier
one, and returns the media key it was written to.
*/
func (s QRCodeService) Generate(album models.HasQRCode) (string, error) {
	var (
		err error
		b   []byte
	)

	target := s.TargetURL(album)

	if b, err = s.encoder(target); err != nil {
		return "", fmt.Errorf("error encoding QR code for %s album %s: %w", album.Kind(), album.AlbumID(), err)
	}

	key := album.QRCodeKey()

	if err = s.mediaStore.Put(key, b); err != nil {
		return "", fmt.Errorf("error storing QR code for %s album %s: %w", album.Kind(), album.AlbumID(), err)
	}

	return key, nil
}
