package services

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/adampresley/adamgokit/email"
	"github.com/avestudio/studio/pkg/models"
)

var (
	ErrRecipientRequired = fmt.Errorf("a recipient email address is required")

	shareTemplate = template.Must(template.New("share").Parse(`
<h1>Your photos are ready!</h1>
<p>Hello {{.toName}}! The album '{{.albumTitle}}' is ready for you. Open the
link below to view your photos.</p>
<a href="{{.albumURL}}">View Album</a>
{{if .pin}}<p>Your PIN is <strong>{{.pin}}</strong>. You will need it to view and download the photos.</p>{{end}}
`))
)

/*
EmailSender is satisfied by the adamgokit email services.
*/
type EmailSender interface {
	Send(mail email.Mail) error
}

type ShareServicer interface {
	ShareAlbum(album models.HasQRCode, albumTitle, pin, toName, toEmail string) error
}

type ShareServiceConfig struct {
	FromEmail     string
	FromName      string
	QRCodeService QRCodeServicer
	Sender        EmailSender
}

/*
ShareService emails a client the link to their album, and the PIN when
the album has one.
*/
type ShareService struct {
	fromEmail     string
	fromName      string
	qrCodeService QRCodeServicer
	sender        EmailSender
}

func NewShareService(config ShareServiceConfig) ShareService {
	return ShareService{
		fromEmail:     config.FromEmail,
		fromName:      config.FromName,
		qrCodeService: config.QRCodeService,
		sender:        config.Sender,
	}
}

/*
ResendSender sends mail through Resend.
*/
type ResendSender struct {
	ApiKey string
}

func (r ResendSender) Send(mail email.Mail) error {
	service := email.NewResendService(&email.Config{
		ApiKey: r.ApiKey,
	})

	return service.Send(mail)
}

func (s ShareService) ShareAlbum(album models.HasQRCode, albumTitle, pin, toName, toEmail string) error {
	var (
		err  error
		body strings.Builder
	)

	toEmail = strings.TrimSpace(toEmail)

	if toEmail == "" {
		return ErrRecipientRequired
	}

	if toName == "" {
		toName = toEmail
	}

	data := map[string]any{
		"toName":     toName,
		"albumTitle": albumTitle,
		"albumURL":   s.qrCodeService.TargetURL(album),
		"pin":        pin,
	}

	if err = shareTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("error rendering share email for album %s: %w", album.AlbumID(), err)
	}

	err = s.sender.Send(email.Mail{
		Body:       body.String(),
		BodyIsHtml: true,
		From: email.EmailAddress{
			Email: s.fromEmail,
			Name:  s.fromName,
		},
		Subject: fmt.Sprintf("Your photos from %s are ready!", s.fromName),
		To: []email.EmailAddress{
			{Name: toName, Email: toEmail},
		},
	})

	if err != nil {
		return fmt.Errorf("error sending share email for album %s to %s: %w", album.AlbumID(), toEmail, err)
	}

	return nil
}
