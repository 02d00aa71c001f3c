// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and renders HTML bodies
// from templates embedded in the binary.
package email

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/go-quizbank/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Template names an embedded template (file name without ".html").
type Template string

const (
	// TemplateParticipantJoined corresponds to templates/participant_joined.html
	TemplateParticipantJoined Template = "participant_joined"
)

// Sender is the part of the Resend API the client needs.
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client renders templates and hands the result to a Sender.
type Client struct {
	sender Sender
	from   string
	logger *zerolog.Logger
}

// NewClient creates a Client backed by Resend with the API key from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return NewClientWithSender(resend.NewClient(cfg.Integration.ResendAPIKey).Emails, cfg.Integration.EmailFrom, logger)
}

// NewClientWithSender creates a Client using an explicit Sender.
func NewClientWithSender(sender Sender, from string, logger *zerolog.Logger) *Client {
	return &Client{sender: sender, from: from, logger: logger}
}

// Render executes the named template with data.
func Render(name Template, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(name)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single
// recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data any) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	resp, err := c.sender.Send(&resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	if resp != nil {
		c.logger.Debug().
			Str("email_id", resp.Id).
			Str("template", string(templateName)).
			Msg("email accepted by provider")
	}
	return nil
}
