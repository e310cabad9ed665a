// Package email sends the site's transactional emails through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary.
package email

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/velyralabs/landing/internal/config"
)

// senderName is the display name used in the From header.
const senderName = "VeLYRA LABS"

// Client wraps the Resend client.
type Client struct {
	client  *resend.Client
	from    string
	siteURL string
	logger  *zerolog.Logger
}

// NewClient creates an email Client from the integration and site config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client:  resend.NewClient(cfg.Integration.ResendAPIKey),
		from:    fmt.Sprintf("%s <%s>", senderName, cfg.Integration.EmailFrom),
		siteURL: cfg.Site.BaseURL,
		logger:  logger,
	}
}

// Message is a rendered-on-send email.
type Message struct {
	To       string
	Subject  string
	Template Template
	Data     map[string]string

	// ReplyTo is optional.
	ReplyTo string
}

// SendEmail renders msg.Template with msg.Data and sends it.
func (c *Client) SendEmail(ctx context.Context, msg Message) error {
	body, err := Render(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    body,
		ReplyTo: msg.ReplyTo,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return errors.Wrapf(err, "failed to send %s email", msg.Template)
	}

	c.logger.Debug().
		Str("template", string(msg.Template)).
		Str("email_id", sent.Id).
		Msg("email accepted by provider")

	return nil
}
