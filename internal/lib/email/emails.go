package email

import (
	"context"
	"fmt"

	"github.com/velyralabs/landing/internal/model"
)

// SendNewsletterWelcome greets a new subscriber.
func (c *Client) SendNewsletterWelcome(ctx context.Context, to string) error {
	return c.SendEmail(ctx, Message{
		To:       to,
		Subject:  "Welcome to the VeLYRA LABS newsletter",
		Template: TemplateNewsletterWelcome,
		Data: map[string]string{
			"SiteURL": c.siteURL,
		},
	})
}

// SendContactNotification forwards a contact inquiry to the team inbox.
// Replies go straight to the visitor.
func (c *Client) SendContactNotification(ctx context.Context, to string, inquiry *model.ContactInquiry) error {
	return c.SendEmail(ctx, Message{
		To:       to,
		Subject:  fmt.Sprintf("New inquiry from %s", inquiry.Name),
		Template: TemplateContactNotification,
		ReplyTo:  inquiry.Email,
		Data:     ContactData(inquiry),
	})
}

// ContactData is the template data for TemplateContactNotification.
func ContactData(inquiry *model.ContactInquiry) map[string]string {
	return map[string]string{
		"Name":    inquiry.Name,
		"Email":   inquiry.Email,
		"Company": inquiry.Company,
		"Message": inquiry.Message,
	}
}
