package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/velyralabs/landing/internal/model"
)

// Task type names stored in Redis.
const (
	TaskNewsletterWelcome   = "email:newsletter_welcome"
	TaskContactNotification = "email:contact_notification"
)

type NewsletterWelcomePayload struct {
	To string `json:"to"`
}

type ContactNotificationPayload struct {
	To      string               `json:"to"`
	Inquiry model.ContactInquiry `json:"inquiry"`
}

// NewNewsletterWelcomeTask builds the welcome email task.
func NewNewsletterWelcomeTask(to string) (*asynq.Task, error) {
	payload, err := json.Marshal(NewsletterWelcomePayload{To: to})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskNewsletterWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewContactNotificationTask builds the task forwarding an inquiry to to.
// Inquiries are time sensitive, so they go to the critical queue.
func NewContactNotificationTask(to string, inquiry *model.ContactInquiry) (*asynq.Task, error) {
	payload, err := json.Marshal(ContactNotificationPayload{To: to, Inquiry: *inquiry})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskContactNotification,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}
