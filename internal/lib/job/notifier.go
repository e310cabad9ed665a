package job

import (
	"context"
	"fmt"

	"github.com/velyralabs/landing/internal/model"
)

// NewsletterWelcome schedules the welcome email for a new subscriber.
//
// The enqueue outlives the request: a visitor closing the tab after the
// row is stored still gets the email.
func (j *JobService) NewsletterWelcome(ctx context.Context, email string) error {
	task, err := NewNewsletterWelcomeTask(email)
	if err != nil {
		return fmt.Errorf("build newsletter welcome task: %w", err)
	}

	info, err := j.Client.EnqueueContext(context.WithoutCancel(ctx), task)
	if err != nil {
		return fmt.Errorf("enqueue newsletter welcome task: %w", err)
	}

	j.logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("enqueued newsletter welcome task")
	return nil
}

// ContactReceived schedules the team notification for a contact inquiry.
// It does nothing when no contact inbox is configured.
func (j *JobService) ContactReceived(ctx context.Context, inquiry *model.ContactInquiry) error {
	if j.contactInbox == "" {
		return nil
	}

	task, err := NewContactNotificationTask(j.contactInbox, inquiry)
	if err != nil {
		return fmt.Errorf("build contact notification task: %w", err)
	}

	info, err := j.Client.EnqueueContext(context.WithoutCancel(ctx), task)
	if err != nil {
		return fmt.Errorf("enqueue contact notification task: %w", err)
	}

	j.logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("enqueued contact notification task")
	return nil
}
