package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

func (j *JobService) handleNewsletterWelcomeTask(ctx context.Context, t *asynq.Task) error {
	var p NewsletterWelcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload will never succeed.
		return fmt.Errorf("failed to unmarshal newsletter welcome payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().Str("type", TaskNewsletterWelcome).Logger()
	logger.Info().Msg("processing newsletter welcome task")

	if err := j.sender.SendNewsletterWelcome(ctx, p.To); err != nil {
		logger.Error().Err(err).Msg("failed to send newsletter welcome email")
		return err
	}

	logger.Info().Msg("sent newsletter welcome email")
	return nil
}

func (j *JobService) handleContactNotificationTask(ctx context.Context, t *asynq.Task) error {
	var p ContactNotificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal contact notification payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().Str("type", TaskContactNotification).Logger()
	logger.Info().Msg("processing contact notification task")

	if err := j.sender.SendContactNotification(ctx, p.To, &p.Inquiry); err != nil {
		logger.Error().Err(err).Msg("failed to send contact notification email")
		return err
	}

	logger.Info().Msg("sent contact notification email")
	return nil
}
