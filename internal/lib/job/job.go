// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) with an asynq.Client
//   - a server runs workers that process them (consumer) with an asynq.Server
//
// The site uses it to send follow-up emails after a submission is stored, so
// a slow or failing email provider never delays or fails the form response.
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/velyralabs/landing/internal/config"
	"github.com/velyralabs/landing/internal/model"
)

// Enqueuer is the producer half of asynq; *asynq.Client satisfies it.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Sender delivers the emails the tasks describe; *email.Client satisfies it.
type Sender interface {
	SendNewsletterWelcome(ctx context.Context, to string) error
	SendContactNotification(ctx context.Context, to string, inquiry *model.ContactInquiry) error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client Enqueuer

	server *asynq.Server
	sender Sender
	logger *zerolog.Logger

	// contactInbox receives contact notifications. Empty disables them.
	contactInbox string
}

// NewJobService creates a JobService backed by the Redis in cfg.
//
// Queue weights give "critical" tasks the biggest worker share:
// out of 10 workers roughly 6 serve critical, 3 default and 1 low.
func NewJobService(logger *zerolog.Logger, cfg *config.Config, sender Sender) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client:       asynq.NewClient(redisOpt),
		server:       server,
		sender:       sender,
		logger:       logger,
		contactInbox: cfg.Integration.ContactInbox,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskNewsletterWelcome, j.handleNewsletterWelcomeTask)
	mux.HandleFunc(TaskContactNotification, j.handleContactNotificationTask)
	return mux
}

// Start starts the worker server in the background. It does not block.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for in-flight tasks and closes the Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}
