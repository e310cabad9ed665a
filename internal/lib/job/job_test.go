package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velyralabs/landing/internal/model"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	ctxs  []context.Context
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.ctxs = append(f.ctxs, ctx)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default", Type: task.Type()}, nil
}

func (f *fakeEnqueuer) Close() error { return nil }

type fakeSender struct {
	welcomed []string
	notified []string
	inquiry  *model.ContactInquiry
	err      error
}

func (f *fakeSender) SendNewsletterWelcome(_ context.Context, to string) error {
	f.welcomed = append(f.welcomed, to)
	return f.err
}

func (f *fakeSender) SendContactNotification(_ context.Context, to string, inquiry *model.ContactInquiry) error {
	f.notified = append(f.notified, to)
	f.inquiry = inquiry
	return f.err
}

func newTestJobService(enqueuer *fakeEnqueuer, sender *fakeSender, inbox string) *JobService {
	logger := zerolog.Nop()
	return &JobService{
		Client:       enqueuer,
		sender:       sender,
		logger:       &logger,
		contactInbox: inbox,
	}
}

func TestNewsletterWelcomeEnqueues(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	j := newTestJobService(enqueuer, &fakeSender{}, "")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, j.NewsletterWelcome(ctx, "a@b.com"))
	cancel()

	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, TaskNewsletterWelcome, enqueuer.tasks[0].Type())
	assert.JSONEq(t, `{"to":"a@b.com"}`, string(enqueuer.tasks[0].Payload()))
	assert.NoError(t, enqueuer.ctxs[0].Err(), "enqueue must not inherit request cancellation")
}

func TestNewsletterWelcomeEnqueueError(t *testing.T) {
	j := newTestJobService(&fakeEnqueuer{err: errors.New("redis down")}, &fakeSender{}, "")

	err := j.NewsletterWelcome(context.Background(), "a@b.com")
	assert.ErrorContains(t, err, "redis down")
}

func TestContactReceived(t *testing.T) {
	inquiry := &model.ContactInquiry{Name: "Ada", Email: "ada@example.com", Message: "hello there, team"}

	t.Run("enqueues to inbox", func(t *testing.T) {
		enqueuer := &fakeEnqueuer{}
		j := newTestJobService(enqueuer, &fakeSender{}, "team@velyralabs.com")

		require.NoError(t, j.ContactReceived(context.Background(), inquiry))
		require.Len(t, enqueuer.tasks, 1)
		assert.Equal(t, TaskContactNotification, enqueuer.tasks[0].Type())

		var p ContactNotificationPayload
		require.NoError(t, json.Unmarshal(enqueuer.tasks[0].Payload(), &p))
		assert.Equal(t, "team@velyralabs.com", p.To)
		assert.Equal(t, *inquiry, p.Inquiry)
	})

	t.Run("no inbox configured", func(t *testing.T) {
		enqueuer := &fakeEnqueuer{}
		j := newTestJobService(enqueuer, &fakeSender{}, "")

		require.NoError(t, j.ContactReceived(context.Background(), inquiry))
		assert.Empty(t, enqueuer.tasks)
	})
}

func TestHandleNewsletterWelcomeTask(t *testing.T) {
	sender := &fakeSender{}
	j := newTestJobService(&fakeEnqueuer{}, sender, "")

	task, err := NewNewsletterWelcomeTask("a@b.com")
	require.NoError(t, err)

	require.NoError(t, j.handleNewsletterWelcomeTask(context.Background(), task))
	assert.Equal(t, []string{"a@b.com"}, sender.welcomed)
}

func TestHandleTaskSendFailureRetries(t *testing.T) {
	sender := &fakeSender{err: errors.New("provider unavailable")}
	j := newTestJobService(&fakeEnqueuer{}, sender, "")

	task, err := NewNewsletterWelcomeTask("a@b.com")
	require.NoError(t, err)

	err = j.handleNewsletterWelcomeTask(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleTaskMalformedPayloadSkipsRetry(t *testing.T) {
	j := newTestJobService(&fakeEnqueuer{}, &fakeSender{}, "")

	err := j.handleContactNotificationTask(context.Background(), asynq.NewTask(TaskContactNotification, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = j.handleNewsletterWelcomeTask(context.Background(), asynq.NewTask(TaskNewsletterWelcome, []byte("nope")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleContactNotificationTask(t *testing.T) {
	sender := &fakeSender{}
	j := newTestJobService(&fakeEnqueuer{}, sender, "team@velyralabs.com")

	inquiry := &model.ContactInquiry{Name: "Ada", Email: "ada@example.com", Company: "AE", Message: "hello there, team"}
	task, err := NewContactNotificationTask("team@velyralabs.com", inquiry)
	require.NoError(t, err)

	require.NoError(t, j.handleContactNotificationTask(context.Background(), task))
	assert.Equal(t, []string{"team@velyralabs.com"}, sender.notified)
	assert.Equal(t, inquiry, sender.inquiry)
}

func TestMuxRoutesTaskTypes(t *testing.T) {
	sender := &fakeSender{}
	j := newTestJobService(&fakeEnqueuer{}, sender, "")

	task, err := NewNewsletterWelcomeTask("a@b.com")
	require.NoError(t, err)

	require.NoError(t, j.Mux().ProcessTask(context.Background(), task))
	assert.Equal(t, []string{"a@b.com"}, sender.welcomed)
}
