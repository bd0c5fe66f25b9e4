package events

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/japanesestudent/embed-service/internal/models"
	"go.uber.org/zap"
)

// TaskTypeEvent is the asynq task type carrying an event envelope
const TaskTypeEvent = "lesson:event"

// TaskEnqueuer is the subset of *asynq.Client used to enqueue tasks
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type queuePublisher struct {
	client TaskEnqueuer
	queue  string
	logger *zap.Logger
	now    func() time.Time
}

// NewQueuePublisher creates a publisher that enqueues event envelopes for the analytics worker
func NewQueuePublisher(client TaskEnqueuer, queue string, logger *zap.Logger) *queuePublisher {
	return &queuePublisher{
		client: client,
		queue:  queue,
		logger: logger,
		now:    time.Now,
	}
}

// Publish enqueues the event envelope as a lesson:event task
func (p *queuePublisher) Publish(ctx context.Context, source models.EventSource, eventName string, payload map[string]any) error {
	data, err := encodeEnvelope(source, eventName, payload, p.now())
	if err != nil {
		return err
	}

	info, err := p.client.EnqueueContext(ctx, asynq.NewTask(TaskTypeEvent, data), asynq.Queue(p.queue))
	if err != nil {
		p.logger.Error("failed to enqueue event",
			zap.String("queue", p.queue),
			zap.String("event_type", eventName),
			zap.Error(err),
		)
		return fmt.Errorf("failed to enqueue event: %w", err)
	}

	p.logger.Debug("event enqueued",
		zap.String("queue", p.queue),
		zap.String("task_id", info.ID),
		zap.String("event_type", eventName),
		zap.Int("block_id", source.BlockID),
	)
	return nil
}
