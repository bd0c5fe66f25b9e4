package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/japanesestudent/embed-service/internal/config"
	"github.com/japanesestudent/embed-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var fixedTime = time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

type fakeRedis struct {
	channel string
	message []byte
	err     error
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.message, _ = message.([]byte)
	return redis.NewIntResult(1, f.err)
}

type fakeEnqueuer struct {
	task *asynq.Task
	opts []asynq.Option
	err  error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.task = task
	f.opts = opts
	return &asynq.TaskInfo{ID: "task-1", Queue: "events"}, nil
}

func loadedPayload() map[string]any {
	return map[string]any{"exploration_id": "abc", "exploration_version": float64(3)}
}

func decodeEnvelope(t *testing.T, data []byte) models.EventEnvelope {
	t.Helper()
	var env models.EventEnvelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func TestRedisPublisher_Publish(t *testing.T) {
	userID := 9

	t.Run("success", func(t *testing.T) {
		client := &fakeRedis{}
		p := NewRedisPublisher(client, "lesson-events", zap.NewNop())
		p.now = fixedClock

		err := p.Publish(context.Background(), models.EventSource{BlockID: 1, UserID: &userID}, models.EventExplorationLoaded, loadedPayload())

		require.NoError(t, err)
		assert.Equal(t, "lesson-events", client.channel)
		env := decodeEnvelope(t, client.message)
		assert.Equal(t, models.EventExplorationLoaded, env.EventType)
		assert.Equal(t, 1, env.BlockID)
		require.NotNil(t, env.UserID)
		assert.Equal(t, 9, *env.UserID)
		assert.Equal(t, loadedPayload(), env.Event)
		assert.True(t, fixedTime.Equal(env.Time))
	})

	t.Run("redis error", func(t *testing.T) {
		client := &fakeRedis{err: errors.New("connection refused")}
		p := NewRedisPublisher(client, "lesson-events", zap.NewNop())

		err := p.Publish(context.Background(), models.EventSource{BlockID: 1}, models.EventExplorationLoaded, loadedPayload())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish event to redis")
	})

	t.Run("unencodable payload", func(t *testing.T) {
		client := &fakeRedis{}
		p := NewRedisPublisher(client, "lesson-events", zap.NewNop())

		err := p.Publish(context.Background(), models.EventSource{BlockID: 1}, models.EventExplorationLoaded, map[string]any{"bad": make(chan int)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal event")
		assert.Empty(t, client.channel)
	})
}

func TestQueuePublisher_Publish(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := &fakeEnqueuer{}
		p := NewQueuePublisher(client, "events", zap.NewNop())
		p.now = fixedClock

		payload := map[string]any{
			"exploration_id":      "abc",
			"old_state_name":      "Intro",
			"new_state_name":      "Question 1",
			"exploration_version": float64(2),
		}
		err := p.Publish(context.Background(), models.EventSource{BlockID: 5}, models.EventStateTransition, payload)

		require.NoError(t, err)
		require.NotNil(t, client.task)
		assert.Equal(t, TaskTypeEvent, client.task.Type())
		env := decodeEnvelope(t, client.task.Payload())
		assert.Equal(t, models.EventStateTransition, env.EventType)
		assert.Equal(t, 5, env.BlockID)
		assert.Nil(t, env.UserID)
		assert.Equal(t, payload, env.Event)
		require.Len(t, client.opts, 1)
		assert.Equal(t, "events", client.opts[0].Value())
	})

	t.Run("enqueue error", func(t *testing.T) {
		p := NewQueuePublisher(&fakeEnqueuer{err: errors.New("redis down")}, "events", zap.NewNop())

		err := p.Publish(context.Background(), models.EventSource{BlockID: 5}, models.EventExplorationCompleted, loadedPayload())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to enqueue event")
	})
}

func TestLogPublisher_Publish(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewLogPublisher(zap.New(core))
	p.now = fixedClock
	userID := 3

	err := p.Publish(context.Background(), models.EventSource{BlockID: 2, UserID: &userID}, models.EventExplorationCompleted, loadedPayload())

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "exploration event", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, models.EventExplorationCompleted, fields["event_type"])
	assert.Equal(t, int64(2), fields["block_id"])
	assert.Equal(t, int64(3), fields["user_id"])
}

func TestNewPublisher(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer rdb.Close()
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: "localhost:6379"})
	defer asynqClient.Close()

	tests := []struct {
		name          string
		publisher     string
		rdb           *redis.Client
		asynqClient   *asynq.Client
		expectedType  any
		errorContains string
	}{
		{name: "log", publisher: config.PublisherLog, expectedType: &logPublisher{}},
		{name: "default", publisher: "", expectedType: &logPublisher{}},
		{name: "redis", publisher: config.PublisherRedis, rdb: rdb, expectedType: &redisPublisher{}},
		{name: "queue", publisher: config.PublisherQueue, asynqClient: asynqClient, expectedType: &queuePublisher{}},
		{name: "redis without client", publisher: config.PublisherRedis, errorContains: "redis client is required"},
		{name: "queue without client", publisher: config.PublisherQueue, errorContains: "asynq client is required"},
		{name: "unknown", publisher: "kafka", errorContains: "unknown event publisher"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Events.Publisher = tt.publisher
			cfg.Events.Channel = "lesson-events"
			cfg.Events.Queue = "events"

			p, err := NewPublisher(cfg, tt.rdb, tt.asynqClient, zap.NewNop())

			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.expectedType, p)
		})
	}
}
