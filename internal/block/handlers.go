package block

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/japanesestudent/embed-service/internal/models"
)

const (
	HandlerExplorationLoaded    = "on_exploration_loaded"
	HandlerStateTransition      = "on_state_transition"
	HandlerExplorationCompleted = "on_exploration_completed"
	HandlerStudioSubmit         = "studio_submit"
)

// eventField maps a client payload key to the published payload key
type eventField struct {
	key        string
	payloadKey string
}

var (
	explorationVersion = eventField{key: "explorationVersion", payloadKey: "exploration_version"}
	oldStateName       = eventField{key: "oldStateName", payloadKey: "old_state_name"}
	newStateName       = eventField{key: "newStateName", payloadKey: "new_state_name"}
)

// Handle dispatches a JSON handler call by name
func (b *LessonEmbedBlock) Handle(ctx context.Context, name string, data map[string]any) (models.HandlerResult, error) {
	switch name {
	case HandlerExplorationLoaded:
		return b.OnExplorationLoaded(ctx, data)
	case HandlerStateTransition:
		return b.OnStateTransition(ctx, data)
	case HandlerExplorationCompleted:
		return b.OnExplorationCompleted(ctx, data)
	case HandlerStudioSubmit:
		return b.StudioSubmit(ctx, data)
	}
	return models.HandlerResult{}, fmt.Errorf("%w: %s", ErrUnknownHandler, name)
}

// OnExplorationLoaded relays the exploration load event
func (b *LessonEmbedBlock) OnExplorationLoaded(ctx context.Context, data map[string]any) (models.HandlerResult, error) {
	return b.relay(ctx, models.EventExplorationLoaded, data, explorationVersion)
}

// OnStateTransition relays a state transition inside the exploration
func (b *LessonEmbedBlock) OnStateTransition(ctx context.Context, data map[string]any) (models.HandlerResult, error) {
	return b.relay(ctx, models.EventStateTransition, data, oldStateName, newStateName, explorationVersion)
}

// OnExplorationCompleted relays the exploration completion event
func (b *LessonEmbedBlock) OnExplorationCompleted(ctx context.Context, data map[string]any) (models.HandlerResult, error) {
	return b.relay(ctx, models.EventExplorationCompleted, data, explorationVersion)
}

// relay builds the payload from the required keys and publishes it.
// The exploration ID always comes from stored configuration.
func (b *LessonEmbedBlock) relay(ctx context.Context, eventName string, data map[string]any, fields ...eventField) (models.HandlerResult, error) {
	payload := map[string]any{"exploration_id": b.config.LessonID}
	for _, f := range fields {
		value, ok := data[f.key]
		if !ok {
			return models.HandlerResult{}, &MissingFieldError{Field: f.key}
		}
		payload[f.payloadKey] = value
	}

	if err := b.runtime.Publisher.Publish(ctx, b.eventSource(ctx), eventName, payload); err != nil {
		return models.HandlerResult{}, fmt.Errorf("failed to publish %s: %w", eventName, err)
	}

	return models.ResultSuccess, nil
}

func (b *LessonEmbedBlock) eventSource(ctx context.Context) models.EventSource {
	source := models.EventSource{BlockID: b.id}
	if b.runtime.User != nil {
		if userID, ok := b.runtime.User(ctx); ok {
			source.UserID = &userID
		}
	}
	return source
}

// StudioSubmit overwrites all three configuration fields from the payload.
// Missing keys clear the corresponding field.
func (b *LessonEmbedBlock) StudioSubmit(ctx context.Context, data map[string]any) (models.HandlerResult, error) {
	cfg := models.BlockConfig{
		LessonID:    stringField(data, "lesson_id"),
		SourceURL:   stringField(data, "src"),
		DisplayName: stringField(data, "display_name"),
	}

	if err := b.runtime.Store.SaveConfig(ctx, b.id, cfg); err != nil {
		return models.HandlerResult{}, fmt.Errorf("failed to save block config: %w", err)
	}
	b.config = cfg

	return models.ResultSuccess, nil
}

func stringField(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
