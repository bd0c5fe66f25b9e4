package block

import (
	"context"
	"fmt"

	"github.com/japanesestudent/embed-service/internal/models"
)

// Publisher defines the host event bus
type Publisher interface {
	// Publish forwards an event payload to the event bus
	//
	// "source" identifies the block instance and learner.
	// "eventName" is one of the lesson.exploration.* event names.
	// "payload" is forwarded as-is.
	//
	// Returns an error if the event could not be handed off.
	Publish(ctx context.Context, source models.EventSource, eventName string, payload map[string]any) error
}

// FieldStore defines the host field persistence
type FieldStore interface {
	// SaveConfig overwrites the stored configuration of a block
	//
	// "id" is the ID of the block.
	// "cfg" is the new configuration.
	//
	// Returns an error if any.
	SaveConfig(ctx context.Context, id int, cfg models.BlockConfig) error
}

// TemplateRenderer fills an HTML template with a key/value context
type TemplateRenderer interface {
	Render(name string, data map[string]any) (string, error)
}

// ResourceLoader reads packaged resources by relative path.
// A missing resource must be reported with an error wrapping fs.ErrNotExist.
type ResourceLoader interface {
	Load(path string) ([]byte, error)
}

// LocaleFunc returns the active locale of the request
type LocaleFunc func(ctx context.Context) string

// UserFunc returns the learner bound to the request, if any
type UserFunc func(ctx context.Context) (int, bool)

// Runtime bundles the host services a block calls into
type Runtime struct {
	Publisher Publisher
	Store     FieldStore
	Templates TemplateRenderer
	Resources ResourceLoader
	Locale    LocaleFunc
	// User is optional; events are anonymous without it
	User UserFunc
}

// Validate checks that every required host service is set
func (rt Runtime) Validate() error {
	switch {
	case rt.Publisher == nil:
		return fmt.Errorf("runtime publisher is required")
	case rt.Store == nil:
		return fmt.Errorf("runtime field store is required")
	case rt.Templates == nil:
		return fmt.Errorf("runtime template renderer is required")
	case rt.Resources == nil:
		return fmt.Errorf("runtime resource loader is required")
	case rt.Locale == nil:
		return fmt.Errorf("runtime locale function is required")
	}
	return nil
}
