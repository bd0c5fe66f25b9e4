package block

import (
	"errors"
	"fmt"
)

// ErrUnknownHandler is returned when a JSON handler name is not registered
var ErrUnknownHandler = errors.New("unknown handler")

// MissingFieldError reports a required key absent from an inbound event payload
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}
