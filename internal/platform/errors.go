package platform

import (
	"errors"
	"fmt"
)

// ErrInvalidWindowHandle reports that a handle no longer refers to a live window.
var ErrInvalidWindowHandle = errors.New("invalid window handle")

// SetWindowPositionError reports that the window system rejected a placement.
// Transient and permanent causes are not distinguished.
type SetWindowPositionError struct {
	Detail string
}

func (e *SetWindowPositionError) Error() string {
	if e.Detail == "" {
		return "set window position failed"
	}
	return fmt.Sprintf("set window position failed: %s", e.Detail)
}

func newSetWindowPositionError(err error) error {
	if err == nil {
		return &SetWindowPositionError{}
	}
	return &SetWindowPositionError{Detail: err.Error()}
}
