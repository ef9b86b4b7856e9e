package providers

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
)

// IgnoredError reports an update that left the previous snapshot in place.
type IgnoredError struct {
	Namespace domain.Namespace
	Err       error
}

func (e *IgnoredError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s update ignored", e.Namespace)
	}
	return fmt.Sprintf("%s update ignored: %v", e.Namespace, e.Err)
}

func (e *IgnoredError) Unwrap() error {
	return e.Err
}

// AsIgnoredError attempts to unwrap an error into an IgnoredError.
func AsIgnoredError(err error) (*IgnoredError, bool) {
	var ignored *IgnoredError
	if errors.As(err, &ignored) {
		return ignored, true
	}
	return nil, false
}
