package providers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
)

// DecodeOver returns a NormalizeFunc that decodes the payload over a fresh
// default snapshot, so keys the host omits keep their default values.
func DecodeOver[T any](defaults func() T) NormalizeFunc[T] {
	return func(raw json.RawMessage) (T, error) {
		snap := defaults()
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			return snap, domain.ErrIncompletePayload
		}
		if err := json.Unmarshal(trimmed, &snap); err != nil {
			var zero T
			return zero, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
		}
		return snap, nil
	}
}
