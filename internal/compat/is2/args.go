package is2

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrArgs reports positional arguments that do not fit a selector.
var ErrArgs = errors.New("argument shape mismatch")

// Callback is a legacy notification callback. It takes no arguments; the
// caller re-reads state through accessor selectors.
type Callback func()

// Args holds the positional arguments of one selector call.
type Args []any

// String returns argument i as a string.
func (a Args) String(i int) (string, error) {
	if i >= len(a) {
		return "", fmt.Errorf("%w: missing argument %d", ErrArgs, i)
	}
	s, ok := a[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %d is %T, want string", ErrArgs, i, a[i])
	}
	return s, nil
}

// Number returns argument i as a float64. JSON numbers and Go integers are accepted.
func (a Args) Number(i int) (float64, error) {
	if i >= len(a) {
		return 0, fmt.Errorf("%w: missing argument %d", ErrArgs, i)
	}
	switch v := a[i].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: argument %d: %v", ErrArgs, i, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: argument %d is %T, want number", ErrArgs, i, a[i])
	}
}

// Callback returns argument i as a notification callback.
func (a Args) Callback(i int) (Callback, error) {
	if i >= len(a) {
		return nil, fmt.Errorf("%w: missing argument %d", ErrArgs, i)
	}
	switch fn := a[i].(type) {
	case Callback:
		return fn, nil
	case func():
		return fn, nil
	default:
		return nil, fmt.Errorf("%w: argument %d is %T, want callback", ErrArgs, i, a[i])
	}
}
