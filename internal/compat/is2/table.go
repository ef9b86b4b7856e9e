package is2

import "strings"

type handler func(args Args) (any, error)

// selectorTable resolves selector strings to a closed set of selector values
// and each value to its handler. Surrounding whitespace in selector strings is
// ignored.
type selectorTable[S comparable] struct {
	names    map[string]S
	handlers map[S]handler
}

func (t selectorTable[S]) parse(raw string) (S, bool) {
	sel, ok := t.names[strings.TrimSpace(raw)]
	return sel, ok
}

func (t selectorTable[S]) lookup(raw string) (handler, bool) {
	sel, ok := t.parse(raw)
	if !ok {
		return nil, false
	}
	h, ok := t.handlers[sel]
	return h, ok
}

func constant(v any) handler {
	return func(Args) (any, error) { return v, nil }
}

func noop(Args) (any, error) {
	return nil, nil
}

// registerWith stores args[0] as identifier and args[1] as callback.
func registerWith(obs *observerTable) handler {
	return func(args Args) (any, error) {
		id, err := args.String(0)
		if err != nil {
			return nil, err
		}
		fn, err := args.Callback(1)
		if err != nil {
			return nil, err
		}
		return obs.register(id, fn), nil
	}
}

// unregisterWith removes the identifier in args[0].
func unregisterWith(obs *observerTable) handler {
	return func(args Args) (any, error) {
		id, err := args.String(0)
		if err != nil {
			return nil, err
		}
		return obs.unregister(id), nil
	}
}
