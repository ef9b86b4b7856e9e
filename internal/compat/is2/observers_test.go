package is2

import "testing"

func TestObserverTableReplacesInPlace(t *testing.T) {
	table := newObserverTable(ObjectWeather, nil)

	var order []string
	first := table.register("a", func() { order = append(order, "a") })
	table.register("b", func() { order = append(order, "b") })
	second := table.register("a", func() { order = append(order, "a2") })

	if first == second {
		t.Fatalf("expected a fresh token on re-registration")
	}
	if table.unregisterToken(first) {
		t.Fatalf("expected the replaced token to be stale")
	}
	if table.len() != 2 {
		t.Fatalf("expected 2 registrations, got %d", table.len())
	}

	table.notify()
	if len(order) != 2 || order[0] != "a2" || order[1] != "b" {
		t.Fatalf("expected [a2 b], got %v", order)
	}
}

func TestObserverTableUnregisterUnknown(t *testing.T) {
	table := newObserverTable(ObjectMedia, nil)
	if table.unregister("missing") {
		t.Fatalf("expected unknown identifier to report false")
	}
	if table.unregisterToken("missing") {
		t.Fatalf("expected unknown token to report false")
	}
}

func TestObserverTableCallbackMayUnregisterItself(t *testing.T) {
	table := newObserverTable(ObjectCalendar, nil)
	calls := 0
	table.register("self", func() {
		calls++
		table.unregister("self")
	})

	table.notify()
	table.notify()
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}
