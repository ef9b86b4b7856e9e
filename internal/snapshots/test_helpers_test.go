package snapshots

import (
	"testing"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/testutil"
)

// newSteppingWriter returns a writer whose clock advances one second per capture.
func newSteppingWriter(t *testing.T, retention int) *Writer {
	t.Helper()
	w := NewWriter(t.TempDir(), retention)
	w.now = testutil.SteppingClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), time.Second)
	return w
}

func writeCapture(t *testing.T, w *Writer, ns domain.Namespace, raw string) {
	t.Helper()
	if err := w.Write(ns, []byte(raw)); err != nil {
		t.Fatalf("failed to write capture %s: %v", ns, err)
	}
}

func assertStampsLen(t *testing.T, got []string, want int) {
	t.Helper()
	if len(got) != want {
		t.Fatalf("expected %d captures, got %v", want, got)
	}
}
