package metrics

import "testing"

func TestMetricFieldKeysAreStable(t *testing.T) {
	for _, key := range []string{AttrMethod, AttrPath, AttrStatus, AttrNamespace, AttrDirection, AttrKind, AttrObject, AttrResult} {
		if key == "" {
			t.Fatalf("expected metric attribute keys to be non-empty")
		}
	}
	if DirectionInbound == DirectionOutbound {
		t.Fatalf("expected distinct directions")
	}
}
