package event

import "testing"

func TestIdentityKeysOnRawDateText(t *testing.T) {
	t.Parallel()

	a := Identity("Vereinsfeier", "20.12.2025")
	b := Identity("Vereinsfeier", "20.12.25")
	if a == b {
		t.Fatal("respelled raw date must produce a distinct event identity")
	}

	if got := Identity("Vereinsfeier", "20.12.2025"); got != a {
		t.Fatalf("identity not stable across calls: %s vs %s", got, a)
	}
}

func TestSummaryCarriesEventMarker(t *testing.T) {
	t.Parallel()

	e := Event{Title: "Vereinsfeier"}
	if got := e.Summary(); got != "[EVENT] Vereinsfeier" {
		t.Fatalf("Summary = %q", got)
	}
}
