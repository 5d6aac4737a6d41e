package fixture

import (
	"strings"
	"testing"

	"github.com/sgwessen/kalender/internal/domain/names"
)

func TestIdentityStability(t *testing.T) {
	t.Parallel()

	a := Identity("Oberliga NRW", names.Normalize(" 12 FC Example "), names.Normalize("SGW Essen"))
	b := Identity("Oberliga NRW", names.Normalize("FC Example"), names.Normalize("SG Wasserball Essen"))
	if a != b {
		t.Fatalf("cosmetic variation changed identity: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("identity length = %d, want 64 hex chars", len(a))
	}
	if a != strings.ToLower(a) {
		t.Fatalf("identity %s is not lowercase hex", a)
	}
}

func TestIdentityDistinguishes(t *testing.T) {
	t.Parallel()

	base := Identity("Oberliga NRW", "SG Wasserball Essen", "FC Example")
	tests := []struct {
		name string
		got  string
	}{
		{name: "competition", got: Identity("WB Pokal NRW", "SG Wasserball Essen", "FC Example")},
		{name: "sides swapped", got: Identity("Oberliga NRW", "FC Example", "SG Wasserball Essen")},
		{name: "team suffix", got: Identity("Oberliga NRW", "SG Wasserball Essen II", "FC Example")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.got == base {
				t.Fatalf("identity collision on differing %s", tt.name)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	t.Parallel()

	f := Fixture{
		Competition: "Oberliga NRW",
		Result:      "12:9",
		Referees:    "A. Weber, B. Schmidt",
	}
	want := "[Oberliga NRW]\nResult: 12:9\nReferees: A. Weber, B. Schmidt"
	if got := f.Description(); got != want {
		t.Fatalf("Description = %q, want %q", got, want)
	}

	empty := Fixture{}
	if got := empty.Description(); got != "" {
		t.Fatalf("empty fixture Description = %q, want empty", got)
	}

	partial := Fixture{Competition: "Oberliga NRW"}
	if got := partial.Description(); got != "[Oberliga NRW]" {
		t.Fatalf("partial Description = %q", got)
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	f := Fixture{Home: "SG Wasserball Essen", Guest: "FC Example"}
	if got := f.Summary(); got != "SG Wasserball Essen vs FC Example" {
		t.Fatalf("Summary = %q", got)
	}
}
