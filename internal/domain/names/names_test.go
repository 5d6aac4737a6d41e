package names

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain name untouched", in: "FC Example", want: "FC Example"},
		{name: "leading row number stripped", in: " 12 FC Example ", want: "FC Example"},
		{name: "leading row number with punctuation", in: "3. SV Musterhausen", want: "SV Musterhausen"},
		{name: "whitespace collapsed", in: "FC   Example \t United", want: "FC Example United"},
		{name: "club variant mapped", in: "SGW Essen", want: "SG Wasserball Essen"},
		{name: "club variant keeps team suffix", in: "SGW Essen II", want: "SG Wasserball Essen II"},
		{name: "club variant case insensitive", in: "sg wasserball essen", want: "SG Wasserball Essen"},
		{name: "founding year stripped", in: "TSV 1848 Beispielstadt", want: "TSV Beispielstadt"},
		{name: "founding year then variant", in: "SGW Essen 1906", want: "SG Wasserball Essen"},
		{name: "two digit founding suffix survives", in: "ASC Duisburg 98", want: "ASC Duisburg 98"},
		{name: "roman suffix survives year strip", in: "TSV 1848 Beispielstadt III", want: "TSV Beispielstadt III"},
		{name: "purely numeric rejected", in: "42", want: ""},
		{name: "numeric after stripping rejected", in: " 12 345 ", want: ""},
		{name: "empty rejected", in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize(tt.in)
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"FC Example",
		" 12 FC Example ",
		"SGW Essen II",
		"SGW Essen 1906",
		"TSV 1848 Beispielstadt III",
		"1. FC Musterstadt",
		"ASC Duisburg 98",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
