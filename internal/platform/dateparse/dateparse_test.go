package dateparse

import (
	"testing"
	"time"
)

func TestResolveDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dateText string
		timeText string
		want     Resolved
		wantOK   bool
	}{
		{name: "two digit year below pivot", dateText: "05.03.25", want: Resolved{Date: "2025-03-05"}, wantOK: true},
		{name: "two digit year above pivot", dateText: "05.03.99", want: Resolved{Date: "1999-03-05"}, wantOK: true},
		{name: "four digit year", dateText: "5.3.2025", want: Resolved{Date: "2025-03-05"}, wantOK: true},
		{name: "iso date", dateText: "2025-03-05", want: Resolved{Date: "2025-03-05"}, wantOK: true},
		{name: "date embedded in prose", dateText: "Sa., 05.03.25 Heimspiel", want: Resolved{Date: "2025-03-05"}, wantOK: true},
		{name: "time from time cell", dateText: "05.03.25", timeText: "18:30", want: Resolved{Date: "2025-03-05", Time: "18:30"}, wantOK: true},
		{name: "time folded into date cell", dateText: "05.03.25, 18:30 Uhr", want: Resolved{Date: "2025-03-05", Time: "18:30"}, wantOK: true},
		{name: "single digit hour padded", dateText: "05.03.25", timeText: "9:05", want: Resolved{Date: "2025-03-05", Time: "09:05"}, wantOK: true},
		{name: "time cell wins over date cell", dateText: "05.03.25 10:00", timeText: "18:30", want: Resolved{Date: "2025-03-05", Time: "18:30"}, wantOK: true},
		{name: "no date", dateText: "offen", timeText: "18:30", wantOK: false},
		{name: "impossible day", dateText: "32.01.25", wantOK: false},
		{name: "impossible month", dateText: "05.13.2025", wantOK: false},
		{name: "three digit year", dateText: "1.2.345", wantOK: false},
		{name: "impossible time dropped", dateText: "05.03.25", timeText: "25:99", want: Resolved{Date: "2025-03-05"}, wantOK: true},
		{name: "empty", dateText: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Resolve(tt.dateText, tt.timeText)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q, %q) ok = %v, want %v", tt.dateText, tt.timeText, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Fatalf("Resolve(%q, %q) = %+v, want %+v", tt.dateText, tt.timeText, got, tt.want)
			}
		})
	}
}

func TestInstant(t *testing.T) {
	t.Parallel()

	start, ok := Instant("2025-03-05", "18:30")
	if !ok {
		t.Fatal("Instant rejected valid input")
	}
	if got := start.Format("2006-01-02 15:04"); got != "2025-03-05 18:30" {
		t.Fatalf("Instant = %s, want 2025-03-05 18:30", got)
	}

	midnight, ok := Instant("2025-03-05", "")
	if !ok {
		t.Fatal("Instant rejected date without time")
	}
	if midnight.Hour() != 0 || midnight.Minute() != 0 {
		t.Fatalf("Instant without time = %v, want midnight", midnight)
	}

	end := start.Add(2 * time.Hour)
	if got := end.Format("15:04"); got != "20:30" {
		t.Fatalf("two hour duration ends at %s, want 20:30", got)
	}

	if _, ok := Instant("not-a-date", ""); ok {
		t.Fatal("Instant accepted garbage")
	}
}
