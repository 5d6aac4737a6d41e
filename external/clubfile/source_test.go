package clubfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sgwessen/kalender/internal/domain/candidate"
	"github.com/sgwessen/kalender/internal/domain/competition"
	"github.com/sgwessen/kalender/internal/platform/logging"
	"github.com/sgwessen/kalender/internal/usecase"
)

var _ usecase.CandidateSource = (*Source)(nil)

func TestSourceFetch_ReadsEvents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "events.json")
	payload := `[
	  {"title": "Vereinsmeisterschaft", "date": "14.06.25", "time": "10:00", "location": "Grugabad Essen", "description": "Alle Mannschaften"},
	  {"title": "Saisonabschluss", "date": "05.07.25"}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture file: %v", err)
	}

	source := NewSource(path, logging.NewNop())
	records, err := source.Fetch(context.Background(), competition.Competition{ID: "club-events"})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got=%d", len(records))
	}

	first := records[0]
	if first.Kind != candidate.KindEvent {
		t.Fatalf("unexpected kind %q", first.Kind)
	}
	if first.Title != "Vereinsmeisterschaft" || first.RawDate != "14.06.25" || first.RawTime != "10:00" {
		t.Fatalf("unexpected record %+v", first)
	}
	if records[1].RawTime != "" {
		t.Fatalf("missing time must stay empty, got=%q", records[1].RawTime)
	}
}

func TestSourceFetch_MissingFileIsSoft(t *testing.T) {
	t.Parallel()

	source := NewSource(filepath.Join(t.TempDir(), "absent.json"), logging.NewNop())
	records, err := source.Fetch(context.Background(), competition.Competition{})
	if err != nil {
		t.Fatalf("missing file must not error, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty batch, got=%d", len(records))
	}
}

func TestSourceFetch_MalformedFileFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte(`{"not": "an array"`), 0o644); err != nil {
		t.Fatalf("write fixture file: %v", err)
	}

	source := NewSource(path, logging.NewNop())
	if _, err := source.Fetch(context.Background(), competition.Competition{}); err == nil {
		t.Fatalf("expected decode error")
	}
}
