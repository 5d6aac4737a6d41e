package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestScheduleService_AddFixture(t *testing.T) {
	t.Parallel()

	fixtures := newFakeFixtureRepo()
	svc := NewScheduleService(fixtures, newFakeEventRepo(), nil)
	svc.now = func() time.Time { return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC) }

	input := AddFixtureInput{
		Competition: "Oberliga NRW",
		Home:        "SGW Essen",
		Guest:       "ASC Duisburg 98",
		Date:        "05.10.25",
		Time:        "18:30",
		Location:    "Grugabad Essen",
	}
	added, err := svc.AddFixture(context.Background(), input)
	if err != nil {
		t.Fatalf("AddFixture error: %v", err)
	}
	if added.Home != "SG Wasserball Essen" {
		t.Fatalf("club variant not normalized, got=%q", added.Home)
	}
	if added.Date != "2025-10-05" || added.Time != "18:30" {
		t.Fatalf("date not canonicalized, got=%q %q", added.Date, added.Time)
	}
	if len(added.Identity) != 64 {
		t.Fatalf("unexpected identity %q", added.Identity)
	}

	// A cosmetic variant of the same match must collide with the stored one.
	dup := input
	dup.Home = " SG Wasserball Essen "
	if _, err := svc.AddFixture(context.Background(), dup); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected duplicate to be rejected, got=%v", err)
	}
}

func TestScheduleService_AddFixture_RejectsUnusableInput(t *testing.T) {
	t.Parallel()

	svc := NewScheduleService(newFakeFixtureRepo(), newFakeEventRepo(), nil)

	tests := []struct {
		name  string
		input AddFixtureInput
	}{
		{
			name:  "missing guest",
			input: AddFixtureInput{Competition: "Oberliga NRW", Home: "SG Wasserball Essen", Date: "05.10.25"},
		},
		{
			name:  "name collapses to empty",
			input: AddFixtureInput{Competition: "Oberliga NRW", Home: "417", Guest: "ASC Duisburg 98", Date: "05.10.25"},
		},
		{
			name:  "unrecognizable date",
			input: AddFixtureInput{Competition: "Oberliga NRW", Home: "SG Wasserball Essen", Guest: "ASC Duisburg 98", Date: "irgendwann"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := svc.AddFixture(context.Background(), tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got=%v", err)
			}
		})
	}
}

func TestScheduleService_AddEvent(t *testing.T) {
	t.Parallel()

	svc := NewScheduleService(newFakeFixtureRepo(), newFakeEventRepo(), nil)

	added, err := svc.AddEvent(context.Background(), AddEventInput{
		Title:    "Weihnachtsfeier",
		Date:     "20.12.2025",
		Time:     "17:00",
		Location: "Vereinsheim",
	})
	if err != nil {
		t.Fatalf("AddEvent error: %v", err)
	}
	if added.Date != "2025-12-20" {
		t.Fatalf("date not canonicalized, got=%q", added.Date)
	}

	if _, err := svc.AddEvent(context.Background(), AddEventInput{
		Title: "Weihnachtsfeier",
		Date:  "20.12.2025",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected duplicate to be rejected, got=%v", err)
	}
}

func TestScheduleService_RemoveRenumbers(t *testing.T) {
	t.Parallel()

	fixtures := newFakeFixtureRepo()
	events := newFakeEventRepo()
	svc := NewScheduleService(fixtures, events, nil)

	var identities []string
	for _, guest := range []string{"ASC Duisburg 98", "SV Bayer Uerdingen 08", "SV Aegir Uerdingen"} {
		added, err := svc.AddFixture(context.Background(), AddFixtureInput{
			Competition: "Oberliga NRW",
			Home:        "SG Wasserball Essen",
			Guest:       guest,
			Date:        "05.10.2025",
		})
		if err != nil {
			t.Fatalf("seed AddFixture error: %v", err)
		}
		identities = append(identities, added.Identity)
	}

	result, err := svc.Remove(context.Background(), []string{identities[0]})
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if result.FixturesRemoved != 1 || result.EventsRemoved != 0 {
		t.Fatalf("unexpected removal counts: %+v", result)
	}

	snapshot, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(snapshot.Fixtures) != 2 {
		t.Fatalf("expected 2 fixtures left, got=%d", len(snapshot.Fixtures))
	}
	for i, item := range snapshot.Fixtures {
		if item.DisplayNo != i+1 {
			t.Fatalf("display ordinals not renumbered: %+v", snapshot.Fixtures)
		}
	}

	if _, err := svc.Remove(context.Background(), []string{"deadbeef"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown identity, got=%v", err)
	}
	if _, err := svc.Remove(context.Background(), []string{"  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty identity list, got=%v", err)
	}
}
