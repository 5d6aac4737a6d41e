package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/sgwessen/kalender/internal/domain/fixture"
	eventmock "github.com/sgwessen/kalender/internal/mocks/domain/event"
	fixturemock "github.com/sgwessen/kalender/internal/mocks/domain/fixture"
)

func TestScheduleService_AddFixture_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fixtureRepo := fixturemock.NewRepository(t)
	eventRepo := eventmock.NewRepository(t)

	service := NewScheduleService(fixtureRepo, eventRepo, nil)
	identity := fixture.Identity("Testspiel", "SV Beispiel", "WSV Musterstadt")

	fixtureRepo.
		On("GetByIdentity", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), identity).
		Return(fixture.Fixture{}, false, nil).
		Once()
	fixtureRepo.
		On("Upsert", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), mock.MatchedBy(func(f fixture.Fixture) bool {
			return f.Identity == identity &&
				f.Home == "SV Beispiel" &&
				f.Guest == "WSV Musterstadt" &&
				f.Date == "2025-12-24" &&
				f.Time == "18:30"
		})).
		Return(nil).
		Once()

	got, err := service.AddFixture(ctx, AddFixtureInput{
		Competition: "Testspiel",
		Home:        "SV Beispiel",
		Guest:       "WSV Musterstadt",
		Date:        "24.12.2025",
		Time:        "18:30",
	})
	if err != nil {
		t.Fatalf("add fixture: %v", err)
	}
	if got.Identity != identity {
		t.Fatalf("unexpected identity: got=%s want=%s", got.Identity, identity)
	}
	if got.Date != "2025-12-24" {
		t.Fatalf("unexpected date: got=%s want=2025-12-24", got.Date)
	}
}

func TestScheduleService_AddFixture_DuplicateUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fixtureRepo := fixturemock.NewRepository(t)
	eventRepo := eventmock.NewRepository(t)

	service := NewScheduleService(fixtureRepo, eventRepo, nil)
	identity := fixture.Identity("Testspiel", "SV Beispiel", "WSV Musterstadt")

	fixtureRepo.
		On("GetByIdentity", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), identity).
		Return(fixture.Fixture{Identity: identity}, true, nil).
		Once()

	_, err := service.AddFixture(ctx, AddFixtureInput{
		Competition: "Testspiel",
		Home:        "SV Beispiel",
		Guest:       "WSV Musterstadt",
		Date:        "24.12.2025",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScheduleService_Remove_CountsBothKindsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fixtureRepo := fixturemock.NewRepository(t)
	eventRepo := eventmock.NewRepository(t)

	service := NewScheduleService(fixtureRepo, eventRepo, nil)
	identities := []string{"fix-1", "evt-1"}

	fixtureRepo.
		On("DeleteAndRenumber", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), identities).
		Return(1, nil).
		Once()
	eventRepo.
		On("DeleteAndRenumber", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), identities).
		Return(1, nil).
		Once()

	result, err := service.Remove(ctx, identities)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if result.FixturesRemoved != 1 || result.EventsRemoved != 1 {
		t.Fatalf("unexpected removal counts: %+v", result)
	}
}
