package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sgwessen/kalender/internal/domain/event"
	"github.com/sgwessen/kalender/internal/domain/fixture"
	"github.com/sgwessen/kalender/internal/domain/names"
	"github.com/sgwessen/kalender/internal/platform/dateparse"
	"github.com/sgwessen/kalender/internal/platform/logging"
)

// AddFixtureInput is one manually entered match. Date and Time take the
// same raw forms the scraper accepts (D.M.YYYY, D.M.YY, YYYY-MM-DD, H:MM).
type AddFixtureInput struct {
	Competition string `json:"competition" validate:"required,max=100"`
	Home        string `json:"home" validate:"required,max=200"`
	Guest       string `json:"guest" validate:"required,max=200"`
	Date        string `json:"date" validate:"required,max=50"`
	Time        string `json:"time" validate:"omitempty,max=20"`
	Location    string `json:"location" validate:"omitempty,max=500"`
	Result      string `json:"result" validate:"omitempty,max=100"`
}

// AddEventInput is one manually entered club date.
type AddEventInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Date        string `json:"date" validate:"required,max=50"`
	Time        string `json:"time" validate:"omitempty,max=20"`
	Location    string `json:"location" validate:"omitempty,max=500"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// ScheduleSnapshot is the full stored state in display-ordinal order.
type ScheduleSnapshot struct {
	Fixtures []fixture.Fixture `json:"fixtures"`
	Events   []event.Event     `json:"events"`
}

type RemovalResult struct {
	FixturesRemoved int `json:"fixtures_removed"`
	EventsRemoved   int `json:"events_removed"`
}

// ScheduleService covers the operator-facing store operations: listing,
// manual entry and removal. Scraped data flows through ReconcileService
// instead; manual entries join the same identity space, so a later scrape
// of the same match updates rather than duplicates it.
type ScheduleService struct {
	fixtures  fixture.Repository
	events    event.Repository
	validator *validator.Validate
	logger    *logging.Logger

	now func() time.Time
}

func NewScheduleService(fixtures fixture.Repository, events event.Repository, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{
		fixtures:  fixtures,
		events:    events,
		validator: validator.New(),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *ScheduleService) List(ctx context.Context) (ScheduleSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.List")
	defer span.End()

	fixtures, err := s.fixtures.ListAll(ctx)
	if err != nil {
		return ScheduleSnapshot{}, fmt.Errorf("list fixtures: %w", err)
	}
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return ScheduleSnapshot{}, fmt.Errorf("list events: %w", err)
	}

	return ScheduleSnapshot{Fixtures: fixtures, Events: events}, nil
}

func (s *ScheduleService) AddFixture(ctx context.Context, input AddFixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.AddFixture")
	defer span.End()

	if err := s.validator.StructCtx(ctx, input); err != nil {
		return fixture.Fixture{}, fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}

	home := names.Normalize(input.Home)
	guest := names.Normalize(input.Guest)
	if home == "" || guest == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: team name normalizes to empty", ErrInvalidInput)
	}
	resolved, ok := dateparse.Resolve(input.Date, input.Time)
	if !ok {
		return fixture.Fixture{}, fmt.Errorf("%w: unrecognizable date %q", ErrInvalidInput, input.Date)
	}

	competitionTag := strings.TrimSpace(input.Competition)
	identity := fixture.Identity(competitionTag, home, guest)
	_, found, err := s.fixtures.GetByIdentity(ctx, identity)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture %s: %w", identity, err)
	}
	if found {
		return fixture.Fixture{}, fmt.Errorf("%w: %s vs %s is already tracked in %s", ErrInvalidInput, home, guest, competitionTag)
	}

	now := s.now()
	item := fixture.Fixture{
		Identity:     identity,
		Competition:  competitionTag,
		Home:         home,
		Guest:        guest,
		Date:         resolved.Date,
		Time:         resolved.Time,
		Location:     strings.TrimSpace(input.Location),
		Result:       strings.TrimSpace(input.Result),
		LastModified: now,
		CreatedAt:    now,
	}
	if err := s.fixtures.Upsert(ctx, item); err != nil {
		return fixture.Fixture{}, fmt.Errorf("insert fixture %s: %w", identity, err)
	}

	s.logger.InfoContext(ctx, "fixture added manually",
		"identity", identity, "summary", item.Summary(), "date", item.Date)
	return item, nil
}

func (s *ScheduleService) AddEvent(ctx context.Context, input AddEventInput) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.AddEvent")
	defer span.End()

	if err := s.validator.StructCtx(ctx, input); err != nil {
		return event.Event{}, fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}

	title := names.Normalize(input.Title)
	if title == "" {
		return event.Event{}, fmt.Errorf("%w: title normalizes to empty", ErrInvalidInput)
	}
	resolved, ok := dateparse.Resolve(input.Date, input.Time)
	if !ok {
		return event.Event{}, fmt.Errorf("%w: unrecognizable date %q", ErrInvalidInput, input.Date)
	}

	identity := event.Identity(title, input.Date)
	_, found, err := s.events.GetByIdentity(ctx, identity)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event %s: %w", identity, err)
	}
	if found {
		return event.Event{}, fmt.Errorf("%w: %q on %s is already tracked", ErrInvalidInput, title, input.Date)
	}

	now := s.now()
	item := event.Event{
		Identity:     identity,
		Title:        title,
		Date:         resolved.Date,
		Time:         resolved.Time,
		Location:     strings.TrimSpace(input.Location),
		Description:  strings.TrimSpace(input.Description),
		LastModified: now,
		CreatedAt:    now,
	}
	if err := s.events.Upsert(ctx, item); err != nil {
		return event.Event{}, fmt.Errorf("insert event %s: %w", identity, err)
	}

	s.logger.InfoContext(ctx, "event added manually",
		"identity", identity, "title", title, "date", item.Date)
	return item, nil
}

// Remove deletes records by identity across both kinds and renumbers the
// remaining display ordinals. Unknown identities are not an error as long
// as at least one record matched.
func (s *ScheduleService) Remove(ctx context.Context, identities []string) (RemovalResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Remove")
	defer span.End()

	ids := make([]string, 0, len(identities))
	for _, identity := range identities {
		if identity = strings.TrimSpace(identity); identity != "" {
			ids = append(ids, identity)
		}
	}
	if len(ids) == 0 {
		return RemovalResult{}, fmt.Errorf("%w: no identities given", ErrInvalidInput)
	}

	fixturesRemoved, err := s.fixtures.DeleteAndRenumber(ctx, ids)
	if err != nil {
		return RemovalResult{}, fmt.Errorf("delete fixtures: %w", err)
	}
	eventsRemoved, err := s.events.DeleteAndRenumber(ctx, ids)
	if err != nil {
		return RemovalResult{}, fmt.Errorf("delete events: %w", err)
	}

	result := RemovalResult{FixturesRemoved: fixturesRemoved, EventsRemoved: eventsRemoved}
	if fixturesRemoved == 0 && eventsRemoved == 0 {
		return result, fmt.Errorf("%w: no stored record matches the given identities", ErrNotFound)
	}

	s.logger.InfoContext(ctx, "records removed",
		"fixtures", fixturesRemoved, "events", eventsRemoved)
	return result, nil
}
