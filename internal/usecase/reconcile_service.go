package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sgwessen/kalender/internal/domain/candidate"
	"github.com/sgwessen/kalender/internal/domain/event"
	"github.com/sgwessen/kalender/internal/domain/fixture"
	"github.com/sgwessen/kalender/internal/domain/names"
	"github.com/sgwessen/kalender/internal/platform/dateparse"
	"github.com/sgwessen/kalender/internal/platform/logging"
)

// FieldChange records one materially changed field on an updated record,
// old value first, for operator-facing change logs.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

func (c FieldChange) String() string {
	return fmt.Sprintf("%s: %q -> %q", c.Field, c.Old, c.New)
}

// RecordNote identifies one reconciled record in a report.
type RecordNote struct {
	Identity string         `json:"identity"`
	Kind     candidate.Kind `json:"kind"`
	Summary  string         `json:"summary"`
	Date     string         `json:"date"`
}

// UpdateNote pairs a record with its field-level change narrative.
type UpdateNote struct {
	RecordNote
	Changes []FieldChange `json:"changes"`
}

// Report classifies one reconciled batch. Dropped counts candidates that
// never reached the store because names or dates were unusable; they are an
// omission, not an error.
type Report struct {
	New       []RecordNote `json:"new"`
	Updated   []UpdateNote `json:"updated"`
	Unchanged []RecordNote `json:"unchanged"`
	Dropped   int          `json:"dropped"`
}

// HasChanges reports whether the batch created or updated anything,
// which is what publish automation keys on.
func (r Report) HasChanges() bool {
	return len(r.New) > 0 || len(r.Updated) > 0
}

func newReport() Report {
	return Report{
		New:       []RecordNote{},
		Updated:   []UpdateNote{},
		Unchanged: []RecordNote{},
	}
}

func (r *Report) merge(other Report) {
	r.New = append(r.New, other.New...)
	r.Updated = append(r.Updated, other.Updated...)
	r.Unchanged = append(r.Unchanged, other.Unchanged...)
	r.Dropped += other.Dropped
}

// DetailProvider resolves the optional secondary per-fixture lookup
// (referees, precise result, venue address and map link). Implementations
// may fail freely; the reconciler degrades instead of aborting a record.
type DetailProvider interface {
	FetchDetail(ctx context.Context, detailURL string) (candidate.Detail, error)
}

// ReconcileService merges candidate batches into canonical state. It
// processes one candidate at a time against the store and is not safe for
// concurrent calls against the same store; batches have no atomicity, a
// failure leaves earlier records committed.
type ReconcileService struct {
	fixtures fixture.Repository
	events   event.Repository
	details  DetailProvider
	logger   *logging.Logger
}

// NewReconcileService wires the reconciler. details may be nil, which
// disables enrichment.
func NewReconcileService(fixtures fixture.Repository, events event.Repository, details DetailProvider, logger *logging.Logger) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconcileService{
		fixtures: fixtures,
		events:   events,
		details:  details,
		logger:   logger,
	}
}

// Reconcile classifies every candidate as new, updated, unchanged or
// dropped. now stamps LastModified on records that materially change;
// replaying an identical batch yields zero new and zero updated entries.
func (s *ReconcileService) Reconcile(ctx context.Context, candidates []candidate.Record, now time.Time) (Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.Reconcile")
	defer span.End()

	report := newReport()
	for _, cand := range candidates {
		var err error
		switch cand.Kind {
		case candidate.KindFixture:
			err = s.reconcileFixture(ctx, &report, cand, now)
		case candidate.KindEvent:
			err = s.reconcileEvent(ctx, &report, cand, now)
		default:
			err = fmt.Errorf("%w: unknown candidate kind %q", ErrInvalidInput, cand.Kind)
		}
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

func (s *ReconcileService) reconcileFixture(ctx context.Context, report *Report, cand candidate.Record, now time.Time) error {
	home := names.Normalize(cand.Home)
	guest := names.Normalize(cand.Guest)
	if home == "" || guest == "" {
		s.logger.DebugContext(ctx, "dropping fixture candidate without usable names",
			"home", cand.Home, "guest", cand.Guest)
		report.Dropped++
		return nil
	}

	resolved, ok := dateparse.Resolve(cand.RawDate, cand.RawTime)
	if !ok {
		s.logger.DebugContext(ctx, "dropping fixture candidate without recognizable date",
			"raw_date", cand.RawDate, "summary", home+" vs "+guest)
		report.Dropped++
		return nil
	}

	identity := fixture.Identity(cand.Competition, home, guest)
	stored, found, err := s.fixtures.GetByIdentity(ctx, identity)
	if err != nil {
		return fmt.Errorf("get fixture %s: %w", identity, err)
	}

	next := fixture.Fixture{
		Identity:    identity,
		Competition: cand.Competition,
		Home:        home,
		Guest:       guest,
		Date:        resolved.Date,
		Time:        resolved.Time,
		Location:    strings.TrimSpace(cand.Location),
		Result:      strings.TrimSpace(cand.Result),
		DetailURL:   strings.TrimSpace(cand.DetailURL),
	}

	detail, enriched := s.lookupDetail(ctx, cand.DetailURL)
	if enriched {
		if detail.Result != "" {
			next.Result = detail.Result
		}
		next.Referees = detail.Referees
		next.VenueAddress = detail.VenueAddress
		next.VenueMapURL = detail.VenueMapURL
	} else if found {
		// Comparison runs on the final composed payload, so a failed detail
		// fetch must not read as the enrichment fields going away. An
		// enriched result elaborates the list-page score; keep the
		// elaboration while the base score still matches.
		next.Referees = stored.Referees
		next.VenueAddress = stored.VenueAddress
		next.VenueMapURL = stored.VenueMapURL
		if next.Result == "" || strings.HasPrefix(stored.Result, next.Result) {
			next.Result = stored.Result
		}
	}

	if !found {
		next.LastModified = now
		next.CreatedAt = now
		if err := s.fixtures.Upsert(ctx, next); err != nil {
			return fmt.Errorf("insert fixture %s: %w", identity, err)
		}
		report.New = append(report.New, fixtureNote(next))
		return nil
	}

	changes := diffFixture(stored, next)
	if len(changes) == 0 {
		if stored.DetailURL == "" && next.DetailURL != "" {
			stored.DetailURL = next.DetailURL
			if err := s.fixtures.Upsert(ctx, stored); err != nil {
				return fmt.Errorf("backfill fixture %s: %w", identity, err)
			}
		}
		report.Unchanged = append(report.Unchanged, fixtureNote(stored))
		return nil
	}

	next.DisplayNo = stored.DisplayNo
	next.CreatedAt = stored.CreatedAt
	next.LastModified = now
	if next.DetailURL == "" {
		next.DetailURL = stored.DetailURL
	}
	if err := s.fixtures.Upsert(ctx, next); err != nil {
		return fmt.Errorf("update fixture %s: %w", identity, err)
	}
	report.Updated = append(report.Updated, UpdateNote{RecordNote: fixtureNote(next), Changes: changes})
	return nil
}

func (s *ReconcileService) reconcileEvent(ctx context.Context, report *Report, cand candidate.Record, now time.Time) error {
	title := names.Normalize(cand.Title)
	if title == "" {
		s.logger.DebugContext(ctx, "dropping event candidate without usable title", "title", cand.Title)
		report.Dropped++
		return nil
	}

	resolved, ok := dateparse.Resolve(cand.RawDate, cand.RawTime)
	if !ok {
		s.logger.DebugContext(ctx, "dropping event candidate without recognizable date",
			"raw_date", cand.RawDate, "title", title)
		report.Dropped++
		return nil
	}

	identity := event.Identity(title, cand.RawDate)
	stored, found, err := s.events.GetByIdentity(ctx, identity)
	if err != nil {
		return fmt.Errorf("get event %s: %w", identity, err)
	}

	next := event.Event{
		Identity:    identity,
		Title:       title,
		Date:        resolved.Date,
		Time:        resolved.Time,
		Location:    strings.TrimSpace(cand.Location),
		Description: strings.TrimSpace(cand.Description),
	}

	if !found {
		next.LastModified = now
		next.CreatedAt = now
		if err := s.events.Upsert(ctx, next); err != nil {
			return fmt.Errorf("insert event %s: %w", identity, err)
		}
		report.New = append(report.New, eventNote(next))
		return nil
	}

	changes := diffEvent(stored, next)
	if len(changes) == 0 {
		report.Unchanged = append(report.Unchanged, eventNote(stored))
		return nil
	}

	next.DisplayNo = stored.DisplayNo
	next.CreatedAt = stored.CreatedAt
	next.LastModified = now
	if err := s.events.Upsert(ctx, next); err != nil {
		return fmt.Errorf("update event %s: %w", identity, err)
	}
	report.Updated = append(report.Updated, UpdateNote{RecordNote: eventNote(next), Changes: changes})
	return nil
}

func (s *ReconcileService) lookupDetail(ctx context.Context, detailURL string) (candidate.Detail, bool) {
	if s.details == nil || strings.TrimSpace(detailURL) == "" {
		return candidate.Detail{}, false
	}

	detail, err := s.details.FetchDetail(ctx, detailURL)
	if err != nil {
		s.logger.WarnContext(ctx, "fixture detail lookup failed, keeping last known detail",
			"detail_url", detailURL, "error", err)
		return candidate.Detail{}, false
	}
	if detail.Empty() {
		return candidate.Detail{}, false
	}

	return detail, true
}

func diffFixture(old, next fixture.Fixture) []FieldChange {
	pairs := []struct {
		field    string
		old, new string
	}{
		{"home", old.Home, next.Home},
		{"guest", old.Guest, next.Guest},
		{"date", old.Date, next.Date},
		{"time", old.Time, next.Time},
		{"location", old.Location, next.Location},
		{"result", old.Result, next.Result},
		{"referees", old.Referees, next.Referees},
		{"venue_address", old.VenueAddress, next.VenueAddress},
		{"venue_map_url", old.VenueMapURL, next.VenueMapURL},
	}

	return diffPairs(pairs)
}

func diffEvent(old, next event.Event) []FieldChange {
	pairs := []struct {
		field    string
		old, new string
	}{
		{"title", old.Title, next.Title},
		{"date", old.Date, next.Date},
		{"time", old.Time, next.Time},
		{"location", old.Location, next.Location},
		{"description", old.Description, next.Description},
	}

	return diffPairs(pairs)
}

func diffPairs(pairs []struct {
	field    string
	old, new string
}) []FieldChange {
	var changes []FieldChange
	for _, p := range pairs {
		if p.old != p.new {
			changes = append(changes, FieldChange{Field: p.field, Old: p.old, New: p.new})
		}
	}
	return changes
}

func fixtureNote(f fixture.Fixture) RecordNote {
	return RecordNote{
		Identity: f.Identity,
		Kind:     candidate.KindFixture,
		Summary:  f.Summary(),
		Date:     f.Date,
	}
}

func eventNote(e event.Event) RecordNote {
	return RecordNote{
		Identity: e.Identity,
		Kind:     candidate.KindEvent,
		Summary:  e.Summary(),
		Date:     e.Date,
	}
}
