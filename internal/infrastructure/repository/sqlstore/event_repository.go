package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sgwessen/kalender/internal/domain/event"
	qb "github.com/sgwessen/kalender/internal/platform/querybuilder"
)

var eventColumns = mustModelColumns(eventTableModel{})

const eventUpsertSuffix = `ON CONFLICT (identity) DO UPDATE SET
	title = excluded.title,
	event_date = excluded.event_date,
	event_time = excluded.event_time,
	location = excluded.location,
	description = excluded.description,
	last_modified = excluded.last_modified`

// EventRepository persists club events in the events table.
type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByIdentity(ctx context.Context, identity string) (event.Event, bool, error) {
	query, args, err := qb.Select(eventColumns...).
		From("events").
		Where(qb.Eq("identity", identity)).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event by identity: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *EventRepository) Upsert(ctx context.Context, e event.Event) error {
	displayNo, err := r.nextDisplayNo(ctx)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("events", newEventTableModel(e, displayNo), eventUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert event identity=%s: %w", e.Identity, err)
	}

	return nil
}

func (r *EventRepository) ListAll(ctx context.Context) ([]event.Event, error) {
	query, args, err := qb.Select(eventColumns...).
		From("events").
		OrderBy("display_no", "identity").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *EventRepository) DeleteAndRenumber(ctx context.Context, identities []string) (int, error) {
	if len(identities) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete events tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("events").
		Where(qb.In("identity", anyValues(identities))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete events query: %w", err)
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("delete events: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted events: %w", err)
	}

	if deleted > 0 {
		if err := renumberTable(ctx, tx, "events"); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete events tx: %w", err)
	}

	return int(deleted), nil
}

func (r *EventRepository) nextDisplayNo(ctx context.Context) (int, error) {
	var next int
	if err := r.db.GetContext(ctx, &next, "SELECT COALESCE(MAX(display_no), 0) + 1 FROM events"); err != nil {
		return 0, fmt.Errorf("next event display_no: %w", err)
	}
	return next, nil
}
