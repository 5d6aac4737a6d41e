package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sgwessen/kalender/internal/domain/fixture"
	qb "github.com/sgwessen/kalender/internal/platform/querybuilder"
)

var fixtureColumns = mustModelColumns(fixtureTableModel{})

// display_no and created_at stay out of the conflict clause on purpose:
// both are assigned on first insert and owned by the store afterwards.
const fixtureUpsertSuffix = `ON CONFLICT (identity) DO UPDATE SET
	competition = excluded.competition,
	home_team = excluded.home_team,
	guest_team = excluded.guest_team,
	match_date = excluded.match_date,
	match_time = excluded.match_time,
	location = excluded.location,
	result = excluded.result,
	referees = excluded.referees,
	venue_address = excluded.venue_address,
	venue_map_url = excluded.venue_map_url,
	detail_url = excluded.detail_url,
	last_modified = excluded.last_modified`

// FixtureRepository persists fixtures in the fixtures table.
type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByIdentity(ctx context.Context, identity string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(fixtureColumns...).
		From("fixtures").
		Where(qb.Eq("identity", identity)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture by identity: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *FixtureRepository) Upsert(ctx context.Context, f fixture.Fixture) error {
	displayNo, err := r.nextDisplayNo(ctx)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("fixtures", newFixtureTableModel(f, displayNo), fixtureUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert fixture query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert fixture identity=%s: %w", f.Identity, err)
	}

	return nil
}

func (r *FixtureRepository) ListAll(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).
		From("fixtures").
		OrderBy("display_no", "identity").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *FixtureRepository) DeleteAndRenumber(ctx context.Context, identities []string) (int, error) {
	if len(identities) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete fixtures tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("fixtures").
		Where(qb.In("identity", anyValues(identities))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete fixtures query: %w", err)
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("delete fixtures: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted fixtures: %w", err)
	}

	if deleted > 0 {
		if err := renumberTable(ctx, tx, "fixtures"); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete fixtures tx: %w", err)
	}

	return int(deleted), nil
}

// nextDisplayNo runs outside the upsert statement; the sync pipeline is the
// single writer, so max+1 cannot race with itself. On conflict the computed
// value is discarded with the rest of the insert row.
func (r *FixtureRepository) nextDisplayNo(ctx context.Context) (int, error) {
	var next int
	if err := r.db.GetContext(ctx, &next, "SELECT COALESCE(MAX(display_no), 0) + 1 FROM fixtures"); err != nil {
		return 0, fmt.Errorf("next fixture display_no: %w", err)
	}
	return next, nil
}
