package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/sgwessen/kalender/internal/platform/querybuilder"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func mustModelColumns(model any) []string {
	columns, err := qb.ModelColumns(model)
	if err != nil {
		panic(err)
	}
	return columns
}

func anyValues(values []string) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}
	return out
}

// renumberTable reassigns display_no 1..N following the current display
// order. Runs inside the caller's transaction; the tables hold at most a
// season of rows, so per-row updates are fine.
func renumberTable(ctx context.Context, tx *sqlx.Tx, table string) error {
	selectQuery, selectArgs, err := qb.Select("identity").From(table).
		OrderBy("display_no", "identity").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build renumber select for %s: %w", table, err)
	}

	var identities []string
	if err := tx.SelectContext(ctx, &identities, tx.Rebind(selectQuery), selectArgs...); err != nil {
		return fmt.Errorf("select %s for renumbering: %w", table, err)
	}

	for i, identity := range identities {
		updateQuery, updateArgs, err := qb.Update(table).
			Set("display_no", i+1).
			Where(qb.Eq("identity", identity)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build renumber update for %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(updateQuery), updateArgs...); err != nil {
			return fmt.Errorf("renumber %s identity=%s: %w", table, identity, err)
		}
	}

	return nil
}
