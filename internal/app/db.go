package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sgwessen/kalender/internal/config"
)

func openDB(cfg config.Config) (*sqlx.DB, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := otelsqlx.Open("sqlite3", sqliteDSN(cfg.DBURL),
			otelsql.WithDBSystem("sqlite"),
			otelsql.WithDBName(sqliteDBName(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, err
		}
		// SQLite permits a single writer; more connections only contend.
		db.SetMaxOpenConns(1)
		return db, nil
	case config.DriverPostgres:
		return otelsqlx.Open("postgres", normalizePostgresURL(cfg.DBURL),
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}
