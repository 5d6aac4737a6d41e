package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("identity", "home", "guest").
		From("fixtures").
		Where(Eq("competition", "Oberliga NRW"), IsNull("deleted_at")).
		OrderBy("display_no").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT identity, home, guest FROM fixtures WHERE competition = ? AND deleted_at IS NULL ORDER BY display_no LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "Oberliga NRW" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInCondition(t *testing.T) {
	query, args, err := Select("identity").
		From("fixtures").
		Where(In("identity", []any{"a", "b"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT identity FROM fixtures WHERE identity IN (?, ?)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, _, err = Select("identity").From("fixtures").Where(In("identity", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build empty-in query: %v", err)
	}
	if query != "SELECT identity FROM fixtures WHERE 1=0" {
		t.Fatalf("empty IN should never match, got: %s", query)
	}
}

func TestInsertBuilderWithUpsertSuffix(t *testing.T) {
	query, args, err := InsertInto("fixtures").
		Columns("identity", "home").
		Values("abc", "SG Wasserball Essen").
		Suffix("ON CONFLICT (identity) DO UPDATE SET home = excluded.home").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO fixtures (identity, home) VALUES (?, ?) ON CONFLICT (identity) DO UPDATE SET home = excluded.home"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "abc" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("fixtures").
		Set("display_no", 3).
		SetExpr("display_no", "-display_no").
		Where(Eq("identity", "abc")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE fixtures SET display_no = ?, display_no = -display_no WHERE identity = ?"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 3 || args[1] != "abc" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("events").
		Where(In("identity", []any{"a"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM events WHERE identity IN (?)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("events").ToSQL(); err == nil {
		t.Fatal("delete without where must fail")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Identity string `db:"identity"`
		Home     string `db:"home"`
		Ignored  string `db:"-"`
	}

	query, args, err := InsertModel("fixtures", row{Identity: "abc", Home: "SGW"}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	if query != "INSERT INTO fixtures (identity, home) VALUES (?, ?)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	cols, err := ModelColumns(&row{})
	if err != nil {
		t.Fatalf("model columns: %v", err)
	}
	if len(cols) != 2 || cols[0] != "identity" || cols[1] != "home" {
		t.Fatalf("unexpected columns: %+v", cols)
	}
}
