package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("user_id", "SUM(delta) AS total").
		From("points_ledger").
		Where(Eq("reason", "settlement:2024-03-09"), Gte("created_at", 100)).
		GroupBy("user_id").
		OrderBy("total DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT user_id, SUM(delta) AS total FROM points_ledger WHERE reason = $1 AND created_at >= $2 GROUP BY user_id ORDER BY total DESC LIMIT 10"
	if sql != want {
		t.Fatalf("unexpected sql: got=%q want=%q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"settlement:2024-03-09", 100}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectInCondition(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("games").
		Where(In("id", []any{"g1", "g2", "g3"})).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id FROM games WHERE id IN ($1, $2, $3)"
	if sql != want {
		t.Fatalf("unexpected sql: got=%q want=%q", sql, want)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args length: got=%d want=3", len(args))
	}
}

func TestSelectEmptyInNeverMatches(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").From("games").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "SELECT id FROM games WHERE 1=0" {
		t.Fatalf("unexpected sql: %q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertMultiRowWithSuffix(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertInto("accounts").
		Columns("id", "balance").
		Values("u1", 100).
		Values("u2", 250).
		Suffix("ON CONFLICT (id) DO UPDATE SET balance = EXCLUDED.balance").
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO accounts (id, balance) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO UPDATE SET balance = EXCLUDED.balance"
	if sql != want {
		t.Fatalf("unexpected sql: got=%q want=%q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"u1", 100, "u2", 250}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertRowArityMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("accounts").Columns("id", "balance").Values("u1").ToSQL()
	if err == nil {
		t.Fatal("expected arity error")
	}
}

func TestUpdateToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := Update("accounts").
		Set("balance", 175).
		Where(Eq("id", "u1")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "UPDATE accounts SET balance = $1 WHERE id = $2"
	if sql != want {
		t.Fatalf("unexpected sql: got=%q want=%q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{175, "u1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDeleteRequiresConditions(t *testing.T) {
	t.Parallel()

	_, _, err := DeleteFrom("points_ledger").ToSQL()
	if err == nil {
		t.Fatal("expected error for unconditional delete")
	}

	sql, args, err := DeleteFrom("points_ledger").
		Where(Eq("reason", "settlement:2024-03-09")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "DELETE FROM points_ledger WHERE reason = $1" {
		t.Fatalf("unexpected sql: %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"settlement:2024-03-09"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestExprRewritesMarkers(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("games").
		Where(Eq("slate_date", "2024-03-09"), Expr("starts_at BETWEEN ? AND ?", 10, 20)).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id FROM games WHERE slate_date = $1 AND starts_at BETWEEN $2 AND $3"
	if sql != want {
		t.Fatalf("unexpected sql: got=%q want=%q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"2024-03-09", 10, 20}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	type row struct {
		ID      string `db:"id"`
		Balance int    `db:"balance"`
		Ignored string `db:"-"`
	}

	sql, args, err := InsertModel("accounts", []row{
		{ID: "u1", Balance: 100, Ignored: "x"},
		{ID: "u2", Balance: 50},
	}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO accounts (id, balance) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if sql != want {
		t.Fatalf("unexpected sql: got=%q want=%q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"u1", 100, "u2", 50}) {
		t.Fatalf("unexpected args: %v", args)
	}
}
