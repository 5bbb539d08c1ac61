package query

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestQueryImmutability(t *testing.T) {
	q := New("SELECT 1")
	withFooter := q.WithFooter("LIMIT 5")
	if q.Text() != "SELECT 1" {
		t.Errorf("WithFooter mutated the receiver: %q", q.Text())
	}
	if withFooter.Text() != "SELECT 1\nLIMIT 5" {
		t.Errorf("WithFooter = %q", withFooter.Text())
	}
	if q.WithFooter("").Text() != q.Text() {
		t.Error("empty footer should leave the query unchanged")
	}

	count := q.RowCount()
	if q.Text() != "SELECT 1" {
		t.Errorf("RowCount mutated the receiver: %q", q.Text())
	}
	want := "WITH result AS (\n\tSELECT 1\n) SELECT COUNT(1) AS row_count FROM result"
	if count.Text() != want {
		t.Errorf("RowCount() = %q, want %q", count.Text(), want)
	}
}

func TestQueryLinesCopy(t *testing.T) {
	q := New("SELECT 1\nFROM frame")
	lines := q.Lines()
	if len(lines) != 2 {
		t.Fatalf("Lines() = %v", lines)
	}
	lines[0] = "mutated"
	if q.Lines()[0] != "SELECT 1" {
		t.Error("Lines() exposed internal state")
	}
}

// openTestDB creates an in-memory database with a small frame relation.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE frame (
		msrun_id TEXT,
		frame_id INTEGER,
		rt DOUBLE,
		ms_level INTEGER,
		n_signals INTEGER,
		summed_intensity DOUBLE,
		max_intensity DOUBLE
	);`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	rows := []struct {
		run     string
		frame   int
		rt      float64
		msLevel int
	}{
		{"RUN1", 1, 10.0, 1},
		{"RUN1", 2, 20.0, 1},
		{"RUN1", 3, 30.0, 2},
		{"RUN2", 1, 10.0, 1},
	}
	for _, r := range rows {
		_, err := db.Exec(
			"INSERT INTO frame VALUES (?, ?, ?, ?, ?, ?, ?)",
			r.run, r.frame, r.rt, r.msLevel, 100, 1e6, 1e4,
		)
		if err != nil {
			t.Fatalf("failed to insert row: %v", err)
		}
	}
	return db
}

func TestRunnerExecutesBuiltQuery(t *testing.T) {
	db := openTestDB(t)
	rn := NewRunner(db)

	q, err := Chromatograms(ChromatogramParams{MSRunIDs: []string{"RUN1"}, MSLevel: 1})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	res, err := rn.Run(q, "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.NumRows() != 2 {
		t.Errorf("NumRows() = %d, want 2 (RUN1 MS1 frames only)", res.NumRows())
	}
	if len(res.Columns) != 7 || res.Columns[0] != "msrun_id" {
		t.Errorf("Columns = %v", res.Columns)
	}
}

func TestRunnerFooter(t *testing.T) {
	db := openTestDB(t)
	rn := NewRunner(db)

	q := New("SELECT msrun_id FROM frame ORDER BY msrun_id")
	res, err := rn.Run(q, "LIMIT 2")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.NumRows() != 2 {
		t.Errorf("NumRows() = %d, want 2", res.NumRows())
	}

	// The footer ran on a copy; the original still returns everything.
	res, err = rn.Run(q, "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.NumRows() != 4 {
		t.Errorf("NumRows() = %d, want 4", res.NumRows())
	}
}

func TestRowCountMatchesExecution(t *testing.T) {
	db := openTestDB(t)
	rn := NewRunner(db)

	q, err := Chromatograms(ChromatogramParams{MSRunIDs: []string{"RUN1", "RUN2"}, MSLevel: 1})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	full, err := rn.Run(q, "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	count, err := rn.Run(q.RowCount(), "")
	if err != nil {
		t.Fatalf("Run(RowCount) failed: %v", err)
	}

	if count.NumRows() != 1 || len(count.Columns) != 1 {
		t.Fatalf("row-count query shape: %d rows, columns %v", count.NumRows(), count.Columns)
	}
	if count.Columns[0] != "row_count" {
		t.Errorf("count column = %q, want row_count", count.Columns[0])
	}
	got, ok := count.Rows[0][0].(int64)
	if !ok {
		t.Fatalf("row_count type %T", count.Rows[0][0])
	}
	if int(got) != full.NumRows() {
		t.Errorf("row_count = %d, execution returned %d rows", got, full.NumRows())
	}
}

func TestRunnerExecutionError(t *testing.T) {
	db := openTestDB(t)
	rn := NewRunner(db)

	_, err := rn.Run(New("SELECT nope FROM missing_relation"), "")
	if err == nil {
		t.Fatal("malformed query should fail")
	}
	if !errors.Is(err, ErrExecution) {
		t.Errorf("error = %v, want ErrExecution", err)
	}
	if !strings.Contains(err.Error(), "missing_relation") {
		t.Errorf("error lacks engine context: %v", err)
	}
}
