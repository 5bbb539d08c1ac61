package query

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// ErrExecution is returned when the database engine rejects or fails to run
// a query. Execution failures are terminal: the same text fails identically
// on retry.
var ErrExecution = errors.New("query execution failed")

// Result is a tabular query result with named columns.
type Result struct {
	Columns []string
	Rows    [][]any
}

// NumRows returns the number of result rows.
func (r *Result) NumRows() int {
	return len(r.Rows)
}

// Runner executes queries against a shared database connection. The
// connection is process-wide state owned by the host (see registry.Open);
// callers share one engine session and get no per-call isolation.
type Runner struct {
	db *sql.DB
}

// NewRunner wraps an open database connection.
func NewRunner(db *sql.DB) *Runner {
	return &Runner{db: db}
}

// Run executes q, optionally appending footer as trailing query lines
// (e.g. "LIMIT 420") on a copy. Engine errors are logged and wrapped as
// ErrExecution; a failed query yields no result, never a partial one.
func (rn *Runner) Run(q Query, footer string) (*Result, error) {
	q = q.WithFooter(footer)

	rows, err := rn.db.Query(q.Text())
	if err != nil {
		log.Printf("query failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrExecution, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecution, err)
	}

	res := &Result{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			log.Printf("scan failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrExecution, err)
		}
		res.Rows = append(res.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		log.Printf("query failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrExecution, err)
	}

	log.Printf("query returned %d rows", len(res.Rows))
	return res, nil
}
