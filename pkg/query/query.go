// Package query builds and executes parameterized analytical queries
// against the columnar data store.
//
// Named SQL templates (embedded, one per query type) carry {name}
// substitution points. Builder functions validate caller-supplied filter
// parameters before any substitution; since substitution is textual with no
// escaping, that validation is the injection-safety boundary. The resulting
// Query is an immutable value that can derive a row-count variant of itself
// and run against any database/sql connection.
package query

import "strings"

// Query is an immutable query text plus its line decomposition.
type Query struct {
	text  string
	lines []string
}

// New wraps raw query text as a Query.
func New(text string) Query {
	return Query{text: text, lines: strings.Split(text, "\n")}
}

// Text returns the full query text.
func (q Query) Text() string {
	return q.text
}

func (q Query) String() string {
	return q.text
}

// Lines returns a copy of the query's lines.
func (q Query) Lines() []string {
	out := make([]string, len(q.lines))
	copy(out, q.lines)
	return out
}

// WithFooter returns a new query with footer appended as trailing lines
// (e.g. "LIMIT 420"). The receiver is unchanged; an empty footer returns
// the receiver as is.
func (q Query) WithFooter(footer string) Query {
	if footer == "" {
		return q
	}
	return New(q.text + "\n" + footer)
}

// RowCount returns a query that yields a single row with one column,
// row_count: the number of rows the receiver would return. The receiver's
// text is wrapped as a named sub-relation; its parameters are not
// re-validated or re-built.
func (q Query) RowCount() Query {
	var b strings.Builder
	b.WriteString("WITH result AS (\n")
	for _, line := range q.lines {
		b.WriteString("\t")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(") SELECT COUNT(1) AS row_count FROM result")
	return New(b.String())
}
