// Package registry discovers partitioned parquet datasets on disk and
// registers them as queryable DuckDB relations.
//
// The data root holds one subdirectory per logical table; each subdirectory
// contains Hive-partitioned parquet files. Registration happens once, when
// the hosting application constructs the Registry; the resulting connection
// is shared process-wide.
package registry

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// relation names must be plain SQL identifiers; anything else on disk is
// skipped, not quoted.
var relationPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Registry owns an in-process DuckDB connection with one view per
// discovered dataset.
type Registry struct {
	db        *sql.DB
	relations []string
}

// Open connects to an in-process DuckDB instance and registers every
// dataset found under root.
func Open(root string) (*Registry, error) {
	names, err := ScanRelations(root)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	r := &Registry{db: db}
	for _, name := range names {
		if err := r.register(root, name); err != nil {
			db.Close()
			return nil, err
		}
		r.relations = append(r.relations, name)
	}
	return r, nil
}

// ScanRelations enumerates the dataset subdirectories of root that qualify
// as relation names, sorted. Entries that are not directories or whose
// names are not plain SQL identifiers are skipped with a log message.
func ScanRelations(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read data root: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if !relationPattern.MatchString(e.Name()) {
			log.Printf("skipping dataset %q: not a valid relation name", e.Name())
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// register creates a view over the dataset's parquet files.
func (r *Registry) register(root, name string) error {
	path := filepath.Join(root, name, "**", "*.parquet")
	if strings.ContainsRune(path, '\'') {
		return fmt.Errorf("dataset path contains a quote: %s", path)
	}

	stmt := fmt.Sprintf(
		"CREATE VIEW %s AS SELECT * FROM read_parquet('%s', hive_partitioning = 1)",
		name, filepath.ToSlash(path),
	)
	if _, err := r.db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to register %s: %w", name, err)
	}
	return nil
}

// DB exposes the shared connection for query execution.
func (r *Registry) DB() *sql.DB {
	return r.db
}

// Relations returns the registered relation names, sorted.
func (r *Registry) Relations() []string {
	out := make([]string, len(r.relations))
	copy(out, r.relations)
	return out
}

// Close closes the underlying connection.
func (r *Registry) Close() error {
	return r.db.Close()
}
