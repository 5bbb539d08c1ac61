package query

import (
	"embed"
	"errors"
	"fmt"
	"strings"
)

// Templates are stored as .sql files, organized by DB engine dialect.
//
//go:embed templates/duckdb/*.sql
var templateFS embed.FS

// ErrMissingTemplate is returned when a named query template does not
// exist.
var ErrMissingTemplate = errors.New("missing query template")

// Template returns the named SQL template text, e.g.
// Template("get_chromatograms").
func Template(name string) (string, error) {
	b, err := templateFS.ReadFile("templates/duckdb/" + name + ".sql")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrMissingTemplate, name)
	}
	return strings.TrimRight(string(b), "\n"), nil
}
