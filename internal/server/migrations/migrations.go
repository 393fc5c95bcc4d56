// Package migrations embeds the goose SQL migrations for every supported
// database dialect.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Dir returns the migration directory inside Migrations for dialect
// ("postgres" or "sqlite").
func Dir(dialect string) (string, error) {
	switch dialect {
	case "postgres", "sqlite":
		return dialect, nil
	default:
		return "", fmt.Errorf("no migrations for dialect %q", dialect)
	}
}

// Files lists the migration file names for dialect in apply order.
func Files(dialect string) ([]string, error) {
	dir, err := Dir(dialect)
	if err != nil {
		return nil, err
	}
	return fs.Glob(Migrations, dir+"/*.sql")
}
