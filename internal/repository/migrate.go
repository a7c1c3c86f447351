package repository

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migration returns the CREATE TABLE statement for dialect and table.
func Migration(dialect, table string) (string, error) {
	if !tableRe.MatchString(table) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	switch dialect {
	case DialectMySQL, DialectPostgres, DialectClickHouse:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}
	b, err := migrations.ReadFile("migrations/" + dialect + ".sql")
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(b), "{{table}}", table), nil
}
