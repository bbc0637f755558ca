package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect carries the SQL differences between the supported session backends.
type Dialect struct {
	Name   string
	Driver string
	// numbered placeholders ($1, $2) instead of ?
	numbered bool
	upsert   string
	tableSQL string
}

var (
	MySQL = Dialect{
		Name:     "mysql",
		Driver:   "mysql",
		upsert:   "INSERT INTO %s (k, v, updated_at) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v), updated_at = VALUES(updated_at)",
		tableSQL: "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ? LIMIT 1",
	}
	SQLite = Dialect{
		Name:     "sqlite",
		Driver:   "sqlite",
		upsert:   "INSERT INTO %s (k, v, updated_at) VALUES (?, ?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at",
		tableSQL: "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ? LIMIT 1",
	}
	Postgres = Dialect{
		Name:     "postgres",
		Driver:   "pgx",
		numbered: true,
		upsert:   "INSERT INTO %s (k, v, updated_at) VALUES (?, ?, ?) ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, updated_at = EXCLUDED.updated_at",
		tableSQL: "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ? LIMIT 1",
	}
)

// DialectFor resolves a configured driver name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported sql dialect %q", name)
}

// Rebind rewrites ? placeholders for dialects that number them.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Upsert returns the insert-or-replace statement for a key/value table.
func (d Dialect) Upsert(table string) string {
	return d.Rebind(fmt.Sprintf(d.upsert, table))
}

// CreateTable returns the DDL of a key/value table.
func (d Dialect) CreateTable(table string) string {
	value := "TEXT"
	if d.Name == "mysql" {
		value = "MEDIUMTEXT"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (k VARCHAR(255) NOT NULL PRIMARY KEY, v %s NOT NULL, updated_at BIGINT NOT NULL)", table, value)
}

// HasTable reports whether table exists. Errors count as absent so callers fall back to creating it.
func HasTable(ctx context.Context, q QueryRower, d Dialect, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, d.Rebind(d.tableSQL), table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}
