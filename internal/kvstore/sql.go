package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intdb "recruitadmin/internal/db"
)

const DefaultTable = "session_kv"

// SQLStore keeps entries in a two-column table on MySQL, SQLite or Postgres.
type SQLStore struct {
	DB      *sql.DB
	Dialect intdb.Dialect
	Table   string
	Now     func() time.Time
}

func (s SQLStore) table() string {
	if s.Table != "" {
		return s.Table
	}
	return DefaultTable
}

func (s SQLStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Migrate creates the table when it does not exist yet.
func (s SQLStore) Migrate(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("kvstore: nil db")
	}
	if intdb.HasTable(ctx, s.DB, s.Dialect, s.table()) {
		return nil
	}
	if _, err := s.DB.ExecContext(ctx, s.Dialect.CreateTable(s.table())); err != nil {
		return fmt.Errorf("create %s: %w", s.table(), err)
	}
	return nil
}

func (s SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	q := s.Dialect.Rebind("SELECT v FROM " + s.table() + " WHERE k = ?")
	var v string
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

func (s SQLStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.DB.ExecContext(ctx, s.Dialect.Upsert(s.table()), key, value, s.now().Unix()); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s SQLStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", ")
	q := s.Dialect.Rebind("DELETE FROM " + s.table() + " WHERE k IN (" + marks + ")")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	if _, err := s.DB.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}
