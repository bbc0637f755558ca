package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	intdb "recruitadmin/internal/db"
	"recruitadmin/internal/kvstore"
	"recruitadmin/internal/session"
	"recruitadmin/internal/utils"
)

// ConnectDB opens and pings a pool for one of the SQL session backends.
func ConnectDB(ctx context.Context, d intdb.Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if d.Name == intdb.SQLite.Name {
		// one writer at a time
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}
	return db, nil
}

// OpenSessionStore builds the durable store behind browser sessions.
// The returned close func releases the database, if any.
func OpenSessionStore(ctx context.Context, env Env) (kvstore.Store, func() error, error) {
	noop := func() error { return nil }
	var (
		store   kvstore.Store
		closeFn = noop
	)
	switch env.SessionDriver {
	case "", "memory":
		store = kvstore.NewMemory()
	case "file":
		fs, err := kvstore.OpenFile(env.SessionFile)
		if err != nil {
			return nil, nil, err
		}
		store = fs
	default:
		d, err := intdb.DialectFor(env.SessionDriver)
		if err != nil {
			return nil, nil, err
		}
		db, err := ConnectDB(ctx, d, env.SessionDSN)
		if err != nil {
			return nil, nil, err
		}
		sqlStore := kvstore.SQLStore{DB: db, Dialect: d}
		if err := sqlStore.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		store = sqlStore
		closeFn = db.Close
	}
	if env.SealKey != "" {
		store = kvstore.NewSealed(store, env.SealKey, session.KeyToken)
	}
	utils.LogEvent("", "config", "session_store", "driver="+env.SessionDriver)
	return store, closeFn, nil
}
