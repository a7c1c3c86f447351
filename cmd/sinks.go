package cmd

import (
	"context"
	"fmt"

	"github.com/jmehdipour/custgen/internal/config"
	"github.com/jmehdipour/custgen/internal/db"
	"github.com/jmehdipour/custgen/internal/repository"
)

// sqlExecer runs DDL on whichever connection a sink uses.
type sqlExecer func(ctx context.Context, stmt string) error

// openSink connects to the named OLTP sink and returns its repository, a
// DDL runner for migrate and a close func.
func openSink(ctx context.Context, c config.Config, sink string) (repository.CustomersRepository, sqlExecer, func(), error) {
	switch sink {
	case repository.DialectPostgres:
		pool, err := db.NewPostgresPool(ctx, c.Postgres)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		repo, err := repository.NewPGCustomersRepository(pool, c.Sink.Table, c.Sink.BatchSize)
		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		exec := func(ctx context.Context, stmt string) error {
			_, err := pool.Exec(ctx, stmt)
			return err
		}
		return repo, exec, pool.Close, nil

	case repository.DialectMySQL, repository.DialectClickHouse:
		open := db.NewMySQLConnection
		dbCfg := c.MySQL
		if sink == repository.DialectClickHouse {
			open, dbCfg = db.NewClickHouseConnection, c.ClickHouse
		}
		dbx, err := open(dbCfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%s connect: %w", sink, err)
		}
		repo, err := repository.NewCustomersRepository(dbx, sink, c.Sink.Table, c.Sink.BatchSize)
		if err != nil {
			_ = dbx.Close()
			return nil, nil, nil, err
		}
		exec := func(ctx context.Context, stmt string) error {
			_, err := dbx.ExecContext(ctx, stmt)
			return err
		}
		return repo, exec, func() { _ = dbx.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", repository.ErrUnknownDialect, sink)
	}
}
