package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmehdipour/custgen/internal/model"
)

// PGConn is the subset of *pgxpool.Pool the Postgres repository uses.
type PGConn interface {
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGCustomersRepository bulk-loads customers with COPY.
type PGCustomersRepository struct {
	conn      PGConn
	table     pgx.Identifier
	batchSize int
}

func NewPGCustomersRepository(conn PGConn, table string, batchSize int) (*PGCustomersRepository, error) {
	if !tableRe.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &PGCustomersRepository{
		conn:      conn,
		table:     pgx.Identifier(strings.Split(table, ".")),
		batchSize: batchSize,
	}, nil
}

var _ CustomersRepository = (*PGCustomersRepository)(nil)

func (r *PGCustomersRepository) InsertBatch(ctx context.Context, records []model.Customer) (int64, error) {
	var written int64
	for from := 0; from < len(records); from += r.batchSize {
		chunk := records[from:min(from+r.batchSize, len(records))]
		n, err := r.conn.CopyFrom(ctx, r.table, model.Columns, pgx.CopyFromSlice(len(chunk), func(i int) ([]any, error) {
			return chunk[i].Values(), nil
		}))
		written += n
		if err != nil {
			return written, fmt.Errorf("copy customers: %w", err)
		}
	}
	return written, nil
}

func (r *PGCustomersRepository) Truncate(ctx context.Context) error {
	_, err := r.conn.Exec(ctx, "TRUNCATE TABLE "+r.table.Sanitize())
	return err
}

func (r *PGCustomersRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, "SELECT COUNT(*) FROM "+r.table.Sanitize()).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
