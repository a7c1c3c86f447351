package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmehdipour/custgen/internal/model"
	"github.com/jmoiron/sqlx"
)

const (
	DialectMySQL      = "mysql"
	DialectClickHouse = "clickhouse"
	DialectPostgres   = "postgres"
)

var (
	ErrUnknownDialect = errors.New("unknown sink dialect")
	ErrInvalidTable   = errors.New("invalid table name")
)

var tableRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// CustomersRepository loads generated customers into an OLTP table.
type CustomersRepository interface {
	InsertBatch(ctx context.Context, records []model.Customer) (int64, error)
	Truncate(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// CustomersRepositoryImpl writes through database/sql (MySQL, ClickHouse).
type CustomersRepositoryImpl struct {
	db        *sqlx.DB
	dialect   string
	table     string
	batchSize int
}

func NewCustomersRepository(db *sqlx.DB, dialect, table string, batchSize int) (*CustomersRepositoryImpl, error) {
	if dialect != DialectMySQL && dialect != DialectClickHouse {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}
	if !tableRe.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &CustomersRepositoryImpl{db: db, dialect: dialect, table: table, batchSize: batchSize}, nil
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

func (r *CustomersRepositoryImpl) insertQuery() string {
	cols := strings.Join(model.Columns, ", ")
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(model.Columns)), ", ")
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", r.table, cols, marks)
	if r.dialect == DialectMySQL {
		// idempotent re-seed keyed by customer_id (PRIMARY KEY)
		sets := make([]string, 0, len(model.Columns)-1)
		for _, c := range model.Columns[1:] {
			sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", c, c))
		}
		q += " ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
	}
	return q
}

func (r *CustomersRepositoryImpl) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	t, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = t.Rollback() }()
	if err := fn(t); err != nil {
		return err
	}
	return t.Commit()
}

// InsertBatch writes records in chunks of batchSize, one transaction per chunk.
// It returns the number of rows sent before the first failure.
func (r *CustomersRepositoryImpl) InsertBatch(ctx context.Context, records []model.Customer) (int64, error) {
	q := r.insertQuery()
	var written int64
	for from := 0; from < len(records); from += r.batchSize {
		chunk := records[from:min(from+r.batchSize, len(records))]
		err := r.withTx(ctx, func(tx *sqlx.Tx) error {
			stmt, err := tx.PreparexContext(ctx, q)
			if err != nil {
				return fmt.Errorf("prepare insert: %w", err)
			}
			defer stmt.Close()
			for _, c := range chunk {
				if _, err := stmt.ExecContext(ctx, c.Values()...); err != nil {
					return fmt.Errorf("insert customer %d: %w", c.CustomerID, err)
				}
			}
			return nil
		})
		if err != nil {
			return written, err
		}
		written += int64(len(chunk))
	}
	return written, nil
}

func (r *CustomersRepositoryImpl) Truncate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "TRUNCATE TABLE "+r.table)
	return err
}

func (r *CustomersRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+r.table); err != nil {
		return 0, err
	}
	return n, nil
}
