package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmehdipour/custgen/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customers(n int) []model.Customer {
	out := make([]model.Customer, n)
	for i := range out {
		out[i] = model.Customer{
			CustomerID:  301000000001 + int64(i),
			FirstName:   "Aarav",
			LastName:    "Sharma",
			DateOfBirth: time.Date(1990, time.April, 2, 0, 0, 0, 0, time.UTC),
			Gender:      model.GenderMale,
			PANNumber:   "ABCDE0001F",
			Status:      model.StatusActive,
		}
	}
	return out
}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

func TestNewCustomersRepositoryValidates(t *testing.T) {
	db, _ := newMock(t)

	_, err := NewCustomersRepository(db, "oracle", "customer", 10)
	assert.ErrorIs(t, err, ErrUnknownDialect)

	_, err = NewCustomersRepository(db, DialectMySQL, "customer; DROP TABLE x", 10)
	assert.ErrorIs(t, err, ErrInvalidTable)

	r, err := NewCustomersRepository(db, DialectClickHouse, "bank.customer", 0)
	require.NoError(t, err)
	assert.Equal(t, 1000, r.batchSize)
}

func TestInsertQuery(t *testing.T) {
	db, _ := newMock(t)

	ch, _ := NewCustomersRepository(db, DialectClickHouse, "customer", 10)
	assert.Equal(t,
		"INSERT INTO customer (customer_id, first_name, middle_name, last_name, date_of_birth, gender, pan_number, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		ch.insertQuery())

	my, _ := NewCustomersRepository(db, DialectMySQL, "customer", 10)
	q := my.insertQuery()
	assert.Contains(t, q, "ON DUPLICATE KEY UPDATE first_name = VALUES(first_name)")
	assert.NotContains(t, q, "customer_id = VALUES(customer_id)")
}

func TestInsertBatchChunks(t *testing.T) {
	db, mock := newMock(t)
	r, err := NewCustomersRepository(db, DialectMySQL, "customer", 2)
	require.NoError(t, err)

	records := customers(3)
	q := regexp.QuoteMeta(r.insertQuery())

	// chunk 1: two rows
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(q)
	for _, c := range records[:2] {
		prep.ExpectExec().
			WithArgs(c.CustomerID, "Aarav", "", "Sharma", c.DateOfBirth, "MALE", "ABCDE0001F", "ACTIVE").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	// chunk 2: one row
	mock.ExpectBegin()
	mock.ExpectPrepare(q).ExpectExec().
		WithArgs(records[2].CustomerID, "Aarav", "", "Sharma", records[2].DateOfBirth, "MALE", "ABCDE0001F", "ACTIVE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := r.InsertBatch(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBatchRollsBackFailedChunk(t *testing.T) {
	db, mock := newMock(t)
	r, err := NewCustomersRepository(db, DialectClickHouse, "customer", 1)
	require.NoError(t, err)

	q := regexp.QuoteMeta(r.insertQuery())
	mock.ExpectBegin()
	mock.ExpectPrepare(q).ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectPrepare(q).ExpectExec().WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	n, err := r.InsertBatch(context.Background(), customers(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert customer 301000000002")
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBatchEmpty(t *testing.T) {
	db, mock := newMock(t)
	r, _ := NewCustomersRepository(db, DialectMySQL, "customer", 10)

	n, err := r.InsertBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTruncateAndCount(t *testing.T) {
	db, mock := newMock(t)
	r, _ := NewCustomersRepository(db, DialectMySQL, "customer", 10)

	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE TABLE customer")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM customer")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	require.NoError(t, r.Truncate(context.Background()))
	n, err := r.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigration(t *testing.T) {
	for _, d := range []string{DialectMySQL, DialectPostgres, DialectClickHouse} {
		ddl, err := Migration(d, "bank.customer")
		require.NoError(t, err, d)
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS bank.customer")
		for _, c := range model.Columns {
			assert.Contains(t, ddl, c, d)
		}
	}

	_, err := Migration("sqlite", "customer")
	assert.ErrorIs(t, err, ErrUnknownDialect)
	_, err = Migration(DialectMySQL, "1customer")
	assert.ErrorIs(t, err, ErrInvalidTable)
}
