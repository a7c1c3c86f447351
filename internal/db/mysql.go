package db

import (
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmehdipour/custgen/internal/config"
	"github.com/jmoiron/sqlx"
)

// NewMySQLConnection opens a *sqlx.DB with sensible pool/timeouts.
// The DSN needs parseTime=true so DATE columns scan into time.Time.
func NewMySQLConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	return openSQLX("mysql", cfg, 5*time.Second)
}
