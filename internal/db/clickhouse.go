package db

import (
	"time"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jmehdipour/custgen/internal/config"
	"github.com/jmoiron/sqlx"
)

// NewClickHouseConnection opens ClickHouse through the database/sql driver,
// e.g. clickhouse://default:@localhost:9000/bank?dial_timeout=5s&compress=true
func NewClickHouseConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	return openSQLX("clickhouse", cfg, 3*time.Second)
}
