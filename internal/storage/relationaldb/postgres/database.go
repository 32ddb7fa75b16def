// Package postgres is the PostgreSQL journal driver.
package postgres

import (
	"strconv"

	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
	_ "github.com/lib/pq" // PostgreSQL driver
)

var dialect = relationaldb.Dialect{
	DriverName:  "postgres",
	Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS events (
			seq BIGSERIAL PRIMARY KEY,
			id UUID NOT NULL UNIQUE,
			request_id UUID NOT NULL,
			type VARCHAR(64) NOT NULL,
			item_id TEXT NOT NULL DEFAULT '',
			sender TEXT NOT NULL,
			time_ns BIGINT NOT NULL,
			attributes JSONB NOT NULL DEFAULT 'null',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_item ON events(item_id, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(type, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_events_sender ON events(sender, seq)`,
	},
}

// NewDatabase creates a PostgreSQL journal. config.Driver must be postgres.
func NewDatabase(config *relationaldb.Config) (*relationaldb.SQLDatabase, error) {
	return relationaldb.NewSQLDatabase(config, dialect)
}
