// Package sqlite is the embedded journal driver, backed by the pure Go
// modernc.org/sqlite.
package sqlite

import (
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

var dialect = relationaldb.Dialect{
	DriverName:  "sqlite",
	Placeholder: func(int) string { return "?" },
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			request_id TEXT NOT NULL,
			type TEXT NOT NULL,
			item_id TEXT NOT NULL DEFAULT '',
			sender TEXT NOT NULL,
			time_ns INTEGER NOT NULL,
			attributes TEXT NOT NULL DEFAULT 'null'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_item ON events(item_id, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(type, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_events_sender ON events(sender, seq)`,
	},
}

// NewDatabase creates a SQLite journal. config.Driver must be sqlite.
func NewDatabase(config *relationaldb.Config) (*relationaldb.SQLDatabase, error) {
	return relationaldb.NewSQLDatabase(config, dialect)
}
