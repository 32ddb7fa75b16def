package relationaldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Dialect captures what differs between SQL drivers.
type Dialect struct {
	// DriverName is the database/sql driver to open.
	DriverName string
	// Schema creates the journal tables.
	Schema []string
	// Placeholder returns the bind parameter for the nth (1-based) argument.
	Placeholder func(n int) string
}

// SQLDatabase implements Database over database/sql.
type SQLDatabase struct {
	db      *sql.DB
	config  *Config
	dialect Dialect
}

// NewSQLDatabase validates config and returns an unopened database.
func NewSQLDatabase(config *Config, dialect Dialect) (*SQLDatabase, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigurationError("new_database", "invalid configuration", err)
	}
	return &SQLDatabase{config: config, dialect: dialect}, nil
}

// Open opens the database connection and initializes the schema
func (d *SQLDatabase) Open(ctx context.Context) error {
	connStr, err := d.config.BuildConnectionString()
	if err != nil {
		return NewConfigurationError("open", "failed to build connection string", err)
	}

	sqlDB, err := sql.Open(d.dialect.DriverName, connStr)
	if err != nil {
		return NewConnectionError("open", "failed to open database connection", err)
	}

	sqlDB.SetMaxOpenConns(d.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(d.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(d.config.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, d.config.DefaultTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return NewConnectionError("open", "failed to ping database", err)
	}

	for _, query := range d.dialect.Schema {
		if _, err := sqlDB.ExecContext(ctx, query); err != nil {
			sqlDB.Close()
			return NewSchemaError("open", "failed to initialize schema", err)
		}
	}

	d.db = sqlDB
	return nil
}

// Close closes the database connection
func (d *SQLDatabase) Close(ctx context.Context) error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	if err != nil {
		return NewConnectionError("close", "failed to close database connection", err)
	}
	return nil
}

// Ping tests the database connection
func (d *SQLDatabase) Ping(ctx context.Context) error {
	if d.db == nil {
		return ErrDatabaseClosed
	}
	ctx, cancel := context.WithTimeout(ctx, d.config.DefaultTimeout)
	defer cancel()

	if err := d.db.PingContext(ctx); err != nil {
		return NewConnectionError("ping", "database ping failed", err)
	}
	return nil
}

func (d *SQLDatabase) placeholders(from, n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = d.dialect.Placeholder(from + i)
	}
	return strings.Join(ps, ", ")
}

// Append stores entries in one transaction.
func (d *SQLDatabase) Append(ctx context.Context, entries []Entry) error {
	if d.db == nil {
		return ErrDatabaseClosed
	}
	if len(entries) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, d.config.DefaultTimeout)
	defer cancel()

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return NewTransactionError("append", "failed to begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO events (id, request_id, type, item_id, sender, time_ns, attributes) VALUES (%s)`,
		d.placeholders(1, 7)))
	if err != nil {
		return NewQueryError("append", "failed to prepare insert", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		attrs, err := json.Marshal(e.Attributes)
		if err != nil {
			return NewDataError("append", "failed to encode attributes", err)
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.RequestID, e.Type, e.ItemID, e.Sender, e.Time.UnixNano(), string(attrs)); err != nil {
			return NewQueryError("append", fmt.Sprintf("failed to insert event %s", e.ID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewTransactionError("append", "failed to commit", err)
	}
	return nil
}

// Entries returns matching entries in append order.
func (d *SQLDatabase) Entries(ctx context.Context, f Filter) ([]Entry, error) {
	if d.db == nil {
		return nil, ErrDatabaseClosed
	}

	limit := f.Limit
	switch {
	case limit < 0:
		return nil, ErrInvalidLimit
	case limit == 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	var (
		where []string
		args  []interface{}
	)
	add := func(column string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = %s", column, d.dialect.Placeholder(len(args))))
	}
	if f.ItemID != "" {
		add("item_id", f.ItemID)
	}
	if f.Type != "" {
		add("type", f.Type)
	}
	if f.Sender != "" {
		add("sender", f.Sender)
	}
	args = append(args, f.AfterSeq)
	where = append(where, fmt.Sprintf("seq > %s", d.dialect.Placeholder(len(args))))
	args = append(args, limit)

	query := fmt.Sprintf(
		`SELECT seq, id, request_id, type, item_id, sender, time_ns, attributes FROM events WHERE %s ORDER BY seq LIMIT %s`,
		strings.Join(where, " AND "), d.dialect.Placeholder(len(args)))

	ctx, cancel := context.WithTimeout(ctx, d.config.DefaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewQueryError("entries", "failed to query events", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			timeNs int64
			attrs  string
		)
		if err := rows.Scan(&e.Seq, &e.ID, &e.RequestID, &e.Type, &e.ItemID, &e.Sender, &timeNs, &attrs); err != nil {
			return nil, NewDataError("entries", "failed to scan event", err)
		}
		e.Time = time.Unix(0, timeNs).UTC()
		if err := json.Unmarshal([]byte(attrs), &e.Attributes); err != nil {
			return nil, NewDataError("entries", fmt.Sprintf("event %s: %v", e.ID, ErrInvalidDataFormat), err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, NewQueryError("entries", "failed to iterate events", err)
	}
	return entries, nil
}

// Count returns the number of journaled entries.
func (d *SQLDatabase) Count(ctx context.Context) (int64, error) {
	if d.db == nil {
		return 0, ErrDatabaseClosed
	}
	var n int64
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, NewQueryError("count", "failed to count events", err)
	}
	return n, nil
}
