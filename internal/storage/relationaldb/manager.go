package relationaldb

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goAuctiond/internal/core/engine"
)

// Manager owns a journal Database: it opens and closes it, retries transient
// failures and records engine events.
type Manager struct {
	db     Database
	config *Config
	log    *logrus.Entry

	mu        sync.RWMutex
	connected bool
	lastError error
}

var _ engine.EventSink = (*Manager)(nil)

// ManagerOption defines functional options for Manager
type ManagerOption func(*Manager)

// WithLogger sets the logger for the manager
func WithLogger(log *logrus.Entry) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager creates a new journal manager
func NewManager(db Database, config *Config, options ...ManagerOption) *Manager {
	m := &Manager{
		db:     db,
		config: config,
		log:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, option := range options {
		option(m)
	}
	m.log = m.log.WithFields(logrus.Fields{"component": "journal", "driver": config.Driver})
	return m
}

// Open opens the database connection
func (m *Manager) Open(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return nil
	}

	err := m.executeWithRetry(ctx, func() error { return m.db.Open(ctx) })
	if err != nil {
		m.lastError = err
		m.log.WithError(err).Error("Failed to open journal")
		return WrapError(err, "open_journal")
	}

	m.connected = true
	m.lastError = nil
	m.log.Info("Journal opened")
	return nil
}

// Close closes the database connection
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}
	if err := m.db.Close(ctx); err != nil {
		m.log.WithError(err).Error("Failed to close journal")
		return WrapError(err, "close_journal")
	}

	m.connected = false
	m.lastError = nil
	m.log.Debug("Journal closed")
	return nil
}

// IsConnected returns whether the database is connected
func (m *Manager) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// LastError returns the last error encountered
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastError
}

// HealthCheck pings the database.
func (m *Manager) HealthCheck(ctx context.Context) error {
	if !m.IsConnected() {
		return ErrDatabaseClosed
	}
	if err := m.db.Ping(ctx); err != nil {
		m.setLastError(err)
		m.log.WithError(err).Warn("Journal health check failed")
		return WrapError(err, "health_check")
	}
	return nil
}

func (m *Manager) setLastError(err error) {
	m.mu.Lock()
	m.lastError = err
	m.mu.Unlock()
}

// ExecuteWithRetry executes a function, retrying retryable failures with a
// linear backoff.
func (m *Manager) ExecuteWithRetry(ctx context.Context, operation func() error) error {
	return m.executeWithRetry(ctx, operation)
}

func (m *Manager) executeWithRetry(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 0; attempt <= m.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * m.config.RetryDelay
			if delay > m.config.RetryMaxDelay {
				delay = m.config.RetryMaxDelay
			}

			m.log.WithFields(logrus.Fields{"attempt": attempt, "delay": delay}).WithError(lastErr).Debug("Retrying operation")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := operation()
		if err == nil {
			if attempt > 0 {
				m.log.WithField("attempt", attempt).Info("Operation succeeded after retry")
			}
			return nil
		}

		lastErr = err
		if !IsRetryable(err) {
			break
		}
	}

	return WrapError(lastErr, "execute_with_retry")
}

// Publish journals the events of one committed request under a fresh
// request id.
func (m *Manager) Publish(ctx context.Context, events []engine.Event) error {
	if !m.IsConnected() {
		return ErrDatabaseClosed
	}

	requestID := uuid.NewString()
	entries := make([]Entry, 0, len(events))
	for _, ev := range events {
		entries = append(entries, entryFromEvent(requestID, ev))
	}

	err := m.executeWithRetry(ctx, func() error { return m.db.Append(ctx, entries) })
	if err != nil {
		m.setLastError(err)
		return err
	}
	m.log.WithFields(logrus.Fields{"request_id": requestID, "events": len(entries)}).Debug("Events journaled")
	return nil
}

// Entries returns journaled entries matching f.
func (m *Manager) Entries(ctx context.Context, f Filter) ([]Entry, error) {
	if !m.IsConnected() {
		return nil, ErrDatabaseClosed
	}
	var entries []Entry
	err := m.executeWithRetry(ctx, func() error {
		var err error
		entries, err = m.db.Entries(ctx, f)
		return err
	})
	return entries, err
}

// Count returns the number of journaled entries.
func (m *Manager) Count(ctx context.Context) (int64, error) {
	if !m.IsConnected() {
		return 0, ErrDatabaseClosed
	}
	return m.db.Count(ctx)
}

// GetConfig returns the configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

func entryFromEvent(requestID string, ev engine.Event) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Type:      ev.Type,
		ItemID:    ev.ItemID,
		Sender:    ev.Sender,
		Time:      ev.Time.UTC(),
	}
	if len(ev.Attributes) > 0 {
		e.Attributes = make([]Attribute, len(ev.Attributes))
		for i, a := range ev.Attributes {
			e.Attributes[i] = Attribute{Key: a.Key, Value: a.Value}
		}
	}
	return e
}
