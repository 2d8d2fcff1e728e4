// Package orders persists fulfilled checkout events so webhook replays are
// idempotent and purchases are auditable.
package orders

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/informer/internal/errors"
)

// ErrDuplicateEvent is returned when an event ID has already been recorded.
var ErrDuplicateEvent = stdErrors.New("event already processed")

// Order is one fulfilled purchase.
type Order struct {
	ID        string
	EventID   string
	Email     string
	PriceID   string
	State     string
	CreatedAt time.Time
}

// Store implements the order ledger using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore opens (and initializes) the order database.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.StorageError("open order database", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.StorageError("initialize order schema", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		price_id TEXT NOT NULL,
		state TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email);
	CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordOrder inserts a new order keyed by the webhook event ID. A replayed
// event returns ErrDuplicateEvent and leaves the ledger unchanged.
func (s *Store) RecordOrder(ctx context.Context, eventID, email, priceID, state string) (*Order, error) {
	if eventID == "" {
		return nil, errors.ValidationFailed("event_id", "must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	order := &Order{
		ID:        uuid.NewString(),
		EventID:   eventID,
		Email:     email,
		PriceID:   priceID,
		State:     state,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO orders (id, event_id, email, price_id, state, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		order.ID, order.EventID, order.Email, order.PriceID, order.State, order.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEvent
		}
		return nil, errors.StorageError("insert order", err)
	}
	return order, nil
}

// ByEventID fetches the order recorded for a webhook event, if any.
func (s *Store) ByEventID(ctx context.Context, eventID string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, event_id, email, price_id, state, created_at FROM orders WHERE event_id = ?",
		eventID,
	)
	return scanOrder(row)
}

// Recent lists the most recent orders, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, event_id, email, price_id, state, created_at FROM orders ORDER BY created_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, errors.StorageError("query orders", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		var created int64
		if err := rows.Scan(&o.ID, &o.EventID, &o.Email, &o.PriceID, &o.State, &created); err != nil {
			return nil, errors.StorageError("scan order", err)
		}
		o.CreatedAt = time.Unix(created, 0).UTC()
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StorageError("iterate orders", err)
	}
	return orders, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func scanOrder(row *sql.Row) (*Order, error) {
	var o Order
	var created int64
	err := row.Scan(&o.ID, &o.EventID, &o.Email, &o.PriceID, &o.State, &created)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.StorageError("scan order", err)
	}
	o.CreatedAt = time.Unix(created, 0).UTC()
	return &o, nil
}

// isUniqueViolation detects the driver's constraint error without depending
// on its internal error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(fmt.Sprint(err), "UNIQUE constraint failed")
}
