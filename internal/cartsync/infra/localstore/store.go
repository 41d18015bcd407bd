// Package localstore keeps the device-local cart and session in a small
// SQLite key-value file.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/logger"
	_ "modernc.org/sqlite"
)

const (
	keyCart    = "cart"
	keySession = "session"
)

type Store struct {
	db  *sql.DB
	log *slog.Logger
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open creates the file at path if needed.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer; sqlite serialises anyway
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	s := &Store{db: db, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *Store) put(ctx context.Context, key string, v []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, v)
	return err
}

func (s *Store) delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// LoadCart returns a fresh anonymous cart when none was saved. A saved
// cart that no longer decodes is dropped the same way, so a damaged file
// never locks the user out of their cart.
func (s *Store) LoadCart(ctx context.Context) (domain.Cart, error) {
	raw, ok, err := s.get(ctx, keyCart)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	if !ok {
		return domain.NewCart(""), nil
	}
	var c domain.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		s.log.Warn("discarding unreadable local cart", slog.Any("err", err))
		if err := s.ResetCart(ctx); err != nil {
			return domain.Cart{}, err
		}
		return domain.NewCart(""), nil
	}
	if c.Lines == nil {
		c.Lines = []domain.Line{}
	}
	return c, nil
}

func (s *Store) SaveCart(ctx context.Context, c domain.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.put(ctx, keyCart, raw); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// ResetCart forgets the saved cart.
func (s *Store) ResetCart(ctx context.Context) error {
	if err := s.delete(ctx, keyCart); err != nil {
		return fmt.Errorf("reset cart: %w", err)
	}
	return nil
}

// Session returns the saved session cookie value, "" when logged out.
func (s *Store) Session(ctx context.Context) (string, error) {
	raw, _, err := s.get(ctx, keySession)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	return string(raw), nil
}

func (s *Store) SaveSession(ctx context.Context, value string) error {
	if err := s.put(ctx, keySession, []byte(value)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.delete(ctx, keySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
