package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/worklane/pkg/credstore/migrations"
	"github.com/aussiebroadwan/worklane/pkg/slogx"

	"github.com/golang-migrate/migrate/v4"
	msqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps credentials in a sqlite database, one row per slot.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens dsn and brings the schema up to date.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// modernc's driver is not safe for concurrent writers on one handle.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.applyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate credential store: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Get(ctx context.Context, slot Slot) (string, bool) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE slot = ?`, string(slot),
	).Scan(&value)
	switch {
	case err == nil:
		return value, true
	case errors.Is(err, sql.ErrNoRows):
		return "", false
	default:
		slogx.FromContext(ctx).Warn("credential lookup failed", "slot", slot, "err", err)
		return "", false
	}
}

func (s *SQLiteStore) Set(ctx context.Context, slot Slot, value string) error {
	if !slot.valid() {
		return ErrUnknownSlot
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (slot, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		string(slot), value,
	)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (s *SQLiteStore) applyMigrations() error {
	driver, err := msqlite.WithInstance(s.db, &msqlite.Config{})
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", src, "", driver)
	if err != nil {
		return err
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
