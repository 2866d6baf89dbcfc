package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rapv/site/internal/models"
)

const (
	TableSettings   = "settings"
	TableEvents     = "events"
	TableStaff      = "staff"
	TableNews       = "news"
	TableResults    = "results"
	TableFacilities = "facilities"
)

var contentTables = map[string]bool{
	TableSettings:   true,
	TableEvents:     true,
	TableStaff:      true,
	TableNews:       true,
	TableResults:    true,
	TableFacilities: true,
}

type Store struct {
	db  *sql.DB
	log *zap.Logger
}

type Option func(*Store)

// WithLogger reports rows that are skipped because they cannot be decoded.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CountRows returns the number of rows in one of the content tables.
func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	if !contentTables[table] {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM `+table).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) ListSettings(ctx context.Context) ([]models.Setting, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Setting{}
	for rows.Next() {
		var item models.Setting
		if err := rows.Scan(&item.Key, &item.Value); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpsertSettings writes all rows in one transaction, keyed by key.
func (s *Store) UpsertSettings(ctx context.Context, settings []models.Setting) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value,
		    updated_at = now()
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, setting := range settings {
		if _, err := stmt.ExecContext(ctx, setting.Key, setting.Value); err != nil {
			return fmt.Errorf("upsert setting %s: %w", setting.Key, err)
		}
	}
	return tx.Commit()
}

func (s *Store) CreateAuditEvent(ctx context.Context, event models.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if len(event.Payload) == 0 {
		event.Payload = json.RawMessage(`{}`)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, actor, action, payload, created_at)
		VALUES ($1, $2, $3, $4, now())
	`, event.ID, event.Actor, event.Action, []byte(event.Payload))
	return err
}

func (s *Store) ListAuditEvents(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id::text, actor, action, payload, created_at
		FROM audit_events
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.AuditEvent{}
	for rows.Next() {
		var item models.AuditEvent
		var payload []byte
		if err := rows.Scan(&item.ID, &item.Actor, &item.Action, &payload, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Payload = json.RawMessage(payload)
		items = append(items, item)
	}
	return items, rows.Err()
}

func deleteByKey(ctx context.Context, db *sql.DB, query string, key any) error {
	res, err := db.ExecContext(ctx, query, key)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
