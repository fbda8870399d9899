package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ============================================================
// Draft Store (SQLite)
// ============================================================

// ErrNoDraft — для сектора нет сохраненного черновика.
var ErrNoDraft = errors.New("no draft")

// Store хранит автосохраненные снимки сессий редактирования, чтобы
// прерванную сессию можно было продолжить.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init применяет миграции.
func (s *Store) Init(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// Save пишет черновик сектора (одна запись на сектор, новее замещает).
func (s *Store) Save(ctx context.Context, sectorID, sessionID string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO drafts (sector_id, session_id, payload, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(sector_id) DO UPDATE SET
            session_id = excluded.session_id,
            payload    = excluded.payload,
            updated_at = excluded.updated_at
    `, sectorID, sessionID, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Load читает черновик сектора.
func (s *Store) Load(ctx context.Context, sectorID string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT payload FROM drafts WHERE sector_id = ?
    `, sectorID)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDraft
		}
		return nil, err
	}
	return payload, nil
}

// Delete убирает черновик (после успешного сохранения или отмены).
func (s *Store) Delete(ctx context.Context, sectorID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE sector_id = ?`, sectorID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// Open открывает sqlite по указанному пути.
func Open(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
