package kvstore

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
// SQLite Blob Store
// ============================================================

// ErrNotFound возвращается, когда ключ отсутствует.
var ErrNotFound = errors.New("not found")

// Store хранит версионированные blob-снапшоты (корзина, дизайн-сессия).
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init запускает миграции.
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

// Put записывает снапшот целиком (write-through, без отложенной записи).
func (s *Store) Put(ctx context.Context, key string, schemaVersion int, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO blobs (key, schema_version, payload, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET
            schema_version = excluded.schema_version,
            payload        = excluded.payload,
            updated_at     = excluded.updated_at
    `, key, schemaVersion, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put blob: %w", err)
	}
	return nil
}

// Get возвращает снапшот и его версию схемы.
func (s *Store) Get(ctx context.Context, key string) ([]byte, int, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT schema_version, payload
        FROM blobs
        WHERE key = ?
    `, key)

	var version int
	var payload []byte
	if err := row.Scan(&version, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	return payload, version, nil
}

// Delete удаляет снапшот; отсутствие ключа не ошибка.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
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
