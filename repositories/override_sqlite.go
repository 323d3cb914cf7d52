package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"svc-mute/domain"
	"time"

	_ "modernc.org/sqlite"
)

const createOverrides = `CREATE TABLE IF NOT EXISTS svcmute_overrides (
	subject TEXT PRIMARY KEY,
	expires_at INTEGER NOT NULL
)`

// SQLiteOverrideRepository persists local overrides in a SQLite file.
// Expiries are stored as unix millis.
type SQLiteOverrideRepository struct {
	db *sql.DB
}

// OpenSQLiteOverrideRepository opens (and creates if needed) the database at path.
func OpenSQLiteOverrideRepository(path string) (*SQLiteOverrideRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(createOverrides); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create overrides table: %w", err)
	}
	return &SQLiteOverrideRepository{db: db}, nil
}

func (r *SQLiteOverrideRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SQLiteOverrideRepository) Save(ctx context.Context, entry domain.OverrideEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO svcmute_overrides (subject, expires_at) VALUES (?, ?)
ON CONFLICT(subject) DO UPDATE SET expires_at = excluded.expires_at`,
		entry.Subject.String(), entry.ExpiresAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save override: %w", err)
	}
	return nil
}

func (r *SQLiteOverrideRepository) Delete(ctx context.Context, subject domain.Subject) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM svcmute_overrides WHERE subject = ?`, subject.String()); err != nil {
		return fmt.Errorf("delete override: %w", err)
	}
	return nil
}

func (r *SQLiteOverrideRepository) Load(ctx context.Context) ([]domain.OverrideEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT subject, expires_at FROM svcmute_overrides`)
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}
	defer rows.Close()

	var entries []domain.OverrideEntry
	for rows.Next() {
		var (
			raw    string
			millis int64
		)
		if err := rows.Scan(&raw, &millis); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		subject, err := domain.ParseSubject(raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.OverrideEntry{Subject: subject, ExpiresAt: time.UnixMilli(millis).UTC()})
	}
	return entries, rows.Err()
}
