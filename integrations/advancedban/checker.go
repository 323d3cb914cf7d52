// Package advancedban reads active mutes from the AdvancedBan punishment table.
package advancedban

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"svc-mute/domain"
	"svc-mute/integrations"
	"time"

	_ "modernc.org/sqlite"
)

// AdvancedBan stores uuids without dashes and uses -1 as the end of a
// permanent punishment.
const selectMute = `SELECT 1 FROM Punishments
WHERE uuid = ?
  AND punishmentType IN ('MUTE', 'TEMP_MUTE')
  AND ("end" = -1 OR "end" > ?)
LIMIT 1`

type Checker struct {
	db      *sql.DB
	timeout time.Duration
	clock   func() time.Time
	log     *slog.Logger
}

func NewChecker(db *sql.DB, timeout time.Duration, log *slog.Logger) *Checker {
	return &Checker{db: db, timeout: timeout, clock: time.Now, log: log}
}

// Open opens the AdvancedBan database file. Connections are query only.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("advancedban database path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=query_only(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open advancedban db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping advancedban db: %w", err)
	}
	return db, nil
}

func (c *Checker) IsMuted(ctx context.Context, subject domain.Subject) bool {
	return c.lookup(ctx, subject).Muted(c.log, integrations.BackendAdvancedBan, subject)
}

func (c *Checker) lookup(ctx context.Context, subject domain.Subject) integrations.Verdict {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var one int
	err := c.db.QueryRowContext(ctx, selectMute, subject.Compact(), c.clock().UnixMilli()).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return integrations.Found(false)
	case err != nil:
		return integrations.Failed(fmt.Errorf("advancedban query: %w", err))
	default:
		return integrations.Found(true)
	}
}
