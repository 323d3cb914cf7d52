// Package litebans reads active mutes from the LiteBans SQL database.
package litebans

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"svc-mute/contract"
	"svc-mute/domain"
	"svc-mute/integrations"
	"time"
)

// DefaultTablePrefix is the prefix LiteBans applies to its tables.
const DefaultTablePrefix = "litebans_"

// Checker looks up the subject uuid, and its last known address for ip mutes.
type Checker struct {
	db       *sql.DB
	query    string
	presence contract.Presence
	timeout  time.Duration
	clock    func() time.Time
	log      *slog.Logger
}

// NewChecker expects a database/sql handle on the LiteBans database.
// presence may be nil, in which case only uuid mutes are matched.
func NewChecker(db *sql.DB, tablePrefix string, presence contract.Presence,
	timeout time.Duration, log *slog.Logger) *Checker {
	if tablePrefix == "" {
		tablePrefix = DefaultTablePrefix
	}
	// until <= 0 marks a permanent mute, otherwise it is the end in millis.
	query := fmt.Sprintf(`SELECT 1 FROM %smutes
WHERE active = TRUE
  AND (uuid = $1 OR (ipban = TRUE AND ip = $2))
  AND (until <= 0 OR until > $3)
LIMIT 1`, tablePrefix)
	return &Checker{
		db:       db,
		query:    query,
		presence: presence,
		timeout:  timeout,
		clock:    time.Now,
		log:      log,
	}
}

func (c *Checker) IsMuted(ctx context.Context, subject domain.Subject) bool {
	return c.lookup(ctx, subject).Muted(c.log, integrations.BackendLiteBans, subject)
}

func (c *Checker) lookup(ctx context.Context, subject domain.Subject) integrations.Verdict {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// An empty address never matches a stored ip
	address := ""
	if c.presence != nil {
		if session, ok := c.presence.Lookup(subject); ok && session.Address.IsValid() {
			address = session.Address.String()
		}
	}

	var one int
	err := c.db.QueryRowContext(ctx, c.query, subject.String(), address, c.clock().UnixMilli()).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return integrations.Found(false)
	case err != nil:
		return integrations.Failed(fmt.Errorf("litebans query: %w", err))
	default:
		return integrations.Found(true)
	}
}
