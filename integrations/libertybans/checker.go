// Package libertybans bridges the asynchronous LibertyBans selector to the
// blocking mute check.
package libertybans

import (
	"context"
	"log/slog"
	"svc-mute/contract"
	"svc-mute/domain"
	"svc-mute/integrations"
	"time"
)

type Checker struct {
	selector Selector
	presence contract.Presence
	timeout  time.Duration
	log      *slog.Logger
}

func NewChecker(selector Selector, presence contract.Presence, timeout time.Duration, log *slog.Logger) *Checker {
	return &Checker{selector: selector, presence: presence, timeout: timeout, log: log}
}

// IsMuted treats an offline subject as muted without any lookup.
// This policy is specific to LibertyBans.
func (c *Checker) IsMuted(ctx context.Context, subject domain.Subject) bool {
	session, online := c.presence.Lookup(subject)
	if !online {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	results := c.selector.SelectActiveMute(ctx, subject.ID, session.Address)
	return integrations.Await(ctx, c.timeout, results).
		Muted(c.log, integrations.BackendLibertyBans, subject)
}
