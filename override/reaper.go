package override

import (
	"context"
	"log/slog"
	"svc-mute/contract"
	"time"
)

// Reaper periodically drops expired overrides from the store and from the
// persistence layer. Expired entries are already ignored by reads, so the
// reaper only bounds memory and disk usage.
type Reaper struct {
	store       *Store
	persistence contract.OverridePersistence
	interval    time.Duration
	clock       func() time.Time
	log         *slog.Logger
}

// NewReaper builds a reaper. persistence may be nil.
func NewReaper(store *Store, persistence contract.OverridePersistence,
	interval time.Duration, log *slog.Logger) *Reaper {
	return &Reaper{
		store:       store,
		persistence: persistence,
		interval:    interval,
		clock:       time.Now,
		log:         log,
	}
}

func (r *Reaper) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.log.Debug("Stopping reaper")
			return ctx.Err()
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep runs a single purge pass and returns the number of removed entries.
func (r *Reaper) Sweep(ctx context.Context) int {
	purged := r.store.Purge(r.clock())
	if r.persistence != nil {
		for _, entry := range purged {
			if err := r.persistence.Delete(ctx, entry.Subject); err != nil {
				r.log.Warn("Unable to delete expired override",
					"subject", entry.Subject.String(), "error", err)
			}
		}
	}
	if len(purged) > 0 {
		r.log.Debug("Expired overrides purged", "count", len(purged))
	}
	return len(purged)
}
