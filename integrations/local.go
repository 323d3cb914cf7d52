package integrations

import (
	"context"
	"svc-mute/domain"
	"svc-mute/override"
	"time"
)

// LocalChecker reads the local override store. It never fails.
type LocalChecker struct {
	store *override.Store
	clock func() time.Time
}

func NewLocalChecker(store *override.Store, clock func() time.Time) LocalChecker {
	return LocalChecker{store: store, clock: clock}
}

func (c LocalChecker) IsMuted(_ context.Context, subject domain.Subject) bool {
	return c.store.IsActive(subject, c.clock())
}
