package integrations

import (
	"context"
	"fmt"
	"log/slog"
	"svc-mute/contract"
	"svc-mute/domain"
	"svc-mute/errors"
	"svc-mute/override"
	"time"

	"github.com/samber/lo"
)

// Factory builds the checker of one backend. Returning nil means the backend
// handle is unavailable, and the backend is treated as absent.
type Factory func() contract.MuteChecker

type registered struct {
	name    BackendName
	checker contract.MuteChecker
}

// IntegrationManager merges the verdicts of the detected backends with the
// local override list. Its registry is built once and never changes.
type IntegrationManager struct {
	log         *slog.Logger
	registry    []registered
	overrides   *override.Store
	persistence contract.OverridePersistence
	clock       func() time.Time
}

type Option func(*IntegrationManager)

// WithPersistence writes every override mutation through to p.
func WithPersistence(p contract.OverridePersistence) Option {
	return func(m *IntegrationManager) { m.persistence = p }
}

func WithClock(clock func() time.Time) Option {
	return func(m *IntegrationManager) { m.clock = clock }
}

// NewIntegrationManager probes every known backend and registers its checker:
//  1. LiteBans, AdvancedBan then LibertyBans, each when present, enabled and
//     its factory yields a handle. Several of them may coexist.
//  2. Essentials, only when none of the above was registered.
//  3. The local override checker, always last.
func NewIntegrationManager(log *slog.Logger, probe contract.Probe, factories map[BackendName]Factory,
	overrides *override.Store, opts ...Option) *IntegrationManager {
	m := &IntegrationManager{
		log:       log,
		overrides: overrides,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, name := range PriorityBackends {
		if checker := m.detect(probe, name, factories[name]); checker != nil {
			m.registry = append(m.registry, registered{name: name, checker: checker})
		}
	}

	if len(m.registry) == 0 {
		if checker := m.detect(probe, FallbackBackend, factories[FallbackBackend]); checker != nil {
			m.registry = append(m.registry, registered{name: FallbackBackend, checker: checker})
		}
	}

	m.registry = append(m.registry, registered{
		name:    BackendLocal,
		checker: NewLocalChecker(overrides, m.clock),
	})
	return m
}

func (m *IntegrationManager) detect(probe contract.Probe, name BackendName, factory Factory) contract.MuteChecker {
	if !probe.PluginPresent(string(name)) || !probe.PluginEnabled(string(name)) {
		return nil
	}
	if factory == nil {
		m.log.Warn("Backend reported enabled but no integration is available", "backend", string(name))
		return nil
	}
	checker := factory()
	if checker == nil {
		m.log.Warn("Backend reported enabled but its handle is unavailable", "backend", string(name))
		return nil
	}
	m.log.Info(fmt.Sprintf("%s mute checker loaded successfully", name))
	return checker
}

// Backends returns the registry composition, in query order.
func (m *IntegrationManager) Backends() []BackendName {
	return lo.Map(m.registry, func(r registered, _ int) BackendName { return r.name })
}

// IsMuted checks the override list first, then every registered backend in
// order, stopping at the first one reporting a mute.
func (m *IntegrationManager) IsMuted(ctx context.Context, subject domain.Subject) bool {
	if m.overrides.IsActive(subject, m.clock()) {
		return true
	}
	for _, r := range m.registry {
		if r.checker.IsMuted(ctx, subject) {
			m.log.Debug("Subject is muted", "subject", subject.String(), "backend", string(r.name))
			return true
		}
	}
	return false
}

// AddOverride mutes subject until the given time. The override applies
// immediately; a persistence failure is reported but does not revert it.
func (m *IntegrationManager) AddOverride(ctx context.Context, subject domain.Subject, until time.Time) error {
	m.overrides.Add(subject, until)
	if m.persistence == nil {
		return nil
	}
	entry := domain.OverrideEntry{Subject: subject, ExpiresAt: until}
	if err := m.persistence.Save(ctx, entry); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrPersistence, err)
	}
	return nil
}

// RemoveOverride lifts the local override of subject, if any.
func (m *IntegrationManager) RemoveOverride(ctx context.Context, subject domain.Subject) error {
	m.overrides.Remove(subject)
	if m.persistence == nil {
		return nil
	}
	if err := m.persistence.Delete(ctx, subject); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrPersistence, err)
	}
	return nil
}

// Reload replaces the override list with the persisted entries.
func (m *IntegrationManager) Reload(ctx context.Context) error {
	if m.persistence == nil {
		return nil
	}
	entries, err := m.persistence.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrPersistence, err)
	}
	m.overrides.Replace(entries)
	m.log.Info("Overrides reloaded", "count", len(entries))
	return nil
}
