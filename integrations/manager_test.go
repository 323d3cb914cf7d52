package integrations

import (
	"context"
	"fmt"
	"log/slog"
	"svc-mute/contract"
	"svc-mute/domain"
	"svc-mute/errors"
	"svc-mute/mocks"
	"svc-mute/override"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeProbe maps a backend name to its {present, enabled} flags.
type fakeProbe map[BackendName][2]bool

func (p fakeProbe) PluginPresent(name string) bool { return p[BackendName(name)][0] }
func (p fakeProbe) PluginEnabled(name string) bool { return p[BackendName(name)][1] }

type staticChecker bool

func (c staticChecker) IsMuted(context.Context, domain.Subject) bool { return bool(c) }

// hangingChecker never gets an answer from its backend before the timeout.
type hangingChecker struct {
	timeout time.Duration
}

func (c hangingChecker) IsMuted(ctx context.Context, subject domain.Subject) bool {
	v := Await(ctx, c.timeout, make(chan Verdict, 1))
	return v.Muted(slog.Default(), BackendLiteBans, subject)
}

func factoryOf(c contract.MuteChecker) Factory {
	return func() contract.MuteChecker { return c }
}

func allFactories() map[BackendName]Factory {
	return map[BackendName]Factory{
		BackendLiteBans:    factoryOf(staticChecker(false)),
		BackendAdvancedBan: factoryOf(staticChecker(false)),
		BackendLibertyBans: factoryOf(staticChecker(false)),
		BackendEssentials:  factoryOf(staticChecker(false)),
	}
}

func TestIntegrationManager_Registry_Composition(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	on := [2]bool{true, true}
	disabled := [2]bool{true, false}

	tests := []struct {
		name     string
		probe    fakeProbe
		expected []BackendName
	}{
		{
			name:     "Nothing present, only the local checker",
			probe:    fakeProbe{},
			expected: []BackendName{BackendLocal},
		},
		{
			name:     "Only the fallback present",
			probe:    fakeProbe{BackendEssentials: on},
			expected: []BackendName{BackendEssentials, BackendLocal},
		},
		{
			name:     "Priority backend hides the fallback",
			probe:    fakeProbe{BackendLiteBans: on, BackendEssentials: on},
			expected: []BackendName{BackendLiteBans, BackendLocal},
		},
		{
			name:     "Several priority backends coexist in priority order",
			probe:    fakeProbe{BackendLibertyBans: on, BackendAdvancedBan: on, BackendLiteBans: on},
			expected: []BackendName{BackendLiteBans, BackendAdvancedBan, BackendLibertyBans, BackendLocal},
		},
		{
			name:     "Present but disabled is absent",
			probe:    fakeProbe{BackendLiteBans: disabled, BackendEssentials: on},
			expected: []BackendName{BackendEssentials, BackendLocal},
		},
		{
			name:     "Disabled fallback",
			probe:    fakeProbe{BackendEssentials: disabled},
			expected: []BackendName{BackendLocal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			manager := NewIntegrationManager(log, tt.probe, allFactories(), override.NewStore())
			req.Equal(tt.expected, manager.Backends())

			// Building twice from the same flags gives the same registry
			again := NewIntegrationManager(log, tt.probe, allFactories(), override.NewStore())
			req.Equal(manager.Backends(), again.Backends())
		})
	}
}

func TestIntegrationManager_Null_Handle_Falls_Through(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	on := [2]bool{true, true}
	probe := fakeProbe{BackendLibertyBans: on, BackendEssentials: on}

	// Given LibertyBans reported enabled but without any handle
	factories := allFactories()
	factories[BackendLibertyBans] = func() contract.MuteChecker { return nil }

	manager := NewIntegrationManager(log, probe, factories, override.NewStore())

	// Then it is ignored and the fallback is used
	req.Equal([]BackendName{BackendEssentials, BackendLocal}, manager.Backends())

	// Same when no integration exists at all for it
	delete(factories, BackendLibertyBans)
	manager = NewIntegrationManager(log, probe, factories, override.NewStore())
	req.Equal([]BackendName{BackendEssentials, BackendLocal}, manager.Backends())
}

func TestIntegrationManager_Probe_Not_Asked_For_Fallback_When_Priority_Found(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	probe := mocks.NewMockProbe(ctrl)

	probe.EXPECT().PluginPresent(string(BackendLiteBans)).Return(true)
	probe.EXPECT().PluginEnabled(string(BackendLiteBans)).Return(true)
	probe.EXPECT().PluginPresent(string(BackendAdvancedBan)).Return(false)
	probe.EXPECT().PluginPresent(string(BackendLibertyBans)).Return(false)
	probe.EXPECT().PluginPresent(string(BackendEssentials)).Times(0)

	manager := NewIntegrationManager(log, probe, allFactories(), override.NewStore())

	req.Equal([]BackendName{BackendLiteBans, BackendLocal}, manager.Backends())
}

func TestIntegrationManager_IsMuted_Nobody(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	probe := fakeProbe{BackendEssentials: {true, true}}

	manager := NewIntegrationManager(log, probe, allFactories(), override.NewStore())

	// Given a subject unknown to the fallback and without override
	req.Equal([]BackendName{BackendEssentials, BackendLocal}, manager.Backends())
	req.False(manager.IsMuted(context.Background(), domain.NewSubject(uuid.New())))
}

func TestIntegrationManager_IsMuted_Short_Circuits(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	subject := domain.NewSubject(uuid.New())
	first := mocks.NewMockMuteChecker(ctrl)
	second := mocks.NewMockMuteChecker(ctrl)

	probe := fakeProbe{BackendLiteBans: {true, true}, BackendAdvancedBan: {true, true}}
	factories := map[BackendName]Factory{
		BackendLiteBans:    factoryOf(first),
		BackendAdvancedBan: factoryOf(second),
	}
	manager := NewIntegrationManager(log, probe, factories, override.NewStore())

	// When the first backend reports a mute, the second is never asked
	first.EXPECT().IsMuted(gomock.Any(), subject).Return(true).Times(1)
	second.EXPECT().IsMuted(gomock.Any(), gomock.Any()).Times(0)
	req.True(manager.IsMuted(context.Background(), subject))

	// When the first says no, the second decides
	first.EXPECT().IsMuted(gomock.Any(), subject).Return(false).Times(1)
	second.EXPECT().IsMuted(gomock.Any(), subject).Return(true).Times(1)
	req.True(manager.IsMuted(context.Background(), subject))
}

func TestIntegrationManager_Override_Short_Circuits_Backends(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	subject := domain.NewSubject(uuid.New())
	backend := mocks.NewMockMuteChecker(ctrl)

	probe := fakeProbe{BackendLiteBans: {true, true}}
	manager := NewIntegrationManager(log, probe,
		map[BackendName]Factory{BackendLiteBans: factoryOf(backend)}, override.NewStore())

	backend.EXPECT().IsMuted(gomock.Any(), gomock.Any()).Times(0)
	req.NoError(manager.AddOverride(context.Background(), subject, time.Now().Add(time.Hour)))
	req.True(manager.IsMuted(context.Background(), subject))
}

func TestIntegrationManager_Override_Lifecycle(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	subject := domain.NewSubject(uuid.New())
	now := time.Now()
	clock := now
	probe := fakeProbe{}

	manager := NewIntegrationManager(log, probe, nil, override.NewStore(),
		WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	// Given an override of 10 seconds
	req.NoError(manager.AddOverride(ctx, subject, now.Add(10000*time.Millisecond)))
	req.True(manager.IsMuted(ctx, subject))

	// Adding it twice changes nothing
	req.NoError(manager.AddOverride(ctx, subject, now.Add(10000*time.Millisecond)))
	clock = now.Add(9999 * time.Millisecond)
	req.True(manager.IsMuted(ctx, subject))

	// Then it expires exactly at its deadline
	clock = now.Add(10000 * time.Millisecond)
	req.False(manager.IsMuted(ctx, subject))

	// When removed, it never applies again
	clock = now
	req.True(manager.IsMuted(ctx, subject))
	req.NoError(manager.RemoveOverride(ctx, subject))
	req.False(manager.IsMuted(ctx, subject))
}

func TestIntegrationManager_Removed_Override_Leaves_Backend_Verdict(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	subject := domain.NewSubject(uuid.New())
	probe := fakeProbe{BackendEssentials: {true, true}}
	factories := map[BackendName]Factory{BackendEssentials: factoryOf(staticChecker(true))}
	manager := NewIntegrationManager(log, probe, factories, override.NewStore())
	ctx := context.Background()

	req.NoError(manager.AddOverride(ctx, subject, time.Now().Add(time.Hour)))
	req.NoError(manager.RemoveOverride(ctx, subject))

	// The backend still mutes the subject on its own
	req.True(manager.IsMuted(ctx, subject))
}

func TestIntegrationManager_Timed_Out_Backend_Continues(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	subject := domain.NewSubject(uuid.New())
	ctx := context.Background()

	probe := fakeProbe{BackendLiteBans: {true, true}, BackendAdvancedBan: {true, true}}

	// Given LiteBans times out and AdvancedBan mutes the subject
	factories := map[BackendName]Factory{
		BackendLiteBans:    factoryOf(hangingChecker{timeout: 10 * time.Millisecond}),
		BackendAdvancedBan: factoryOf(staticChecker(true)),
	}
	manager := NewIntegrationManager(log, probe, factories, override.NewStore())
	req.True(manager.IsMuted(ctx, subject))

	// Given LiteBans times out and nothing else mutes
	factories[BackendAdvancedBan] = factoryOf(staticChecker(false))
	manager = NewIntegrationManager(log, probe, factories, override.NewStore())
	req.False(manager.IsMuted(ctx, subject))
}

func TestIntegrationManager_Persistence_Write_Through(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	persistence := mocks.NewMockOverridePersistence(ctrl)
	subject := domain.NewSubject(uuid.New())
	until := time.Now().Add(time.Hour)
	ctx := context.Background()

	manager := NewIntegrationManager(log, fakeProbe{}, nil, override.NewStore(), WithPersistence(persistence))

	persistence.EXPECT().Save(gomock.Any(), domain.OverrideEntry{Subject: subject, ExpiresAt: until}).Return(nil)
	req.NoError(manager.AddOverride(ctx, subject, until))

	// A failing delete is reported, but the override is lifted anyway
	persistence.EXPECT().Delete(gomock.Any(), subject).Return(fmt.Errorf("read-only"))
	err := manager.RemoveOverride(ctx, subject)
	req.ErrorIs(err, errors.ErrPersistence)
	req.False(manager.IsMuted(ctx, subject))
}

func TestIntegrationManager_Reload(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	persistence := mocks.NewMockOverridePersistence(ctrl)
	subject := domain.NewSubject(uuid.New())
	ctx := context.Background()

	manager := NewIntegrationManager(log, fakeProbe{}, nil, override.NewStore(), WithPersistence(persistence))

	// Overrides start empty after a restart
	req.False(manager.IsMuted(ctx, subject))

	persistence.EXPECT().Load(gomock.Any()).Return([]domain.OverrideEntry{
		{Subject: subject, ExpiresAt: time.Now().Add(time.Hour)},
	}, nil)
	req.NoError(manager.Reload(ctx))
	req.True(manager.IsMuted(ctx, subject))

	persistence.EXPECT().Load(gomock.Any()).Return(nil, fmt.Errorf("corrupted"))
	req.ErrorIs(manager.Reload(ctx), errors.ErrPersistence)
	// A failed reload keeps the current list
	req.True(manager.IsMuted(ctx, subject))
}
