package internal

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"svc-mute/contract"
	"svc-mute/integrations"
	"svc-mute/integrations/advancedban"
	"svc-mute/integrations/essentials"
	"svc-mute/integrations/libertybans"
	"svc-mute/integrations/litebans"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// connectTimeout bounds the initial handshake with a backend at startup.
const connectTimeout = 5 * time.Second

// Backends builds the backend checkers out of the configuration and keeps
// track of the connections opened while doing so.
type Backends struct {
	config   Config
	presence contract.Presence
	log      *slog.Logger

	mu      sync.Mutex
	closers []io.Closer
}

func NewBackends(config Config, presence contract.Presence, log *slog.Logger) *Backends {
	return &Backends{config: config, presence: presence, log: log}
}

// Factories returns one factory per supported backend. A factory returns nil
// when the backend cannot be reached, so that it is treated as absent.
func (b *Backends) Factories() map[integrations.BackendName]integrations.Factory {
	return map[integrations.BackendName]integrations.Factory{
		integrations.BackendLiteBans:    b.liteBans,
		integrations.BackendAdvancedBan: b.advancedBan,
		integrations.BackendLibertyBans: b.libertyBans,
		integrations.BackendEssentials:  b.essentials,
	}
}

// Close releases every connection opened by the factories.
func (b *Backends) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c.Close())
	}
	b.closers = nil
	return errors.Join(errs...)
}

func (b *Backends) track(c io.Closer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closers = append(b.closers, c)
}

func (b *Backends) liteBans() contract.MuteChecker {
	db, err := sql.Open("postgres", b.config.LiteBansDSN)
	if err != nil {
		b.log.Error("Unable to open LiteBans database", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		b.log.Error("Unable to reach LiteBans database", "error", err)
		_ = db.Close()
		return nil
	}
	b.track(db)
	return litebans.NewChecker(db, b.config.LiteBansTablePrefix, b.presence, b.config.AdapterTimeout, b.log)
}

func (b *Backends) advancedBan() contract.MuteChecker {
	db, err := advancedban.Open(b.config.AdvancedBanFilepath)
	if err != nil {
		b.log.Error("Unable to open AdvancedBan database", "error", err)
		return nil
	}
	b.track(db)
	return advancedban.NewChecker(db, b.config.AdapterTimeout, b.log)
}

func (b *Backends) libertyBans() contract.MuteChecker {
	client := redis.NewClient(&redis.Options{Addr: b.config.LibertyBansRedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		b.log.Error("Unable to reach LibertyBans redis", "error", err)
		_ = client.Close()
		return nil
	}
	b.track(client)
	return libertybans.NewChecker(libertybans.NewRedisSelector(client), b.presence, b.config.AdapterTimeout, b.log)
}

func (b *Backends) essentials() contract.MuteChecker {
	checker, err := essentials.Open(b.config.EssentialsUserdataDir, b.log)
	if err != nil {
		b.log.Error("Unable to open Essentials userdata", "error", err)
		return nil
	}
	return checker
}
