package internal

import (
	"fmt"
	"strings"
	"svc-mute/errors"
	"time"
)

type OverrideStore string

const (
	OverrideStoreBadger OverrideStore = "badger"
	OverrideStoreSQLite OverrideStore = "sqlite"
	OverrideStoreMemory OverrideStore = "memory"
)

type Config struct {
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=8080"`
	AdapterTimeout  time.Duration `env:"ADAPTER_TIMEOUT,default=300ms"`
	ReaperInterval  time.Duration `env:"REAPER_INTERVAL,default=1m"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	OverrideStore   string        `env:"OVERRIDE_STORE,default=badger"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,default=./data/overrides"`
	SQLiteFilepath  string        `env:"SQLITE_FILEPATH,default=./data/overrides.db"`

	LiteBansEnabled     bool   `env:"LITEBANS_ENABLED,default=false"`
	LiteBansDSN         string `env:"LITEBANS_DSN"`
	LiteBansTablePrefix string `env:"LITEBANS_TABLE_PREFIX,default=litebans_"`

	AdvancedBanEnabled  bool   `env:"ADVANCEDBAN_ENABLED,default=false"`
	AdvancedBanFilepath string `env:"ADVANCEDBAN_FILEPATH"`

	LibertyBansEnabled   bool   `env:"LIBERTYBANS_ENABLED,default=false"`
	LibertyBansRedisAddr string `env:"LIBERTYBANS_REDIS_ADDR"`

	EssentialsEnabled     bool   `env:"ESSENTIALS_ENABLED,default=false"`
	EssentialsUserdataDir string `env:"ESSENTIALS_USERDATA_DIR"`
}

// Store returns the configured override persistence kind.
func (c Config) Store() (OverrideStore, error) {
	store := OverrideStore(strings.ToLower(strings.TrimSpace(c.OverrideStore)))
	switch store {
	case OverrideStoreBadger, OverrideStoreSQLite, OverrideStoreMemory:
		return store, nil
	default:
		return "", fmt.Errorf("%w: OVERRIDE_STORE=%q", errors.ErrUnknownStore, c.OverrideStore)
	}
}
