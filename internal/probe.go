package internal

import (
	"strings"
	"svc-mute/integrations"
)

// EnvProbe answers backend presence from the configuration: a backend is
// present once its location is configured, and enabled by its flag.
type EnvProbe struct {
	location map[integrations.BackendName]string
	enabled  map[integrations.BackendName]bool
}

func NewEnvProbe(config Config) EnvProbe {
	return EnvProbe{
		location: map[integrations.BackendName]string{
			integrations.BackendLiteBans:    config.LiteBansDSN,
			integrations.BackendAdvancedBan: config.AdvancedBanFilepath,
			integrations.BackendLibertyBans: config.LibertyBansRedisAddr,
			integrations.BackendEssentials:  config.EssentialsUserdataDir,
		},
		enabled: map[integrations.BackendName]bool{
			integrations.BackendLiteBans:    config.LiteBansEnabled,
			integrations.BackendAdvancedBan: config.AdvancedBanEnabled,
			integrations.BackendLibertyBans: config.LibertyBansEnabled,
			integrations.BackendEssentials:  config.EssentialsEnabled,
		},
	}
}

func (p EnvProbe) PluginPresent(name string) bool {
	return strings.TrimSpace(p.location[integrations.BackendName(name)]) != ""
}

func (p EnvProbe) PluginEnabled(name string) bool {
	return p.enabled[integrations.BackendName(name)]
}
