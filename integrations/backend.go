package integrations

// BackendName identifies one supported mute source, as reported by the host
// plugin manager.
type BackendName string

const (
	BackendLiteBans    BackendName = "LiteBans"
	BackendAdvancedBan BackendName = "AdvancedBan"
	BackendLibertyBans BackendName = "LibertyBans"
	BackendEssentials  BackendName = "Essentials"
	BackendLocal       BackendName = "svcmute"
)

// PriorityBackends are probed in this order. Every detected one is registered.
var PriorityBackends = []BackendName{BackendLiteBans, BackendAdvancedBan, BackendLibertyBans}

// FallbackBackend is only probed when no priority backend was detected.
const FallbackBackend = BackendEssentials
