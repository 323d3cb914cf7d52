// Package domain contains core concepts of the mute system.
// This file defines locally managed, time-bounded mute overrides.
package domain

import "time"

// OverrideEntry mutes Subject until ExpiresAt.
// Expiry is always evaluated against the current time at read time.
type OverrideEntry struct {
	Subject   Subject
	ExpiresAt time.Time
}

// ActiveAt reports whether the entry still applies at now.
// An entry expiring exactly at now is considered expired.
func (o OverrideEntry) ActiveAt(now time.Time) bool {
	return o.ExpiresAt.After(now)
}
