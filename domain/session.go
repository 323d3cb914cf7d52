// Package domain contains core concepts of the mute system.
// This file defines the Session of a currently connected subject.
package domain

import (
	"net/netip"
	"time"
)

// Session describes a subject currently connected to the host, with the
// network address it was last seen from.
type Session struct {
	Subject     Subject
	Address     netip.Addr
	ConnectedAt time.Time
}
