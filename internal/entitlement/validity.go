// Package entitlement decides how many units of each limited resource an
// account or workspace may hold, from its plan tier and paid add-ons.
package entitlement

import "time"

const (
	statusActive    = "ACTIVE"
	statusCancelled = "CANCELLED"
)

// Expirable is anything paid for until an expiry date: subscriptions and add-ons.
type Expirable interface {
	EntitlementStatus() string
	ExpiresAt() *time.Time
}

// IsValid reports whether e still grants access right now.
func IsValid(e Expirable) bool {
	return IsValidAt(e, time.Now())
}

// IsValidAt reports whether e grants access at the given instant. ACTIVE is
// always valid; CANCELLED stays valid until its expiry passes (or forever
// when no expiry is set). Everything else is invalid.
func IsValidAt(e Expirable, now time.Time) bool {
	if e == nil {
		return false
	}
	switch e.EntitlementStatus() {
	case statusActive:
		return true
	case statusCancelled:
		exp := e.ExpiresAt()
		return exp == nil || exp.After(now)
	default:
		return false
	}
}
