package model

// Entitlements are the numeric claims attached to a verified identity,
// e.g. storage quotas in decimal megabytes per visibility class.
type Entitlements map[string]float64

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	UserID       string
	Entitlements Entitlements
}

// StorageLimitMB returns the storage quota for the given visibility class.
// An absent entitlement means zero: no grant without an explicit quota.
func (id *Identity) StorageLimitMB(v Visibility) float64 {
	return id.Entitlements[StorageLimitKey(v)]
}
