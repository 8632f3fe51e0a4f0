package model

// Package model contains the domain types shared across layers (HTTP, service,
// storage). Pure data structures, no business logic and no persistence tags.

// Visibility partitions stored data for quota accounting and ACL selection.
// It is binary: "private" is private, everything else is public.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ACL values understood by S3-compatible backends.
const (
	ACLPublicRead = "public-read"
	ACLPrivate    = "private"
)

// Entitlement keys carried in verified token permissions.
const (
	EntMaxPublicStorageMB  = "max_public_storage_mb"
	EntMaxPrivateStorageMB = "max_private_storage_mb"
)

// StorageLimitKey returns the entitlement key holding the storage quota (in
// decimal megabytes) for the given visibility class.
func StorageLimitKey(v Visibility) string {
	if v == VisibilityPrivate {
		return EntMaxPrivateStorageMB
	}
	return EntMaxPublicStorageMB
}
