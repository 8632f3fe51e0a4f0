package storage

import (
	"context"
	"time"
)

// Package storage contains the object-storage signing abstractions for
// S3-compatible backends. The service never proxies object bytes; it only
// issues credentials and probes object existence.

// SignUploadOptions scope a pre-signed upload credential. The ACL is baked
// into the signed conditions so the eventual upload cannot alter visibility
// after authorization.
type SignUploadOptions struct {
	ContentMD5  string
	ContentType string
	Length      int64
	ACL         string
}

// UploadCredential is a pre-signed POST target: the URL to post to and the
// form fields the upload must carry for the signature to validate.
type UploadCredential struct {
	URL      string
	FormData map[string]string
}

// Storage is the signing capability set of an S3-compatible backend.
// Implementations must be safe for concurrent use.
type Storage interface {
	// SignUpload issues a pre-signed POST credential for the exact key.
	SignUpload(ctx context.Context, key string, opt SignUploadOptions) (*UploadCredential, error)
	// ObjectExists reports whether an object already occupies the key in
	// the primary bucket. A missing key is not an error.
	ObjectExists(ctx context.Context, key string) (bool, error)
	// SignRead returns a time-limited URL that can be used to download the
	// object without credentials. The bucket is explicit because read
	// signing may target objects outside the primary bucket.
	SignRead(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}
