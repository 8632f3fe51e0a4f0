package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Presign decides whether a resource needs a signed read URL. A resource
// whose probe does not come back forbidden is already fetchable and is
// returned unchanged; otherwise ownership is enforced before signing.
func (s *authService) Presign(ctx context.Context, token, rawURL, ownerID string) (string, error) {
	if rawURL == "" {
		return "", ErrBadRequest
	}

	// Metadata-only probe: no body transfer.
	probeReq, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", ErrBadRequest
	}
	resp, err := s.probe.Do(probeReq)
	if err != nil {
		logInternal("presign", err)
		return "", ErrBadRequest
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		return rawURL, nil
	}

	// Protected resource: the caller must identify and match the owner.
	if ownerID == "" {
		return "", ErrUnauthorized
	}
	id := s.verifier.ExtractIdentity(token)
	if id == nil || id.UserID != ownerID {
		return "", ErrForbidden
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrBadRequest
	}
	bucket, key := splitStorageURL(parsed, s.cfg.Storage.HostDomain)

	// Coarse containment check: the object must live in the primary bucket
	// or the URL must name the owner somewhere.
	if bucket != s.cfg.Storage.Bucket && !strings.Contains(rawURL, ownerID) {
		return "", ErrForbidden
	}

	expiry := time.Duration(s.cfg.Storage.SignedURLExpirySec) * time.Second
	signed, err := s.store.SignRead(ctx, bucket, key, expiry)
	if err != nil {
		logInternal("presign", err)
		return "", ErrBadRequest
	}
	return signed, nil
}

// splitStorageURL resolves the bucket and object key of a storage URL.
// Host-style URLs carry the bucket as the host; a URL hosted on the
// provider's generic domain is path-style and carries the bucket as the
// first path segment.
func splitStorageURL(u *url.URL, hostDomain string) (bucket, key string) {
	bucket = u.Hostname()
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == hostDomain {
		bucket, key, _ = strings.Cut(key, "/")
	}
	return bucket, key
}
