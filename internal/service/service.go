// Package service holds the authorization decision logic: whether an upload
// may proceed, whether a read URL needs signing, and what the caller gets
// back. External collaborators (token verifier, usage registry, storage
// backend) are injected as interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"rawstore/internal/auth"
	"rawstore/internal/config"
	"rawstore/internal/model"
	"rawstore/internal/storage"
	"rawstore/internal/usage"
)

// Gate failure sentinels. Unexpected internal faults (storage outage,
// registry error) are logged with detail server-side and surfaced as
// ErrBadRequest only: callers never see internal fault detail.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// QuotaError is a Forbidden subtype carrying the visibility class and the
// plan limit the request would exceed.
type QuotaError struct {
	Visibility model.Visibility
	LimitMB    float64
}

func (e *QuotaError) Error() string {
	limit := strconv.FormatFloat(e.LimitMB, 'f', -1, 64)
	if e.Visibility == model.VisibilityPrivate {
		return fmt.Sprintf("Max private storage for user exceeded plan limit (%sMB)", limit)
	}
	return fmt.Sprintf("Max storage for user exceeded plan limit (%sMB)", limit)
}

func (e *QuotaError) Unwrap() error { return ErrForbidden }

// AuthService defines the use cases of the upload-authorization gateway.
type AuthService interface {
	// Authorize validates the caller and quota, then returns a pre-signed
	// upload grant per file. All files are granted or none.
	Authorize(ctx context.Context, token string, req *model.UploadRequest) (*model.AuthorizeResult, error)

	// Presign returns the URL unchanged when it is already fetchable, or a
	// time-limited signed GET URL after verifying ownership.
	Presign(ctx context.Context, token, rawURL, ownerID string) (string, error)

	// Info lists the storage URL prefixes owned by the authenticated user.
	Info(ctx context.Context, token string) (*model.InfoResult, error)
}

// authService is the concrete AuthService.
type authService struct {
	cfg      *config.AppConfig
	verifier auth.Verifier
	registry usage.Registry
	store    storage.Storage
	probe    *http.Client
}

// NewAuthService constructs an AuthService. The probe client performs the
// metadata-only reachability check in Presign; pass nil for the default.
func NewAuthService(cfg *config.AppConfig, verifier auth.Verifier, registry usage.Registry, store storage.Storage, probe *http.Client) AuthService {
	if probe == nil {
		probe = http.DefaultClient
	}
	return &authService{
		cfg:      cfg,
		verifier: verifier,
		registry: registry,
		store:    store,
		probe:    probe,
	}
}

// logInternal records the full fault server-side before it is masked as a
// generic bad-request outcome.
func logInternal(op string, err error) {
	log.Printf("[rawstore] %s: internal error: %v", op, err)
}
