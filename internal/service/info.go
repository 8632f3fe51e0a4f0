package service

import (
	"context"
	"fmt"

	"rawstore/internal/model"
)

// Info returns the storage URL prefixes owned by the authenticated user: for
// each scheme, a port-qualified and a bare URL on the primary bucket host,
// each suffixed with the user id. Order is fixed.
func (s *authService) Info(ctx context.Context, token string) (*model.InfoResult, error) {
	id := s.verifier.ExtractIdentity(token)
	if id == nil {
		return nil, ErrUnauthorized
	}

	host := s.cfg.Storage.Bucket
	schemes := []struct {
		scheme string
		port   string
	}{
		{"http", "80"},
		{"https", "443"},
	}

	prefixes := make([]string, 0, 2*len(schemes))
	for _, sp := range schemes {
		prefixes = append(prefixes,
			fmt.Sprintf("%s://%s:%s/%s", sp.scheme, host, sp.port, id.UserID),
			fmt.Sprintf("%s://%s/%s", sp.scheme, host, id.UserID),
		)
	}

	return &model.InfoResult{Prefixes: prefixes}, nil
}
