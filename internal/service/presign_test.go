package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authMocks "rawstore/internal/auth/mocks"
	"rawstore/internal/model"
	storeMocks "rawstore/internal/storage/mocks"
	usageMocks "rawstore/internal/usage/mocks"
)

// probeServer answers every HEAD with the given status code.
func probeServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPresign(t *testing.T) {
	ctx := context.Background()

	t.Run("fetchable url is returned unchanged", func(t *testing.T) {
		srv := probeServer(t, http.StatusOK)
		mv := new(authMocks.MockVerifier)
		ms := new(storeMocks.MockStorage)
		svc := NewAuthService(testConfig(), mv, new(usageMocks.MockRegistry), ms, srv.Client())

		out, err := svc.Presign(ctx, "token", srv.URL, "owner")

		require.NoError(t, err)
		assert.Equal(t, srv.URL, out)
		// No identity resolution and no signing for an open resource.
		mv.AssertNotCalled(t, "ExtractIdentity")
		ms.AssertNotCalled(t, "SignRead")
	})

	t.Run("forbidden url without owner id", func(t *testing.T) {
		srv := probeServer(t, http.StatusForbidden)
		svc := NewAuthService(testConfig(), new(authMocks.MockVerifier), new(usageMocks.MockRegistry), new(storeMocks.MockStorage), srv.Client())

		_, err := svc.Presign(ctx, "token", srv.URL, "")

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("forbidden url with mismatching owner", func(t *testing.T) {
		srv := probeServer(t, http.StatusForbidden)
		mv := new(authMocks.MockVerifier)
		mv.On("ExtractIdentity", "token").Return(&model.Identity{UserID: "owner"})
		svc := NewAuthService(testConfig(), mv, new(usageMocks.MockRegistry), new(storeMocks.MockStorage), srv.Client())

		_, err := svc.Presign(ctx, "token", srv.URL, "not-owner")

		assert.ErrorIs(t, err, ErrForbidden)
		mv.AssertExpectations(t)
	})

	t.Run("url outside primary bucket not naming the owner", func(t *testing.T) {
		srv := probeServer(t, http.StatusForbidden)
		mv := new(authMocks.MockVerifier)
		mv.On("ExtractIdentity", "token").Return(&model.Identity{UserID: "notowner"})
		svc := NewAuthService(testConfig(), mv, new(usageMocks.MockRegistry), new(storeMocks.MockStorage), srv.Client())

		// srv.URL's host is not the primary bucket and the path does not
		// contain the owner id.
		_, err := svc.Presign(ctx, "token", srv.URL+"/someone/name", "notowner")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("signs protected url owned by caller", func(t *testing.T) {
		srv := probeServer(t, http.StatusForbidden)
		mv := new(authMocks.MockVerifier)
		mv.On("ExtractIdentity", "token").Return(&model.Identity{UserID: "owner"})

		srvHost, _ := url.Parse(srv.URL)
		ms := new(storeMocks.MockStorage)
		ms.On("SignRead", ctx, srvHost.Hostname(), "owner/name", 86400*time.Second).
			Return("https://s3.amazonaws.com/buckbuck/owner/name?Expires=86400", nil)

		svc := NewAuthService(testConfig(), mv, new(usageMocks.MockRegistry), ms, srv.Client())

		signed, err := svc.Presign(ctx, "token", srv.URL+"/owner/name", "owner")

		require.NoError(t, err)
		assert.Contains(t, signed, "Expires=86400")
		ms.AssertExpectations(t)
	})

	t.Run("path style url re-extracts bucket from path", func(t *testing.T) {
		srv := probeServer(t, http.StatusForbidden)
		srvHost, _ := url.Parse(srv.URL)

		cfg := testConfig()
		cfg.Storage.HostDomain = srvHost.Hostname()

		mv := new(authMocks.MockVerifier)
		mv.On("ExtractIdentity", "token").Return(&model.Identity{UserID: "owner"})
		ms := new(storeMocks.MockStorage)
		ms.On("SignRead", ctx, "buckbuck", "owner/name", 86400*time.Second).
			Return("https://s3.amazonaws.com/buckbuck/owner/name?Expires=86400", nil)

		svc := NewAuthService(cfg, mv, new(usageMocks.MockRegistry), ms, srv.Client())

		signed, err := svc.Presign(ctx, "token", fmt.Sprintf("%s/buckbuck/owner/name", srv.URL), "owner")

		require.NoError(t, err)
		assert.Contains(t, signed, "buckbuck/owner/name")
		ms.AssertExpectations(t)
	})

	t.Run("empty url", func(t *testing.T) {
		svc := NewAuthService(testConfig(), new(authMocks.MockVerifier), new(usageMocks.MockRegistry), new(storeMocks.MockStorage), nil)
		_, err := svc.Presign(ctx, "token", "", "owner")
		assert.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("unreachable url masked as bad request", func(t *testing.T) {
		svc := NewAuthService(testConfig(), new(authMocks.MockVerifier), new(usageMocks.MockRegistry), new(storeMocks.MockStorage), &http.Client{Timeout: 50 * time.Millisecond})
		_, err := svc.Presign(ctx, "token", "http://127.0.0.1:1/none", "owner")
		assert.ErrorIs(t, err, ErrBadRequest)
	})
}

func TestSplitStorageURL(t *testing.T) {
	tests := []struct {
		name       string
		rawURL     string
		wantBucket string
		wantKey    string
	}{
		{
			name:       "host style",
			rawURL:     "http://buckbuck/owner/name",
			wantBucket: "buckbuck",
			wantKey:    "owner/name",
		},
		{
			name:       "path style on provider domain",
			rawURL:     "http://s3.amazonaws.com/buckbuck/owner/name",
			wantBucket: "buckbuck",
			wantKey:    "owner/name",
		},
		{
			name:       "path style bucket only",
			rawURL:     "https://s3.amazonaws.com/buckbuck",
			wantBucket: "buckbuck",
			wantKey:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.rawURL)
			require.NoError(t, err)

			bucket, key := splitStorageURL(u, "s3.amazonaws.com")

			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
