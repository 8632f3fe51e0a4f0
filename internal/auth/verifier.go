// Package auth verifies bearer tokens and resolves the caller's identity
// and entitlements.
package auth

import (
	"crypto/rsa"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"rawstore/internal/config"
	"rawstore/internal/model"
)

// Fixed test credential. Accepted only when AuthConfig.AllowTestToken is set;
// it maps to a fixed user id and carries no entitlements.
const (
	TestToken  = "testing-token"
	TestUserID = "__tests"
)

// Verifier resolves identities from bearer tokens. Implementations must
// collapse every verification failure (missing, malformed, bad signature,
// wrong algorithm, expired) to a nil identity, never an error crossing to
// the caller.
type Verifier interface {
	ExtractIdentity(token string) *model.Identity
}

// JWTVerifier verifies RS256-signed tokens against a configured public key.
// The parsed key is cached lazily and can be swapped at runtime via Refresh;
// safe for concurrent use.
type JWTVerifier struct {
	serviceName    string
	allowTestToken bool

	mu        sync.RWMutex
	publicPEM string
	parsedKey *rsa.PublicKey
}

var _ Verifier = (*JWTVerifier)(nil)

// NewJWTVerifier creates a verifier from the auth configuration.
func NewJWTVerifier(cfg config.AuthConfig) *JWTVerifier {
	return &JWTVerifier{
		serviceName:    cfg.ServiceName,
		allowTestToken: cfg.AllowTestToken,
		publicPEM:      cfg.PublicKey,
	}
}

// Refresh replaces the verification key material and invalidates the cached
// parsed key. The next verification re-parses the PEM.
func (v *JWTVerifier) Refresh(publicKeyPEM string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.publicPEM = publicKeyPEM
	v.parsedKey = nil
}

// publicKey returns the cached parsed key, parsing the PEM on first use.
func (v *JWTVerifier) publicKey() (*rsa.PublicKey, error) {
	v.mu.RLock()
	key := v.parsedKey
	v.mu.RUnlock()
	if key != nil {
		return key, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.parsedKey != nil {
		return v.parsedKey, nil
	}
	parsed, err := jwt.ParseRSAPublicKeyFromPEM([]byte(v.publicPEM))
	if err != nil {
		return nil, err
	}
	v.parsedKey = parsed
	return parsed, nil
}

// ExtractIdentity verifies the token and returns the caller's identity, or
// nil when verification fails for any reason.
func (v *JWTVerifier) ExtractIdentity(token string) *model.Identity {
	if token == "" {
		return nil
	}
	if v.allowTestToken && token == TestToken {
		return &model.Identity{UserID: TestUserID, Entitlements: model.Entitlements{}}
	}

	key, err := v.publicKey()
	if err != nil {
		return nil
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return key, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	userID, _ := claims["userid"].(string)
	if userID == "" {
		return nil
	}
	if v.serviceName != "" {
		if svc, _ := claims["service"].(string); svc != v.serviceName {
			return nil
		}
	}

	ents := model.Entitlements{}
	if perms, ok := claims["permissions"].(map[string]interface{}); ok {
		for name, val := range perms {
			if f, ok := val.(float64); ok {
				ents[name] = f
			}
		}
	}

	return &model.Identity{UserID: userID, Entitlements: ents}
}
