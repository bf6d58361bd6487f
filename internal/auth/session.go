// Package auth implements the credential and session core: scrypt
// password hashing and HMAC-signed, self-contained session tokens
// carried in a cookie.
//
// A token is "b64url(payload).b64url(sig)" where payload is the JSON
// principal and sig is HMAC-SHA256 over the payload bytes. Nothing is
// stored server-side, so a token stays valid until its expiry even
// after logout clears the client cookie.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// ErrNoSecret is returned when a Signer is constructed without a
// signing secret. Startup must treat this as fatal.
var ErrNoSecret = errors.New("auth: signing secret is required")

// Principal is the fixed payload of a session token. JSON keys match
// the cookie format issued by earlier deployments of this tool.
type Principal struct {
	// UID is the account identifier.
	UID int64 `json:"uid"`

	// Name is the account display name.
	Name string `json:"name,omitempty"`

	// Email is the account email.
	Email string `json:"email"`

	// Role is the account role as of token issuance. Authorization
	// decisions re-read the role from the database.
	Role string `json:"role"`

	// IssuedAt is the unix timestamp of issuance.
	IssuedAt int64 `json:"iat"`

	// ExpiresAt is the unix timestamp after which the token is
	// rejected. Zero means no expiry claim (legacy tokens).
	ExpiresAt int64 `json:"exp,omitempty"`
}

// Signer issues and verifies session tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner builds a Signer from the server secret and token lifetime.
// An empty secret is a configuration error, not a fallback.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Signer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL returns the configured token lifetime.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for p, stamping issued-at and expiry.
func (s *Signer) Issue(p Principal) (string, error) {
	now := s.now()
	p.IssuedAt = now.Unix()
	p.ExpiresAt = now.Add(s.ttl).Unix()

	payload, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	sig := s.sign(payload)
	return base64.RawURLEncoding.EncodeToString(payload) + "." +
		base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify checks the token's signature, shape, and expiry. Any failure
// is total: the result is (zero Principal, false), never partial trust.
func (s *Signer) Verify(token string) (Principal, bool) {
	var zero Principal

	parts := strings.Split(token, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return zero, false
	}

	payload, err := base64DecodeURL(parts[0])
	if err != nil {
		return zero, false
	}
	sig, err := base64DecodeURL(parts[1])
	if err != nil {
		return zero, false
	}

	if !hmac.Equal(sig, s.sign(payload)) {
		return zero, false
	}

	var p Principal
	if err := json.Unmarshal(payload, &p); err != nil {
		return zero, false
	}
	if p.UID < 1 || p.Email == "" || p.Role == "" {
		return zero, false
	}
	if p.ExpiresAt > 0 && s.now().Unix() > p.ExpiresAt {
		return zero, false
	}

	return p, true
}

func (s *Signer) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

// base64DecodeURL accepts both padded and unpadded base64url, since
// tokens minted by older deployments strip padding.
func base64DecodeURL(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}

// SetSessionCookie attaches the session cookie with the required
// attributes: HTTP-only, Secure, SameSite=Lax, root path, bounded age.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearSessionCookie expires the session cookie on the client. The
// token itself remains cryptographically valid until its own expiry.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
