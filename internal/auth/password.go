package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters. Encoded into every hash so verification is
// self-describing and old hashes keep verifying if these change.
const (
	scryptN       = 16384
	scryptR       = 8
	scryptP       = 1
	scryptKeyLen  = 32
	scryptSaltLen = 16
)

// Hasher hashes and verifies passwords using scrypt.
//
// Stored hashes use the format "scrypt$N$r$p$saltHex$keyHex". When
// AllowLegacyPlaintext is set, a stored value that does not match that
// format is compared as plaintext; this exists only to migrate old
// databases and is logged every time it is hit.
type Hasher struct {
	// AllowLegacyPlaintext enables the deprecated plaintext fallback
	// in Verify. Deprecated: migrate stored credentials to scrypt.
	AllowLegacyPlaintext bool
}

// Hash derives an encoded scrypt hash from password with a fresh
// random salt.
func (h Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}

	salt := make([]byte, scryptSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return fmt.Sprintf("scrypt$%d$%d$%d$%s$%s",
		scryptN, scryptR, scryptP,
		hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// Verify reports whether password matches the stored encoded hash.
// It fails closed: malformed input of any kind yields false, never an
// error, so callers treat it uniformly as an authentication failure.
func (h Hasher) Verify(password, stored string) bool {
	if stored == "" {
		return false
	}

	if strings.HasPrefix(stored, "scrypt$") {
		return verifyScrypt(password, stored)
	}

	if h.AllowLegacyPlaintext {
		slog.Warn("password verified against legacy plaintext credential; migrate to scrypt")
		return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
	}

	return false
}

func verifyScrypt(password, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[0] != "scrypt" {
		return false
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	r, err := strconv.Atoi(parts[2])
	if err != nil {
		return false
	}
	p, err := strconv.Atoi(parts[3])
	if err != nil {
		return false
	}
	salt, err := hex.DecodeString(parts[4])
	if err != nil {
		return false
	}
	key, err := hex.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return false
	}

	derived, err := scrypt.Key([]byte(password), salt, n, r, p, len(key))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(key, derived) == 1
}
