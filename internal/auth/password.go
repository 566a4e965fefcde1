package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var (
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// HashPassword creates a bcrypt hash of the password. The password is
// reduced to a base64 SHA-256 digest first, so bcrypt's 72-byte input limit
// never truncates or rejects it.
func HashPassword(password string, cost int) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword(prehash(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a password with its stored digest. Digests written
// before bcrypt was introduced are unsalted SHA-256 hex strings and are
// still accepted.
func CheckPassword(password, digest string) error {
	if IsLegacyDigest(digest) {
		want := LegacyDigest(password)
		if subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(digest))) == 1 {
			return nil
		}
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(digest), prehash(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return err
	}
	return nil
}

// prehash returns the 44-byte base64 SHA-256 digest that bcrypt sees.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// LegacyDigest returns the unsalted SHA-256 hex digest of password.
func LegacyDigest(password string) string {
	h := sha256.Sum256([]byte(password))
	return hex.EncodeToString(h[:])
}

// IsLegacyDigest reports whether digest looks like a SHA-256 hex digest.
func IsLegacyDigest(digest string) bool {
	if len(digest) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}

// GenerateSessionSecret creates a random 32-byte secret for CSRF signing.
func GenerateSessionSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
