// Package hash provides the one-way password digest used by the records
// service. The store only ever persists digests, never plaintext.
package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plaintext password into a storable digest and verifies
// a candidate password against a stored digest.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// SHA256Hasher produces deterministic hex-encoded SHA-256 digests. This is
// the digest format the mobile client has always stored, so existing
// credentials keep working. Deterministic output also means equal passwords
// compare equal as digests.
type SHA256Hasher struct{}

// NewSHA256 creates a SHA256Hasher
func NewSHA256() *SHA256Hasher {
	return &SHA256Hasher{}
}

var _ Hasher = (*SHA256Hasher)(nil)

// Hash returns the hex-encoded SHA-256 digest of the password
func (h *SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

// Verify reports whether the password digests to the stored value
func (h *SHA256Hasher) Verify(password, digest string) bool {
	computed, err := h.Hash(password)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// BcryptHasher produces salted bcrypt digests. Not compatible with
// credentials stored by the SHA-256 scheme; intended for fresh deployments
// where digest determinism is not needed.
type BcryptHasher struct {
	cost int
}

// NewBcrypt creates a BcryptHasher with the default cost
func NewBcrypt() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

var _ Hasher = (*BcryptHasher)(nil)

// Hash returns a salted bcrypt digest of the password
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the password matches the stored bcrypt digest
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
