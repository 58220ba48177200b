package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier decides how a credential is stored and checked.
type CredentialVerifier interface {
	// Prepare turns a submitted credential into its stored form.
	Prepare(plain string) (string, error)
	Verify(stored, submitted string) bool
}

// PlainVerifier stores credentials as given and compares them in constant time.
type PlainVerifier struct{}

func (PlainVerifier) Prepare(plain string) (string, error) { return plain, nil }

func (PlainVerifier) Verify(stored, submitted string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

type BcryptVerifier struct {
	Cost int
}

func (b BcryptVerifier) Prepare(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	return string(h), err
}

func (BcryptVerifier) Verify(stored, submitted string) bool {
	if stored == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil
}

// NewVerifier picks a verifier by scheme name ("plain" or "bcrypt").
func NewVerifier(scheme string) (CredentialVerifier, error) {
	switch scheme {
	case "", "plain":
		return PlainVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{}, nil
	}
	return nil, fmt.Errorf("unknown credential scheme %q", scheme)
}
