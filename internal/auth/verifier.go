package auth

import (
	"crypto/subtle"
	"errors"
)

// ErrCredentialMismatch is the undifferentiated rejection returned by every
// verifier; callers must not expose which half of the check failed.
var ErrCredentialMismatch = errors.New("credential mismatch")

// CredentialVerifier checks a supplied secret against its stored form. The
// two principal kinds store credentials differently (verbatim vs bcrypt), but
// callers see a single capability and pick an implementation by principal.
type CredentialVerifier interface {
	Verify(stored, supplied string) error
}

// PlaintextVerifier compares the supplied secret with the stored value
// byte-for-byte in constant time. Used for regular users, whose passwords are
// stored as given.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored, supplied string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) != 1 {
		return ErrCredentialMismatch
	}
	return nil
}

// BcryptVerifier compares the supplied secret against a stored bcrypt hash.
// Used for admins; bcrypt's comparison does not short-circuit.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(stored, supplied string) error {
	if err := ComparePassword(stored, supplied); err != nil {
		return ErrCredentialMismatch
	}
	return nil
}
