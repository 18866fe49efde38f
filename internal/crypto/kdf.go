package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

// SaltBytes is the number of random bytes behind a generated passphrase salt.
const SaltBytes = 32

// HKDFSHA256 expands ikm into n bytes of key material bound to info.
func HKDFSHA256(ikm, salt, info []byte, n int) ([]byte, error) {
	out := make([]byte, n)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, info), out); err != nil {
		return nil, err
	}
	return out, nil
}

// StretchPassphrase derives n bytes from a passphrase with PBKDF2-SHA512.
// The same passphrase, salt and iteration count always reproduce the same
// output.
func StretchPassphrase(passphrase, salt string, iterations, n int) []byte {
	return pbkdf2.Key([]byte(passphrase), []byte(salt), iterations, n, sha512.New)
}

// NewSalt returns a fresh random salt in its stored (base64 text) form.
// Stretching uses the text bytes, so the recorded string alone is enough to
// re-derive.
func NewSalt() (string, error) {
	raw := make([]byte, SaltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return B64(raw), nil
}
