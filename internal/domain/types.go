package domain

import (
	"encoding/json"
	"fmt"
)

// Account-data entry types. Key descriptors are stored one per key under
// KeyDescriptorTypePrefix+keyID; the default-key pointer lives in its own
// entry.
const (
	KeyDescriptorTypePrefix = "m.secret_storage.key."
	DefaultKeyType          = "m.secret_storage.default_key"
)

// Algorithm identifiers recorded in stored descriptors.
const (
	AlgorithmAESHMACSHA2 = "m.secret_storage.v1.aes-hmac-sha2"
	PassphraseAlgPBKDF2  = "m.pbkdf2"
)

// PrivateKeyLength is the size in bytes of a secret-storage private key.
const PrivateKeyLength = 32

// PassphraseParams records how a private key was stretched from a passphrase,
// so the same passphrase reproduces the same key later. Present on a
// descriptor iff the key was created from a passphrase.
type PassphraseParams struct {
	Algorithm  string `json:"algorithm"`
	Salt       string `json:"salt"`
	Iterations int    `json:"iterations"`
}

// KeyDescriptor describes one secret-storage key. Descriptors are immutable
// once created: never mutated, only superseded by a new descriptor under a
// different id. The id is the suffix of the account-data type, not part of
// the stored JSON.
type KeyDescriptor struct {
	ID         string            `json:"-"`
	Name       string            `json:"name,omitempty"`
	Algorithm  string            `json:"algorithm"`
	Passphrase *PassphraseParams `json:"passphrase,omitempty"`
}

// ParseKeyDescriptor strictly decodes a stored descriptor entry. Missing or
// malformed required fields fail explicitly rather than producing a
// partially-populated descriptor.
func ParseKeyDescriptor(id string, raw json.RawMessage) (KeyDescriptor, error) {
	var d KeyDescriptor
	if err := json.Unmarshal(raw, &d); err != nil {
		return KeyDescriptor{}, fmt.Errorf("key descriptor %q: %w", id, err)
	}
	if d.Algorithm == "" {
		return KeyDescriptor{}, fmt.Errorf("key descriptor %q: missing algorithm", id)
	}
	if p := d.Passphrase; p != nil {
		if p.Algorithm == "" || p.Salt == "" || p.Iterations <= 0 {
			return KeyDescriptor{}, fmt.Errorf("key descriptor %q: malformed passphrase params", id)
		}
	}
	d.ID = id
	return d, nil
}

// DefaultKeyPointer is the content of the default-key account-data entry.
type DefaultKeyPointer struct {
	Key string `json:"key"`
}

// EncryptedPayload is one key's ciphertext for a secret. Ciphertext and MAC
// are unpadded base64 and always present; the IV defaults to 16 zero bytes
// when absent.
type EncryptedPayload struct {
	IV         string `json:"iv,omitempty"`
	Ciphertext string `json:"ciphertext"`
	MAC        string `json:"mac"`
}

// SecretEntry is a secret's account-data content: a payload per protecting
// key. A nil Encrypted map means the entry carries no encrypted map at all.
type SecretEntry struct {
	Encrypted map[string]EncryptedPayload `json:"encrypted,omitempty"`
}

// KeyCreation is returned by key creation. The private key is owned
// exclusively by the caller after return; the library keeps no copy.
type KeyCreation struct {
	KeyID       string
	Descriptor  KeyDescriptor
	PrivateKey  []byte
	RecoveryKey string
}

// CreateKeyRequest carries the optional inputs to key creation. A blank
// KeyID means generate one; a blank Passphrase means generate a random key.
type CreateKeyRequest struct {
	KeyID      string
	Name       string
	Passphrase string
}
