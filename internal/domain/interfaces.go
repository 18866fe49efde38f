package domain

import (
	"context"
	"encoding/json"
)

// AccountDataStore is the external per-account, per-type key-value store.
// GetAccountData returns (nil, nil) when no entry exists for the type.
// Writes replace the whole entry for that type; consistency under concurrent
// writers is whatever the backing store provides (last write wins).
type AccountDataStore interface {
	GetAccountData(ctx context.Context, dataType string) (json.RawMessage, error)
	PutAccountData(ctx context.Context, dataType string, content any) error
}

// KeyService creates secret-storage keys and reads descriptors and the
// default-key pointer.
type KeyService interface {
	// CreateKey generates or stretches a private key, persists its
	// descriptor and returns the key material and recovery encoding.
	CreateKey(ctx context.Context, req CreateKeyRequest) (KeyCreation, error)

	// SetDefaultKey points the default-key entry at keyID.
	SetDefaultKey(ctx context.Context, keyID string) error

	// DefaultKeyID reads the default-key pointer; ok is false when unset.
	DefaultKeyID(ctx context.Context) (id string, ok bool, err error)

	// Key reads one descriptor; ok is false when no entry exists.
	Key(ctx context.Context, keyID string) (desc KeyDescriptor, ok bool, err error)

	// DefaultKey is Key(DefaultKeyID()), absent-propagating.
	DefaultKey(ctx context.Context) (desc KeyDescriptor, ok bool, err error)

	// DeriveFromPassphrase re-derives the private key recorded by a
	// passphrase-created descriptor.
	DeriveFromPassphrase(ctx context.Context, desc KeyDescriptor, passphrase string) ([]byte, error)
}

// SecretService resolves which keys protect a secret and runs the
// encrypt/decrypt protocol against the store.
type SecretService interface {
	// KeysForSecret maps each protecting key id with a known descriptor to
	// that descriptor. Key ids with no matching descriptor are omitted.
	KeysForSecret(ctx context.Context, secretID string) (map[string]KeyDescriptor, error)

	// Secret decrypts one secret. A blank keyID resolves to the default key.
	Secret(ctx context.Context, secretID, keyID string, privateKey []byte) (string, error)

	// StoreSecret encrypts plaintext under each supplied key and merges the
	// payloads into the secret's encrypted map in a single write.
	StoreSecret(ctx context.Context, secretID, plaintext string, keys map[string][]byte) error
}
