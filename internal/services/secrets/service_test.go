package secrets_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"sealbox/internal/crypto"
	"sealbox/internal/domain"
	"sealbox/internal/services/keys"
	"sealbox/internal/services/secrets"
	"sealbox/internal/store"
)

type fixture struct {
	store   *store.MemStore
	keys    *keys.Service
	secrets *secrets.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemStore()
	ks := keys.New(st, nil, 1000)
	return &fixture{store: st, keys: ks, secrets: secrets.New(st, ks, nil)}
}

// createKey makes a random key and returns its id and private key.
func (f *fixture) createKey(t *testing.T) (string, []byte) {
	t.Helper()
	created, err := f.keys.CreateKey(context.Background(), domain.CreateKeyRequest{})
	require.NoError(t, err)
	return created.KeyID, created.PrivateKey
}

func TestStoreAndGetSecret(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keyID, priv := f.createKey(t)

	err := f.secrets.StoreSecret(ctx, "m.cross_signing.master", "the master key", map[string][]byte{keyID: priv})
	require.NoError(t, err)

	got, err := f.secrets.Secret(ctx, "m.cross_signing.master", keyID, priv)
	require.NoError(t, err)
	require.Equal(t, "the master key", got)
}

func TestGetSecretViaDefaultKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keyID, priv := f.createKey(t)
	require.NoError(t, f.keys.SetDefaultKey(ctx, keyID))

	require.NoError(t, f.secrets.StoreSecret(ctx, "secret", "v", map[string][]byte{keyID: priv}))

	got, err := f.secrets.Secret(ctx, "secret", "", priv)
	require.NoError(t, err)
	require.Equal(t, "v", got)
}

func TestGetSecretUnknownSecret(t *testing.T) {
	f := newFixture(t)
	keyID, priv := f.createKey(t)

	_, err := f.secrets.Secret(context.Background(), "never-stored", keyID, priv)
	require.ErrorIs(t, err, domain.ErrUnknownSecret)
}

func TestGetSecretUnknownKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keyID, priv := f.createKey(t)
	require.NoError(t, f.secrets.StoreSecret(ctx, "secret", "v", map[string][]byte{keyID: priv}))

	// No explicit id and no default pointer.
	_, err := f.secrets.Secret(ctx, "secret", "", priv)
	require.ErrorIs(t, err, domain.ErrUnknownKey)

	// Explicit id with no descriptor.
	_, err = f.secrets.Secret(ctx, "secret", "no-such-key", priv)
	require.ErrorIs(t, err, domain.ErrUnknownKey)
}

func TestGetSecretNotEncrypted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keyID, priv := f.createKey(t)

	require.NoError(t, f.store.PutAccountData(ctx, "plain", map[string]any{"value": 1}))

	_, err := f.secrets.Secret(ctx, "plain", keyID, priv)
	require.ErrorIs(t, err, domain.ErrSecretNotEncrypted)
}

func TestGetSecretNotEncryptedWithKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keyA, privA := f.createKey(t)
	keyB, privB := f.createKey(t)

	require.NoError(t, f.secrets.StoreSecret(ctx, "secret", "v", map[string][]byte{keyA: privA}))

	_, err := f.secrets.Secret(ctx, "secret", keyB, privB)
	require.ErrorIs(t, err, domain.ErrSecretNotEncryptedWithKey)
}

func TestGetSecretUnsupportedAlgorithm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A descriptor with a foreign algorithm, and a payload stored under it.
	require.NoError(t, f.store.PutAccountData(ctx, domain.KeyDescriptorTypePrefix+"odd", map[string]any{
		"algorithm": "m.secret_storage.v2.post-quantum",
	}))
	require.NoError(t, f.store.PutAccountData(ctx, "secret", domain.SecretEntry{
		Encrypted: map[string]domain.EncryptedPayload{
			"odd": {Ciphertext: "AAAA", MAC: "AAAA"},
		},
	}))

	_, err := f.secrets.Secret(ctx, "secret", "odd", make([]byte, 32))
	require.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)
}

func TestGetSecretTamperPropagatesBadMac(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keyID, priv := f.createKey(t)
	require.NoError(t, f.secrets.StoreSecret(ctx, "secret", "v", map[string][]byte{keyID: priv}))

	wrong := make([]byte, 32)
	_, err := f.secrets.Secret(ctx, "secret", keyID, wrong)
	require.ErrorIs(t, err, domain.ErrBadMac)
}

func TestKeysForSecret(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keyA, privA := f.createKey(t)
	keyB, privB := f.createKey(t)

	require.NoError(t, f.secrets.StoreSecret(ctx, "secret", "v", map[string][]byte{
		keyA: privA,
		keyB: privB,
	}))

	descs, err := f.secrets.KeysForSecret(ctx, "secret")
	require.NoError(t, err)
	require.Len(t, descs, 2)
	require.Contains(t, descs, keyA)
	require.Contains(t, descs, keyB)
}

func TestKeysForSecretUnknownSecret(t *testing.T) {
	f := newFixture(t)

	_, err := f.secrets.KeysForSecret(context.Background(), "never-stored")
	require.ErrorIs(t, err, domain.ErrUnknownSecret)
}

func TestKeysForSecretSkipsUnknownKeyIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keyID, priv := f.createKey(t)
	require.NoError(t, f.secrets.StoreSecret(ctx, "secret", "v", map[string][]byte{keyID: priv}))

	// Graft a payload for a key nobody has a descriptor for.
	var entry domain.SecretEntry
	raw, err := f.store.GetAccountData(ctx, "secret")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &entry))
	entry.Encrypted["ghost"] = entry.Encrypted[keyID]
	require.NoError(t, f.store.PutAccountData(ctx, "secret", entry))

	descs, err := f.secrets.KeysForSecret(ctx, "secret")
	require.NoError(t, err)
	require.Len(t, descs, 1)
	require.Contains(t, descs, keyID)
}

func TestStoreSecretMergePreservesOtherKeys(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keyA, privA := f.createKey(t)
	keyB, privB := f.createKey(t)

	require.NoError(t, f.secrets.StoreSecret(ctx, "secret", "v1", map[string][]byte{keyA: privA}))
	require.NoError(t, f.secrets.StoreSecret(ctx, "secret", "v2", map[string][]byte{keyB: privB}))

	// keyA's payload survived the second write, still decrypting to v1.
	got, err := f.secrets.Secret(ctx, "secret", keyA, privA)
	require.NoError(t, err)
	require.Equal(t, "v1", got)

	got, err = f.secrets.Secret(ctx, "secret", keyB, privB)
	require.NoError(t, err)
	require.Equal(t, "v2", got)
}

func TestStoreSecretUnknownKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.secrets.StoreSecret(ctx, "secret", "v", map[string][]byte{"no-such-key": make([]byte, 32)})
	require.ErrorIs(t, err, domain.ErrUnknownKey)

	err = f.secrets.StoreSecret(ctx, "secret", "v", nil)
	require.ErrorIs(t, err, domain.ErrUnknownKey)
}

func TestStoredPayloadShape(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keyID, priv := f.createKey(t)
	require.NoError(t, f.secrets.StoreSecret(ctx, "secret", "v", map[string][]byte{keyID: priv}))

	var entry domain.SecretEntry
	raw, err := f.store.GetAccountData(ctx, "secret")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &entry))

	payload := entry.Encrypted[keyID]
	iv, err := crypto.B64Decode(payload.IV)
	require.NoError(t, err)
	require.Len(t, iv, 16)
	require.NotEmpty(t, payload.Ciphertext)
	require.NotEmpty(t, payload.MAC)
}
