package app_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sealbox/internal/app"
	"sealbox/internal/domain"
)

// TestEndToEnd wires the real graph (file store + crypto runner) and walks
// the whole lifecycle: create key, set default, store, list, decrypt.
func TestEndToEnd(t *testing.T) {
	a, err := app.New(app.Config{
		Home:       filepath.Join(t.TempDir(), "sealbox"),
		Iterations: 1000,
	})
	require.NoError(t, err)
	defer a.Close()
	ctx := context.Background()

	created, err := a.Keys.CreateKey(ctx, domain.CreateKeyRequest{
		Name:       "Default recovery key",
		Passphrase: "a passphrase of reasonable length",
	})
	require.NoError(t, err)
	require.NoError(t, a.Keys.SetDefaultKey(ctx, created.KeyID))

	err = a.Secrets.StoreSecret(ctx, "m.cross_signing.self_signing", "seed material", map[string][]byte{
		created.KeyID: created.PrivateKey,
	})
	require.NoError(t, err)

	descs, err := a.Secrets.KeysForSecret(ctx, "m.cross_signing.self_signing")
	require.NoError(t, err)
	require.Contains(t, descs, created.KeyID)

	// Decrypt via the default pointer with a passphrase-re-derived key.
	rederived, err := a.Keys.DeriveFromPassphrase(ctx, created.Descriptor, "a passphrase of reasonable length")
	require.NoError(t, err)
	got, err := a.Secrets.Secret(ctx, "m.cross_signing.self_signing", "", rederived)
	require.NoError(t, err)
	require.Equal(t, "seed material", got)
}

func TestCancelledContextShortCircuits(t *testing.T) {
	a, err := app.New(app.Config{Home: t.TempDir(), Iterations: 1000})
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = a.Keys.CreateKey(ctx, domain.CreateKeyRequest{Passphrase: "p"})
	require.ErrorIs(t, err, context.Canceled)
}
