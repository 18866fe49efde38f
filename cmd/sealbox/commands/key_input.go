package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"sealbox/internal/crypto"
	"sealbox/internal/domain"
)

// resolveKey resolves --key (or the default pointer) to a descriptor.
func resolveKey(ctx context.Context) (domain.KeyDescriptor, error) {
	if keyID != "" {
		desc, ok, err := appCtx.Keys.Key(ctx, keyID)
		if err != nil {
			return domain.KeyDescriptor{}, err
		}
		if !ok {
			return domain.KeyDescriptor{}, fmt.Errorf("no such key %q", keyID)
		}
		return desc, nil
	}
	desc, ok, err := appCtx.Keys.DefaultKey(ctx)
	if err != nil {
		return domain.KeyDescriptor{}, err
	}
	if !ok {
		return domain.KeyDescriptor{}, fmt.Errorf("no default key set; pass --key")
	}
	return desc, nil
}

// privateKeyFor recovers the private key for desc from --recovery-key or
// --passphrase.
func privateKeyFor(ctx context.Context, desc domain.KeyDescriptor) ([]byte, error) {
	switch {
	case recoveryKey != "":
		priv, err := crypto.DecodeRecoveryKey(recoveryKey)
		if err != nil {
			return nil, err
		}
		return priv, nil
	case passphrase != "":
		sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		sp.Suffix = " deriving key from passphrase..."
		sp.Start()
		priv, err := appCtx.Keys.DeriveFromPassphrase(ctx, desc, passphrase)
		sp.Stop()
		return priv, err
	default:
		return nil, fmt.Errorf("a recovery key (--recovery-key) or passphrase (--passphrase) is required")
	}
}

func addKeyInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&keyID, "key", "", "key id (default: the default key)")
	cmd.Flags().StringVar(&recoveryKey, "recovery-key", "", "recovery key text")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "key passphrase")
}
