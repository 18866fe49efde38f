package commands

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sealbox/internal/domain"
	"sealbox/internal/util/memzero"
)

// create-key: generate a key (random, or stretched from --passphrase),
// persist its descriptor and print the recovery key once.
func createKeyCmd() *cobra.Command {
	var (
		id        string
		name      string
		makeFirst bool
	)
	cmd := &cobra.Command{
		Use:   "create-key",
		Short: "Create a new secret storage key",
		RunE: func(cmd *cobra.Command, args []string) error {
			var sp *spinner.Spinner
			if passphrase != "" {
				// Stretching takes a noticeable moment at the default
				// iteration count.
				sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				sp.Suffix = " deriving key from passphrase..."
				sp.Start()
			}
			created, err := appCtx.Keys.CreateKey(cmd.Context(), domain.CreateKeyRequest{
				KeyID:      id,
				Name:       name,
				Passphrase: passphrase,
			})
			if sp != nil {
				sp.Stop()
			}
			if err != nil {
				return err
			}
			defer memzero.Zero(created.PrivateKey)

			if makeFirst {
				if err := appCtx.Keys.SetDefaultKey(cmd.Context(), created.KeyID); err != nil {
					return err
				}
			}

			color.Green("Key created: %s", created.KeyID)
			fmt.Println("Store this recovery key somewhere safe; it is shown only once:")
			fmt.Printf("  %s\n", created.RecoveryKey)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "key id (default: generated)")
	cmd.Flags().StringVar(&name, "name", "", "human-readable key name")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "derive the key from a passphrase")
	cmd.Flags().BoolVar(&makeFirst, "default", false, "also set this key as the default")
	return cmd
}
