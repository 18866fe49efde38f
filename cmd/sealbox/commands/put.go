package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sealbox/internal/util/memzero"
)

// put: encrypt a secret under one key and merge it into the stored entry.
func putCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put <secretId> <value>",
		Short: "Encrypt and store a secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := resolveKey(cmd.Context())
			if err != nil {
				return err
			}
			priv, err := privateKeyFor(cmd.Context(), desc)
			if err != nil {
				return err
			}
			defer memzero.Zero(priv)

			err = appCtx.Secrets.StoreSecret(cmd.Context(), args[0], args[1], map[string][]byte{
				desc.ID: priv,
			})
			if err != nil {
				return err
			}
			color.Green("Stored %s (key %s)", args[0], desc.ID)
			return nil
		},
	}
	addKeyInputFlags(cmd)
	return cmd
}
