package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealbox/internal/util/memzero"
)

// get: decrypt one secret and print it.
func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <secretId>",
		Short: "Decrypt and print a secret",
		Args:  cobra.ExactArgs(1),
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

			value, err := appCtx.Secrets.Secret(cmd.Context(), args[0], desc.ID, priv)
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}
	addKeyInputFlags(cmd)
	return cmd
}
