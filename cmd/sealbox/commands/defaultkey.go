package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// default-key: print the default key id, or set it when an id is given.
func defaultKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default-key [keyId]",
		Short: "Print or set the default secret storage key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := appCtx.Keys.SetDefaultKey(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Printf("Default key set to %s\n", args[0])
				return nil
			}

			id, ok, err := appCtx.Keys.DefaultKeyID(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no default key set")
			}
			fmt.Println(id)
			return nil
		},
	}
}
