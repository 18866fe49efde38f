package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// keys: list the key ids (and names) a secret is encrypted with.
func keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <secretId>",
		Short: "List the keys protecting a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			descs, err := appCtx.Secrets.KeysForSecret(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(descs))
			for id := range descs {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				if name := descs[id].Name; name != "" {
					fmt.Printf("%s\t%s\n", id, name)
				} else {
					fmt.Println(id)
				}
			}
			return nil
		},
	}
}
