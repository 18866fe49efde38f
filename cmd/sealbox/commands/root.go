package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sealbox/internal/app"
)

var (
	home   string
	appCtx *app.App

	recoveryKey string
	passphrase  string
	keyID       string
)

func Execute() error {
	root := &cobra.Command{
		Use:   "sealbox",
		Short: "Client-side encrypted secret storage CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".sealbox")
			}
			a, err := app.New(app.Config{Home: home})
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				appCtx.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "account data dir (default ~/.sealbox)")

	root.AddCommand(createKeyCmd(), defaultKeyCmd(), keysCmd(), getCmd(), putCmd())
	return root.Execute()
}
