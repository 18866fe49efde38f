package app

import (
	"os"

	"sealbox/internal/domain"
	"sealbox/internal/serial"
	keyssvc "sealbox/internal/services/keys"
	secretssvc "sealbox/internal/services/secrets"
	"sealbox/internal/store"
)

// App bundles the store, crypto runner and services.
type App struct {
	Store   domain.AccountDataStore
	Keys    domain.KeyService
	Secrets domain.SecretService

	runner *serial.Runner
}

// New constructs the dependency graph from cfg. When cfg.Store is nil the
// Home directory is created and a file store rooted there is used.
func New(cfg Config) (*App, error) {
	st := cfg.Store
	if st == nil {
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, err
		}
		st = store.NewFileStore(cfg.Home)
	}

	runner := serial.New()
	keys := keyssvc.New(st, runner, cfg.Iterations)
	secrets := secretssvc.New(st, keys, runner)

	return &App{
		Store:   st,
		Keys:    keys,
		Secrets: secrets,
		runner:  runner,
	}, nil
}

// Close stops the crypto runner.
func (a *App) Close() { a.runner.Close() }
