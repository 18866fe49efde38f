package app

import "sealbox/internal/domain"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string                  // account-data directory, e.g. $HOME/.sealbox
	Iterations int                     // PBKDF2 iterations; 0 selects the default
	Store      domain.AccountDataStore // optional; defaults to a FileStore under Home
}
