// Package keys manages the secret-storage key lifecycle: creating random or
// passphrase-derived keys, persisting their descriptors and reading the
// default-key pointer.
//
// Private key material is ephemeral here. It is generated or stretched,
// handed to the caller and never persisted; only the descriptor (and for
// passphrase keys the salt and iteration count needed to re-derive) is
// written to account data.
package keys
