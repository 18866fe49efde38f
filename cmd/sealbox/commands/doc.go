// Package commands defines the sealbox CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - create-key     Create a secret storage key (random or passphrase)
//   - default-key    Print or set the default key id
//   - keys           List the keys protecting a secret
//   - get            Decrypt and print a secret
//   - put            Encrypt and store a secret
//
// # Implementation
//
// The root command builds the dependency graph (store, crypto runner,
// services) before any subcommand runs, so handlers share one app context.
// Account data lives as JSON files under --home.
package commands
