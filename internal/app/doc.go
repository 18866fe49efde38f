// Package app wires stores, the crypto runner and services into one
// dependency graph for the CLI and embedding callers.
package app
