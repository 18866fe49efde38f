// Package secrets resolves which keys protect a stored secret and runs the
// aes-hmac-sha2 protocol against account data.
//
// Nothing is cached: every call reads a fresh store snapshot and re-derives
// key material from scratch, which keeps the exposure window of derived keys
// as small as possible for data this small and infrequent.
package secrets
