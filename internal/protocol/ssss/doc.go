// Package ssss implements the aes-hmac-sha2 authenticated encryption
// protocol for secret storage.
//
// A 64-byte block is derived from the master private key with HKDF-SHA256
// (zero salt, the secret id as info) and split into an AES-256-CTR key and
// an HMAC-SHA256 key. Binding the derivation to the secret id means a leaked
// per-secret key cannot decrypt any other secret protected by the same
// master key. Payloads are authenticated before decryption: the MAC is
// recomputed over the raw ciphertext and compared in constant time, and only
// a matching payload is decrypted.
package ssss
