// Package crypto exposes the minimal primitives used by sealbox.
//
// Contents
//
//   - HKDF-SHA256 expansion of a master key into per-secret material
//     (HKDFSHA256)
//   - PBKDF2-SHA512 passphrase stretching and salt generation
//     (StretchPassphrase, NewSalt)
//   - AES-CTR keystream application and IV generation (AESCTR, NewIV)
//   - HMAC-SHA256 and constant-time comparison (HMACSHA256, HMACEqual)
//   - Unpadded base64 (B64, B64Decode)
//   - The checksum-protected recovery-key text encoding
//     (EncodeRecoveryKey, DecodeRecoveryKey)
//
// # Notes
//
// Callers should treat derived key material as sensitive and rely on
// memzero.Zero when practical to reduce lifetime in memory.
package crypto
