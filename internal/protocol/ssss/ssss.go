package ssss

import (
	"unicode/utf8"

	"sealbox/internal/crypto"
	"sealbox/internal/domain"
	"sealbox/internal/util/memzero"
)

const (
	aesKeyBytes  = 32
	hmacKeyBytes = 32
)

// deriveKeys expands the master private key into the per-secret AES and HMAC
// keys. The salt is fixed at 32 zero bytes; all context lives in the info
// parameter.
func deriveKeys(privateKey []byte, secretID string) (aesKey, hmacKey []byte, err error) {
	salt := make([]byte, 32)
	out, err := crypto.HKDFSHA256(privateKey, salt, []byte(secretID), aesKeyBytes+hmacKeyBytes)
	if err != nil {
		return nil, nil, err
	}
	return out[:aesKeyBytes], out[aesKeyBytes:], nil
}

// Encrypt seals plaintext for secretID under privateKey with a fresh IV.
func Encrypt(privateKey []byte, secretID, plaintext string) (domain.EncryptedPayload, error) {
	iv, err := crypto.NewIV()
	if err != nil {
		return domain.EncryptedPayload{}, err
	}
	return EncryptWithIV(privateKey, secretID, plaintext, iv)
}

// EncryptWithIV seals plaintext with a caller-chosen IV. Reusing an IV under
// the same derived key leaks plaintext; callers outside tests should use
// Encrypt.
func EncryptWithIV(privateKey []byte, secretID, plaintext string, iv []byte) (domain.EncryptedPayload, error) {
	aesKey, hmacKey, err := deriveKeys(privateKey, secretID)
	if err != nil {
		return domain.EncryptedPayload{}, err
	}
	defer memzero.Zero(aesKey)
	defer memzero.Zero(hmacKey)

	ct, err := crypto.AESCTR(aesKey, iv, []byte(plaintext))
	if err != nil {
		return domain.EncryptedPayload{}, err
	}
	mac := crypto.HMACSHA256(hmacKey, ct)

	return domain.EncryptedPayload{
		IV:         crypto.B64(iv),
		Ciphertext: crypto.B64(ct),
		MAC:        crypto.B64(mac),
	}, nil
}

// Decrypt authenticates and opens payload for secretID under privateKey.
//
// The MAC is verified over the raw ciphertext before any decryption; a
// mismatch or malformed MAC field fails with a bad_mac error and malformed
// ciphertext or IV with bad_ciphertext. An absent IV reads as 16 zero bytes.
func Decrypt(privateKey []byte, secretID string, payload domain.EncryptedPayload) (string, error) {
	ct, err := crypto.B64Decode(payload.Ciphertext)
	if err != nil {
		return "", &domain.Error{Code: domain.CodeBadCiphertext, Msg: "ciphertext is not valid base64", Err: err}
	}
	wantMAC, err := crypto.B64Decode(payload.MAC)
	if err != nil {
		return "", &domain.Error{Code: domain.CodeBadMac, Msg: "mac is not valid base64", Err: err}
	}
	iv := make([]byte, crypto.IVBytes)
	if payload.IV != "" {
		decoded, err := crypto.B64Decode(payload.IV)
		if err != nil || len(decoded) != crypto.IVBytes {
			return "", domain.Errf(domain.CodeBadCiphertext, "iv is not a valid 16-byte base64 value")
		}
		iv = decoded
	}

	aesKey, hmacKey, err := deriveKeys(privateKey, secretID)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(aesKey)
	defer memzero.Zero(hmacKey)

	if !crypto.HMACEqual(crypto.HMACSHA256(hmacKey, ct), wantMAC) {
		return "", domain.ErrBadMac
	}

	pt, err := crypto.AESCTR(aesKey, iv, ct)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(pt) {
		return "", domain.Errf(domain.CodeBadCiphertext, "decrypted payload is not valid UTF-8")
	}
	return string(pt), nil
}
