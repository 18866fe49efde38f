package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
)

// IVBytes is the AES-CTR initialisation vector size.
const IVBytes = aes.BlockSize

// AESCTR applies the AES-CTR keystream for key and iv to data. CTR is its
// own inverse, so the same call encrypts and decrypts.
func AESCTR(key, iv, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	cipher.NewCTR(block, iv).XORKeyStream(out, data)
	return out, nil
}

// NewIV returns a random 16-byte IV. Bit 63 is cleared so the counter half
// cannot overflow into the random half on long inputs.
func NewIV() ([]byte, error) {
	iv := make([]byte, IVBytes)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}
	iv[8] &= 0x7f
	return iv, nil
}
