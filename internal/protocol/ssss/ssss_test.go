package ssss_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"sealbox/internal/crypto"
	"sealbox/internal/domain"
	"sealbox/internal/protocol/ssss"
)

// makeKey returns a fresh 32-byte master private key.
func makeKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := makeKey(t)

	payload, err := ssss.Encrypt(key, "m.megolm_backup.v1", "backup recovery material")
	require.NoError(t, err)
	require.NotEmpty(t, payload.IV)
	require.NotEmpty(t, payload.Ciphertext)
	require.NotEmpty(t, payload.MAC)

	got, err := ssss.Decrypt(key, "m.megolm_backup.v1", payload)
	require.NoError(t, err)
	require.Equal(t, "backup recovery material", got)
}

func TestDecryptKnownDerivation(t *testing.T) {
	// Zero master key, zero IV: the exact scenario a fresh client starts
	// from when it cross-checks its derivation.
	key := make([]byte, 32)
	iv := make([]byte, 16)

	payload, err := ssss.EncryptWithIV(key, "m.cross_signing.master", "test-secret", iv)
	require.NoError(t, err)

	got, err := ssss.Decrypt(key, "m.cross_signing.master", payload)
	require.NoError(t, err)
	require.Equal(t, "test-secret", got)
}

func TestTamperedCiphertextFailsMac(t *testing.T) {
	key := makeKey(t)

	payload, err := ssss.Encrypt(key, "secret", "value")
	require.NoError(t, err)

	ct, err := crypto.B64Decode(payload.Ciphertext)
	require.NoError(t, err)
	for i := range ct {
		flipped := bytes.Clone(ct)
		flipped[i] ^= 0x01
		tampered := payload
		tampered.Ciphertext = crypto.B64(flipped)

		_, err := ssss.Decrypt(key, "secret", tampered)
		require.ErrorIs(t, err, domain.ErrBadMac, "byte %d", i)
	}
}

func TestTamperedMacFails(t *testing.T) {
	key := makeKey(t)

	payload, err := ssss.Encrypt(key, "secret", "value")
	require.NoError(t, err)

	mac, err := crypto.B64Decode(payload.MAC)
	require.NoError(t, err)
	mac[0] ^= 0x80
	payload.MAC = crypto.B64(mac)

	_, err = ssss.Decrypt(key, "secret", payload)
	require.ErrorIs(t, err, domain.ErrBadMac)
}

func TestDerivationBoundToSecretID(t *testing.T) {
	key := makeKey(t)

	payload, err := ssss.Encrypt(key, "secretA", "value")
	require.NoError(t, err)

	_, err = ssss.Decrypt(key, "secretB", payload)
	require.ErrorIs(t, err, domain.ErrBadMac)
}

func TestWrongKeyFailsMac(t *testing.T) {
	payload, err := ssss.Encrypt(makeKey(t), "secret", "value")
	require.NoError(t, err)

	_, err = ssss.Decrypt(makeKey(t), "secret", payload)
	require.ErrorIs(t, err, domain.ErrBadMac)
}

func TestAbsentIVReadsAsZero(t *testing.T) {
	key := makeKey(t)
	zeroIV := make([]byte, 16)

	explicit, err := ssss.EncryptWithIV(key, "secret", "value", zeroIV)
	require.NoError(t, err)

	implicit := explicit
	implicit.IV = ""

	a, err := ssss.Decrypt(key, "secret", explicit)
	require.NoError(t, err)
	b, err := ssss.Decrypt(key, "secret", implicit)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestMalformedBase64(t *testing.T) {
	key := makeKey(t)

	payload, err := ssss.Encrypt(key, "secret", "value")
	require.NoError(t, err)

	badCT := payload
	badCT.Ciphertext = "!!! not base64 !!!"
	_, err = ssss.Decrypt(key, "secret", badCT)
	require.ErrorIs(t, err, domain.ErrBadCiphertext)

	badMAC := payload
	badMAC.MAC = "!!! not base64 !!!"
	_, err = ssss.Decrypt(key, "secret", badMAC)
	require.ErrorIs(t, err, domain.ErrBadMac)

	badIV := payload
	badIV.IV = "c2hvcnQ" // valid base64, wrong length
	_, err = ssss.Decrypt(key, "secret", badIV)
	require.ErrorIs(t, err, domain.ErrBadCiphertext)
}

func TestInvalidUTF8PlaintextFailsDecode(t *testing.T) {
	key := makeKey(t)

	payload, err := ssss.Encrypt(key, "secret", string([]byte{0xff, 0xfe, 0xfd}))
	require.NoError(t, err)

	_, err = ssss.Decrypt(key, "secret", payload)
	require.ErrorIs(t, err, domain.ErrBadCiphertext)
}
