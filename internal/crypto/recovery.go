package crypto

import (
	"errors"
	"strings"

	"github.com/mr-tron/base58"
)

// Recovery keys are a human-transcribable encoding of a raw private key:
// a two-byte header, the key bytes, and a parity byte chosen so every byte
// XORs to zero, all base58-encoded and grouped in blocks of four characters.
var recoveryKeyHeader = []byte{0x8b, 0x01}

var (
	// ErrBadRecoveryKey is returned when the text does not decode to a
	// well-formed, parity-correct key.
	ErrBadRecoveryKey = errors.New("malformed recovery key")
)

// EncodeRecoveryKey renders key as recovery-key text.
func EncodeRecoveryKey(key []byte) string {
	buf := make([]byte, 0, len(recoveryKeyHeader)+len(key)+1)
	buf = append(buf, recoveryKeyHeader...)
	buf = append(buf, key...)

	var parity byte
	for _, b := range buf {
		parity ^= b
	}
	buf = append(buf, parity)

	enc := base58.Encode(buf)
	var out strings.Builder
	for i := 0; i < len(enc); i += 4 {
		if i > 0 {
			out.WriteByte(' ')
		}
		end := i + 4
		if end > len(enc) {
			end = len(enc)
		}
		out.WriteString(enc[i:end])
	}
	return out.String()
}

// DecodeRecoveryKey parses recovery-key text back into the raw private key.
// Whitespace is ignored; the header and parity byte must check out.
func DecodeRecoveryKey(s string) ([]byte, error) {
	compact := strings.Join(strings.Fields(s), "")
	buf, err := base58.Decode(compact)
	if err != nil {
		return nil, ErrBadRecoveryKey
	}
	if len(buf) != len(recoveryKeyHeader)+32+1 {
		return nil, ErrBadRecoveryKey
	}
	for i, b := range recoveryKeyHeader {
		if buf[i] != b {
			return nil, ErrBadRecoveryKey
		}
	}
	var parity byte
	for _, b := range buf {
		parity ^= b
	}
	if parity != 0 {
		return nil, ErrBadRecoveryKey
	}
	return buf[len(recoveryKeyHeader) : len(buf)-1], nil
}
