package crypto

import (
	"encoding/base64"
	"strings"
)

// B64 returns unpadded standard base64.
func B64(b []byte) string { return base64.RawStdEncoding.EncodeToString(b) }

// B64Decode decodes standard base64 with or without padding.
func B64Decode(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
