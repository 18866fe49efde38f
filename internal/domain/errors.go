package domain

import "fmt"

// Code identifies a failure class in the secret-storage taxonomy. Every
// failure this library produces carries one; storage failures pass through
// unwrapped codes.
type Code string

const (
	CodeUnknownSecret             Code = "unknown_secret"
	CodeUnknownKey                Code = "unknown_key"
	CodeSecretNotEncrypted        Code = "secret_not_encrypted"
	CodeSecretNotEncryptedWithKey Code = "secret_not_encrypted_with_key"
	CodeUnsupportedAlgorithm      Code = "unsupported_algorithm"
	CodeBadMac                    Code = "bad_mac"
	CodeBadCiphertext             Code = "bad_ciphertext"
)

// Error is a taxonomy-coded failure. Two Errors match under errors.Is when
// their codes are equal, so callers can branch on the sentinels below while
// wrapped instances still carry call-site context.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Errf returns a coded error with formatted context.
func Errf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is checks. Each failure is terminal for the call that
// produced it: no internal retries, no partial results.
var (
	ErrUnknownSecret             = &Error{Code: CodeUnknownSecret, Msg: "no account data entry for secret"}
	ErrUnknownKey                = &Error{Code: CodeUnknownKey, Msg: "no resolvable secret storage key"}
	ErrSecretNotEncrypted        = &Error{Code: CodeSecretNotEncrypted, Msg: "secret entry carries no encrypted map"}
	ErrSecretNotEncryptedWithKey = &Error{Code: CodeSecretNotEncryptedWithKey, Msg: "secret is not encrypted with this key"}
	ErrUnsupportedAlgorithm      = &Error{Code: CodeUnsupportedAlgorithm, Msg: "unsupported secret storage algorithm"}
	ErrBadMac                    = &Error{Code: CodeBadMac, Msg: "MAC verification failed"}
	ErrBadCiphertext             = &Error{Code: CodeBadCiphertext, Msg: "malformed ciphertext"}
)
