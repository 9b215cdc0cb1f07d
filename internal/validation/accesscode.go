package validation

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/carenest/internal/crypto"
)

// MinAccessCodeLen минимальная длина кода доступа (в символах)
const MinAccessCodeLen = 4

// Access code validation errors. Both are recoverable by re-entering the code
var (
	ErrCodeTooShort = errors.New("access code must be at least 4 characters")
	ErrCodeMismatch = errors.New("access codes do not match")
	// ErrCodeReserved: такой код нельзя отличить от хеша при хранении открытым текстом
	ErrCodeReserved = errors.New("access code must not start with " + crypto.Argon2Prefix)
)

// ValidateAccessCode checks a new access code and its confirmation.
// The checks are mutually exclusive and run in order: length, reserved
// hash prefix, mismatch.
// Length counts characters, not bytes.
func ValidateAccessCode(code, confirm string) error {
	if utf8.RuneCountInString(code) < MinAccessCodeLen {
		return ErrCodeTooShort
	}

	if strings.HasPrefix(code, crypto.Argon2Prefix) {
		return ErrCodeReserved
	}

	if code != confirm {
		return ErrCodeMismatch
	}

	return nil
}
