package auth

import (
	"errors"

	"github.com/iudanet/carenest/internal/validation"
)

// Access gate errors. Validation errors are recoverable by re-entering codes
var (
	// ErrCodeTooShort, ErrCodeReserved and ErrCodeMismatch are reported by Setup and ChangeCode
	ErrCodeTooShort = validation.ErrCodeTooShort
	ErrCodeMismatch = validation.ErrCodeMismatch
	ErrCodeReserved = validation.ErrCodeReserved

	// ErrIncorrectCode indicates a failed login attempt
	ErrIncorrectCode = errors.New("incorrect access code")

	// ErrCurrentCodeIncorrect indicates ChangeCode got a wrong current code
	ErrCurrentCodeIncorrect = errors.New("current access code is incorrect")

	// ErrAlreadyConfigured indicates Setup was called while a code exists
	ErrAlreadyConfigured = errors.New("access code is already set up")

	// ErrNotConfigured indicates Login was called before Setup
	ErrNotConfigured = errors.New("access code is not set up")

	// ErrLocked indicates an operation that requires an unlocked session
	ErrLocked = errors.New("session is locked")

	// ErrNotPersisted indicates that the store refused a write
	ErrNotPersisted = errors.New("changes could not be saved")
)
