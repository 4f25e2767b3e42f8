package ledger

import (
	"errors"
	"fmt"
)

// Rejection reasons. A rejected operation leaves the state unchanged.
var (
	ErrEmptyName         = errors.New("name must not be empty")
	ErrMissingAmount     = errors.New("amount is required")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrMissingCategory   = errors.New("category or source is required")
	ErrMissingTimestamp  = errors.New("timestamp is required")
	ErrMissingID         = errors.New("id is required")
	ErrInvalidKind       = errors.New("kind must be income or expense")
	ErrDuplicateID       = errors.New("id already in use")
	ErrProtectedEntry    = errors.New("system entries cannot be deleted")
	ErrIncorrectPassword = errors.New("current password is incorrect")
	ErrPasswordTooShort  = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrUnknownLanguage   = errors.New("unsupported language")
	ErrUnknownTheme      = errors.New("unknown theme color")
	ErrUnknownEffect     = errors.New("unknown effect")
)

// ValidationError reports why an operation was rejected.
type ValidationError struct {
	Op     string
	Reason error
	Value  string // offending input, if useful to show
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %v (%q)", e.Op, e.Reason, e.Value)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Reason)
}

// Unwrap lets errors.Is match the reason.
func (e *ValidationError) Unwrap() error {
	return e.Reason
}

func reject(op string, reason error) error {
	return &ValidationError{Op: op, Reason: reason}
}

func rejectValue(op string, reason error, value string) error {
	return &ValidationError{Op: op, Reason: reason, Value: value}
}

// IsValidation reports whether err is a rejection rather than an I/O failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
