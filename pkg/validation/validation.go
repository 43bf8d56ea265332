package validation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrReadonlyModeViolation = errors.New("operation is not allowed in readonly mode")
	ErrSandboxModeViolation  = errors.New("operation is not allowed in sandbox mode")
	ErrInvalidArgument       = errors.New("invalid argument")
)

const (
	toIsNotAfterFromMessage = "end of the period cannot be before its start"
	wrongPageMessage        = "page number must be a non-negative integer"
)

// CheckReadonly must be called before any network I/O of a mutating operation.
func CheckReadonly(readonlyMode bool) error {
	if readonlyMode {
		return ErrReadonlyModeViolation
	}

	return nil
}

func CheckSandbox(sandboxMode bool) error {
	if sandboxMode {
		return ErrSandboxModeViolation
	}

	return nil
}

// CheckPage rejects negative page numbers. Pages are zero-based.
func CheckPage(page int32) error {
	if page < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, wrongPageMessage)
	}

	return nil
}

// CheckFromTo rejects ranges whose end precedes the start. A zero-width range is valid.
func CheckFromTo(from, to time.Time) error {
	if from.After(to) {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, toIsNotAfterFromMessage)
	}

	return nil
}
