package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrIdentityConflict means a record contradicts the stored player it
	// points at. The record must be skipped.
	ErrIdentityConflict = errors.New("identity conflict")
	// ErrAmbiguousMatch means several stored players fit equally well.
	ErrAmbiguousMatch = errors.New("ambiguous player match")
	// ErrMissingName is returned for records without a usable name.
	ErrMissingName = errors.New("player name is required")
)

// ConflictError details an identity conflict.
type ConflictError struct {
	// Name is the incoming (normalized) name.
	Name string
	// RegistryNumber is the registry number involved, if any.
	RegistryNumber string
	// Field is the contradicting signal: "birth_date" or "registry_number".
	Field    string
	Stored   string
	Incoming string
	// Err is the underlying store error, if the conflict came from a save.
	Err error
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("identity conflict for %q", e.Name)
	if e.RegistryNumber != "" {
		msg += fmt.Sprintf(" (registry number %s)", e.RegistryNumber)
	}
	msg += fmt.Sprintf(": %s is %q in the registry but %q in the record", e.Field, e.Stored, e.Incoming)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrIdentityConflict) hold for every ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrIdentityConflict
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
