package models

import "errors"

// ErrPreconditionNotMet matches every PreconditionError via errors.Is
var ErrPreconditionNotMet = errors.New("precondition not met")

// PreconditionError is a user-facing refusal that leaves prior state unchanged
type PreconditionError struct {
	Action  string
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Action + ": " + e.Message
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPreconditionNotMet
}
