package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAmountNotDetected means a voice transcript carried no usable amount
	ErrAmountNotDetected = errors.New("could not detect amount in voice text")
	// ErrNotFound covers missing records and records owned by someone else
	ErrNotFound = errors.New("not found")
	// ErrPersistence wraps any store failure
	ErrPersistence = errors.New("persistence failure")
	// ErrEmailTaken is returned when registering an email that already exists
	ErrEmailTaken = errors.New("email already registered")
	// ErrStatsNotSaved means a transaction was stored but its badge and streak update was not
	ErrStatsNotSaved = errors.New("gamification stats not saved")
	// ErrInvalidCredentials is returned on a failed login
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a draft or patch that breaks a field rule
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
