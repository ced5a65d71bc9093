package service

import (
	"errors"
	"fmt"
)

// ErrBadCredentials covers both an unknown username and a wrong password, so
// a login failure does not reveal which one it was.
var ErrBadCredentials = errors.New("invalid username or password")

// ValidationError reports a missing or malformed form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
