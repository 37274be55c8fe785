package partition

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is returned for an empty profile name.
	ErrInvalidName = errors.New("profile name cannot be empty")

	// ErrDuplicateName is returned when a name is already taken by the
	// default profile or another explicit profile.
	ErrDuplicateName = errors.New("profile name already exists")

	// ErrUnknownProfile is returned when a profile does not belong to the store.
	ErrUnknownProfile = errors.New("profile not found")
)

// NameError reports which name-based operation failed and why.
type NameError struct {
	Op   string // create, rename or init
	Name string
	Err  error
}

func (e *NameError) Error() string {
	return fmt.Sprintf("cannot %s profile %q: %v", e.Op, e.Name, e.Err)
}

func (e *NameError) Unwrap() error {
	return e.Err
}
