package compiler

import (
	"errors"
	"fmt"
)

// ErrListTooLong is returned when a pool or array literal needs more entries
// than a 16-bit index can address.
var ErrListTooLong = errors.New("cannot convert list longer than 2^16 elements")

// InvalidNameError is returned when an identifier is not accepted by the
// command database. Name holds the text as the user wrote it, before
// canonicalization.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %s", e.Name)
}
