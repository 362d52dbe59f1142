// Package biref represents an opaque reference to an object that lives in the
// external BI platform, like a report or a workspace.
package biref

import (
	"fmt"
	"strings"
)

// Ref is an identifier owned by the BI platform. The only rule we enforce is
// that it is present; the platform is the authority on its shape.
type Ref struct {
	value string
}

// String returns the value of the reference.
func (r Ref) String() string {
	return r.value
}

// Equal provides support for the go-cmp package and testing.
func (r Ref) Equal(r2 Ref) bool {
	return r.value == r2.value
}

// MarshalText provides support for logging and any marshal needs.
func (r Ref) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// Parse parses the string value and returns a reference if it is not blank.
func Parse(value string) (Ref, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Ref{}, fmt.Errorf("invalid reference: must not be empty")
	}

	return Ref{value}, nil
}

// MustParse parses the string value and panics on error.
func MustParse(value string) Ref {
	r, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return r
}
