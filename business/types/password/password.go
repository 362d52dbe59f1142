// Package password represents a clear text password supplied for hashing.
package password

import (
	"errors"
	"unicode/utf8"
)

const minLength = 6

// Password represents a clear text password. It never leaves the process in
// this form, only its bcrypt hash is stored.
type Password struct {
	value string
}

// String returns the clear text value.
func (p Password) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Password) Equal(p2 Password) bool {
	return p.value == p2.value
}

// Parse validates the password rules.
func Parse(value string) (Password, error) {
	if utf8.RuneCountInString(value) < minLength {
		return Password{}, errors.New("invalid password: must be at least 6 characters")
	}

	return Password{value}, nil
}

// MustParse parses the value and panics on error. Used by tests and tooling.
func MustParse(value string) Password {
	p, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return p
}
