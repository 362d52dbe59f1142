// Package outcome represents the result class of one item in a bulk
// assignment.
package outcome

import "fmt"

// The set of outcomes a bulk item can have.
var (
	Created = newOutcome("created")
	Skipped = newOutcome("skipped")
	Errored = newOutcome("errored")
)

// =============================================================================

// Set of known outcomes.
var outcomes = make(map[string]Outcome)

// Outcome represents the classification of a bulk item.
type Outcome struct {
	value string
}

func newOutcome(outcome string) Outcome {
	o := Outcome{outcome}
	outcomes[outcome] = o
	return o
}

// String returns the name of the outcome.
func (o Outcome) String() string {
	return o.value
}

// Equal provides support for the go-cmp package and testing.
func (o Outcome) Equal(o2 Outcome) bool {
	return o.value == o2.value
}

// MarshalText provides support for logging and any marshal needs.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.value), nil
}

// =============================================================================

// Parse parses the string value and returns an outcome if one exists.
func Parse(value string) (Outcome, error) {
	outcome, exists := outcomes[value]
	if !exists {
		return Outcome{}, fmt.Errorf("invalid outcome %q", value)
	}

	return outcome, nil
}
