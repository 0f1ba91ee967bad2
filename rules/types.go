// SPDX-License-Identifier: MIT

package rules

import (
	"fmt"
	"math"
)

// Severity is the strength and sign of a rule, ordered from the strongest
// positive bias (Force) to the strongest negative bias (ForceExclude).
type Severity int8

const (
	// Force keeps only pairs that satisfy the rule; all others are excluded.
	Force Severity = iota
	// Prefer rewards matching pairs with +2.
	Prefer
	// Standard rewards matching pairs with +1 (also the base cell weight).
	Standard
	// PreferExclude penalises matching pairs with -2.
	PreferExclude
	// ForceExclude excludes every matching pair.
	ForceExclude
)

var severityNames = [...]string{
	Force:         "Force",
	Prefer:        "Prefer",
	Standard:      "Standard",
	PreferExclude: "PreferExclude",
	ForceExclude:  "ForceExclude",
}

// Score returns the weight of s. Force and ForceExclude map to the extreme
// int16 values; they act as markers and are never added to a cell.
// Complexity: O(1).
func (s Severity) Score() int16 {
	switch s {
	case Force:
		return math.MaxInt16
	case Prefer:
		return 2
	case Standard:
		return 1
	case PreferExclude:
		return -2
	case ForceExclude:
		return math.MinInt16
	default:
		return 0
	}
}

// Hard reports whether s establishes exclusions instead of adding weight.
func (s Severity) Hard() bool { return s == Force || s == ForceExclude }

// Valid reports whether s is one of the declared severities.
func (s Severity) Valid() bool { return s >= Force && s <= ForceExclude }

// String implements fmt.Stringer.
func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Severity(%d)", int8(s))
	}

	return severityNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeverity, int8(s))
	}

	return []byte(severityNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range severityNames {
		if n == name {
			*s = Severity(i)
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownSeverity, name)
}

// Operand selects how the source value is compared with the target value.
type Operand int8

const (
	// Match compares the two trimmed values for equality.
	Match Operand = iota
	// Include treats the source value as a comma separated list and looks
	// for the target value as a whole token.
	Include
)

var operandNames = [...]string{
	Match:   "Match",
	Include: "Include",
}

// Valid reports whether o is one of the declared operands.
func (o Operand) Valid() bool { return o == Match || o == Include }

// String implements fmt.Stringer.
func (o Operand) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Operand(%d)", int8(o))
	}

	return operandNames[o]
}

// MarshalText implements encoding.TextMarshaler.
func (o Operand) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperand, int8(o))
	}

	return []byte(operandNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operand) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range operandNames {
		if n == name {
			*o = Operand(i)
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownOperand, name)
}

// Attributes maps element id -> field id -> raw value.
type Attributes map[string]map[string]string

// Grid is the mutable cell surface a rule writes to.
// Implementations must accept any x, y in [0, n).
type Grid interface {
	Get(x, y int) int16
	Put(x, y int, v int16)
}
