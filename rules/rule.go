// SPDX-License-Identifier: MIT

package rules

import (
	"fmt"
	"math"
	"strings"
)

// listSep separates tokens of an Include source value.
const listSep = ","

// Rule is one declarative compatibility condition. It is immutable once loaded.
type Rule struct {
	Severity    Severity `json:"severity" yaml:"severity"`
	Field       string   `json:"field" yaml:"field" validate:"required"`
	TargetField string   `json:"target_field" yaml:"target_field" validate:"required"`
	Operand     Operand  `json:"operand" yaml:"operand"`
}

// String renders r as "<severity> <field> to <operand> <target_field>".
func (r Rule) String() string {
	return fmt.Sprintf("%s %s to %s %s", r.Severity, r.Field, r.Operand, r.TargetField)
}

// lookup returns the trimmed value of field for element id.
func lookup(attrs Attributes, id, field string) (string, error) {
	row, ok := attrs[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownElement, id)
	}
	v, ok := row[field]
	if !ok {
		return "", fmt.Errorf("%w: element %q has no value for %q", ErrMissingField, id, field)
	}

	return strings.TrimSpace(v), nil
}

// Check reports whether the ordered pair (source, target) satisfies r.
// It reads attrs[source][r.Field] and attrs[target][r.TargetField], both trimmed.
//
// Under Include the source value is a comma separated list; the target value
// must equal one whole token (tokens may be padded with spaces).
//
// Errors: ErrUnknownElement, ErrMissingField (wrapped with the ids involved).
// Complexity: O(len(source value)).
func (r Rule) Check(source, target string, attrs Attributes) (bool, error) {
	value, err := lookup(attrs, source, r.Field)
	if err != nil {
		return false, err
	}
	targetValue, err := lookup(attrs, target, r.TargetField)
	if err != nil {
		return false, err
	}

	switch r.Operand {
	case Match:
		return value == targetValue, nil
	case Include:
		for _, tok := range strings.Split(value, listSep) {
			if strings.Trim(tok, " ") == targetValue {
				return true, nil
			}
		}

		return false, nil
	default:
		return false, fmt.Errorf("%w: %d", ErrUnknownOperand, int8(r.Operand))
	}
}

// Apply writes the effect of r into cell (x, y) of g unconditionally.
// Hard severities set the exclusion sentinel; soft severities add their weight.
// Soft accumulation saturates at [MinInt16+1, MaxInt16] so it never produces
// the sentinel by itself.
func (r Rule) Apply(x, y int, g Grid) {
	if r.Severity.Hard() {
		g.Put(x, y, math.MinInt16)
		return
	}
	g.Put(x, y, saturatingAdd(g.Get(x, y), r.Severity.Score()))
}

// CheckAndApply evaluates r on (source, target) and applies it to cell (x, y)
// when it fires. Force fires on a failed check, every other severity on a
// passed one.
func (r Rule) CheckAndApply(x, y int, source, target string, attrs Attributes, g Grid) error {
	ok, err := r.Check(source, target, attrs)
	if err != nil {
		return err
	}
	if r.Severity == Force {
		ok = !ok
	}
	if ok {
		r.Apply(x, y, g)
	}

	return nil
}

func saturatingAdd(a, b int16) int16 {
	sum := int32(a) + int32(b)
	switch {
	case sum > math.MaxInt16:
		return math.MaxInt16
	case sum <= math.MinInt16:
		return math.MinInt16 + 1
	default:
		return int16(sum)
	}
}
