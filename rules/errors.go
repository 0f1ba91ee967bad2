// SPDX-License-Identifier: MIT

package rules

import "errors"

// Sentinel errors for rule evaluation and decoding. Call sites wrap them with
// the offending element/field so messages stay actionable; match with errors.Is.
var (
	// ErrUnknownElement indicates that a rule referenced an element id with no attribute row.
	ErrUnknownElement = errors.New("rules: unknown element")

	// ErrMissingField indicates that an element has no value for a field referenced by a rule.
	ErrMissingField = errors.New("rules: missing field value")

	// ErrUnknownSeverity indicates an unrecognised severity name while decoding.
	ErrUnknownSeverity = errors.New("rules: unknown severity")

	// ErrUnknownOperand indicates an unrecognised operand name while decoding.
	ErrUnknownOperand = errors.New("rules: unknown operand")
)
