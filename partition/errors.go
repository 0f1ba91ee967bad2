// SPDX-License-Identifier: MIT

package partition

import "errors"

// Sentinel errors. Infeasibility is not an error; see Result.Feasible.
var (
	// ErrNilScorer is returned when Solve or Validate receives a nil Scorer.
	ErrNilScorer = errors.New("partition: nil scorer")

	// ErrNoOutputs indicates an empty quota table.
	ErrNoOutputs = errors.New("partition: no output sizes declared")

	// ErrInvalidSize indicates a quota size below 2.
	ErrInvalidSize = errors.New("partition: output size must be >= 2")

	// ErrInvalidCount indicates a quota count of 0 (use a negative count for unlimited).
	ErrInvalidCount = errors.New("partition: output count must be non-zero")

	// ErrNoViableOutput indicates groups existed but no quota bucket, exact or
	// larger, was left to hold them.
	ErrNoViableOutput = errors.New("partition: no viable output size")

	// ErrNodeLimit indicates the search exceeded its node budget.
	ErrNodeLimit = errors.New("partition: node limit exceeded")

	// ErrUnknownOrder indicates an unrecognised anchor order name.
	ErrUnknownOrder = errors.New("partition: unknown anchor order")

	// Validation of a returned partition.
	ErrOutOfRange    = errors.New("partition: element index out of range")
	ErrDuplicate     = errors.New("partition: element placed more than once")
	ErrNotCovering   = errors.New("partition: not every element is placed")
	ErrExcludedPair  = errors.New("partition: group contains an excluded pair")
	ErrQuotaExceeded = errors.New("partition: group does not fit the quota table")
)
