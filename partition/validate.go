// SPDX-License-Identifier: MIT

package partition

import "fmt"

// Validate checks that groups is a valid partition of s under q:
//   - every element index is in range and placed exactly once;
//   - no group contains an excluded ordered pair;
//   - the groups, taken in order, fit q under the same bucket resolution the
//     search uses (exact size, else the smallest larger available size).
//
// Errors: ErrNilScorer, ErrOutOfRange, ErrDuplicate, ErrNotCovering,
// ErrExcludedPair, ErrQuotaExceeded, wrapped with the group index.
// Complexity: O(n + Σk² + g·|q|).
func Validate(s Scorer, q Quota, groups [][]int) error {
	if s == nil {
		return ErrNilScorer
	}
	var (
		n      = s.Len()
		seen   = make([]bool, n)
		placed int
		t      = newTable(q)
	)
	for gi, g := range groups {
		for _, m := range g {
			if m < 0 || m >= n {
				return fmt.Errorf("group %d: %w: %d", gi, ErrOutOfRange, m)
			}
			if seen[m] {
				return fmt.Errorf("group %d: %w: %d", gi, ErrDuplicate, m)
			}
			seen[m] = true
			placed++
		}
		if ok, _ := s.CalcScore(g); !ok {
			return fmt.Errorf("group %d: %w", gi, ErrExcludedPair)
		}
		bi := t.resolve(len(g))
		if len(g) < 2 || bi < 0 {
			return fmt.Errorf("group %d (size %d): %w", gi, len(g), ErrQuotaExceeded)
		}
		t.take(bi)
	}
	if placed != n {
		return fmt.Errorf("%w: %d of %d", ErrNotCovering, placed, n)
	}

	return nil
}
