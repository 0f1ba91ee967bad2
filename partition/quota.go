// SPDX-License-Identifier: MIT

package partition

import (
	"fmt"
	"sort"
)

// Unlimited marks a quota size without usage limit. Any negative count is
// treated the same way.
const Unlimited = -1

// Quota maps a group size (>= 2) to the number of groups of that size still
// allowed, or a negative value for unlimited.
type Quota map[int]int

// Clone returns an independent copy of q.
func (q Quota) Clone() Quota {
	cp := make(Quota, len(q))
	for size, count := range q {
		cp[size] = count
	}

	return cp
}

// MaxSize returns the largest declared size, or 0 for an empty table.
func (q Quota) MaxSize() int {
	var largest int
	for size := range q {
		if size > largest {
			largest = size
		}
	}

	return largest
}

// ValidateQuota checks that q is non-empty, every size is >= 2 and no count is 0.
// Errors: ErrNoOutputs, ErrInvalidSize, ErrInvalidCount (wrapped with the size).
// Complexity: O(|q|).
func ValidateQuota(q Quota) error {
	if len(q) == 0 {
		return ErrNoOutputs
	}
	for size, count := range q {
		if size < 2 {
			return fmt.Errorf("%w: size %d", ErrInvalidSize, size)
		}
		if count == 0 {
			return fmt.Errorf("%w: size %d", ErrInvalidCount, size)
		}
	}

	return nil
}

// bucket is one quota entry during search: remaining < 0 is unlimited,
// remaining == 0 means the entry is used up (removed).
type bucket struct {
	size      int
	remaining int
}

// table is the mutable quota state of one search, sorted by size.
type table []bucket

func newTable(q Quota) table {
	t := make(table, 0, len(q))
	for size, count := range q {
		if count < 0 {
			count = Unlimited
		}
		t = append(t, bucket{size: size, remaining: count})
	}
	sort.Slice(t, func(i, j int) bool { return t[i].size < t[j].size })

	return t
}

// maxSize returns the largest size still available, or 0 if none is.
func (t table) maxSize() int {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].remaining != 0 {
			return t[i].size
		}
	}

	return 0
}

// resolve picks the bucket for a group of size n: the exact size if still
// available, else the smallest larger available size. It returns -1 if no
// bucket fits.
func (t table) resolve(n int) int {
	for i := range t {
		if t[i].size == n && t[i].remaining != 0 {
			return i
		}
	}
	for i := range t {
		if t[i].size > n && t[i].remaining != 0 {
			return i
		}
	}

	return -1
}

// take consumes one use of bucket i; unlimited buckets are left untouched.
func (t table) take(i int) {
	if t[i].remaining > 0 {
		t[i].remaining--
	}
}

// release undoes take.
func (t table) release(i int) {
	if t[i].remaining >= 0 {
		t[i].remaining++
	}
}
