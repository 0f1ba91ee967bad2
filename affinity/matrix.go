// SPDX-License-Identifier: MIT

// Package affinity - dense int16 score matrix over a fixed element ordering.
//
// Purpose:
//   - Fix the element ordering once (sorted ids) so every later reference is
//     an integer index and every run over the same input is bit-identical.
//   - Hold directional pair scores in one row-major buffer, cell (x, y) at
//     data[x*n+y]. The matrix is not symmetric: a rule reads x's field and
//     y's target field.
//   - Keep Min as a one-way sentinel. Soft rules never touch a pair that is
//     excluded in either direction; hard rules only ever write Min.
//
// Lifecycle:
//   - New presets every off-diagonal cell to the Standard weight and the
//     diagonal to Min.
//   - ApplyRule/ApplyRules mutate in place, in caller order.
//   - After the build the matrix is read-only; searches share it freely.
//
// Complexity quicksheet:
//   - New: O(n log n + n²); At/Get/Put: O(1); ApplyRule: O(n²) checks;
//     Clone/Equal/String: O(n²).

package affinity

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/lvgroup/rules"
)

// Min is the hard-exclusion sentinel: a cell at Min means the ordered pair
// may never share a group.
const Min int16 = math.MinInt16

// Matrix is the square affinity matrix over a fixed element ordering.
//   - ids[i] is the element at index i (sorted, immutable).
//   - index is the inverse of ids.
//   - data holds n*n cells in row-major order.
type Matrix struct {
	n     int
	ids   []string
	index map[string]int
	data  []int16
}

// Compile-time assertion: rules write through the Grid surface.
var _ rules.Grid = (*Matrix)(nil)

// New fixes the element ordering of attrs and allocates the initial matrix.
// Off-diagonal cells are preset to the Standard weight, the diagonal to Min.
//
// Errors: ErrEmpty when attrs has no elements.
// Complexity: O(n log n + n²).
func New(attrs rules.Attributes) (*Matrix, error) {
	if len(attrs) == 0 {
		return nil, ErrEmpty
	}

	ids := make([]string, 0, len(attrs))
	for id := range attrs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	n := len(ids)
	m := &Matrix{
		n:     n,
		ids:   ids,
		index: make(map[string]int, n),
		data:  make([]int16, n*n),
	}
	base := rules.Standard.Score()
	for i, id := range ids {
		m.index[id] = i
		row := m.data[i*n : (i+1)*n]
		for j := range row {
			if i == j {
				row[j] = Min
			} else {
				row[j] = base
			}
		}
	}

	return m, nil
}

// Len returns the number of elements.
func (m *Matrix) Len() int { return m.n }

// IDs returns a copy of the fixed ordering.
func (m *Matrix) IDs() []string { return append([]string(nil), m.ids...) }

// ID returns the element id at index i. It panics if i is out of range.
func (m *Matrix) ID(i int) string { return m.ids[i] }

// Index returns the index of id in the fixed ordering.
func (m *Matrix) Index(id string) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// At returns cell (x, y) with bounds checking.
// Errors: ErrNilMatrix, ErrOutOfRange (wrapped with coordinates).
// Complexity: O(1).
func (m *Matrix) At(x, y int) (int16, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	if x < 0 || x >= m.n || y < 0 || y >= m.n {
		return 0, cellErrorf("At", x, y, ErrOutOfRange)
	}

	return m.data[x*m.n+y], nil
}

// Get returns cell (x, y) without bounds checking (rules.Grid).
func (m *Matrix) Get(x, y int) int16 { return m.data[x*m.n+y] }

// Put stores v at cell (x, y) without bounds checking (rules.Grid).
func (m *Matrix) Put(x, y int, v int16) { m.data[x*m.n+y] = v }

// excluded reports whether either direction of (x, y) is at Min.
func (m *Matrix) excluded(x, y int) bool {
	return m.data[x*m.n+y] == Min || m.data[y*m.n+x] == Min
}

// ApplyRule applies r to every ordered pair (x, y), the diagonal included.
// Soft rules skip pairs already excluded in either direction so an exclusion
// can never be rescued; hard rules are never skipped.
//
// Errors: the first configuration error from rules.Rule.CheckAndApply. The
// matrix may be partially updated when an error is returned and should be
// discarded.
// Complexity: O(n²) checks.
func (m *Matrix) ApplyRule(r rules.Rule, attrs rules.Attributes) error {
	hard := r.Severity.Hard()
	var x, y int
	for x = 0; x < m.n; x++ {
		for y = 0; y < m.n; y++ {
			if !hard && m.excluded(x, y) {
				continue
			}
			if err := r.CheckAndApply(x, y, m.ids[x], m.ids[y], attrs, m); err != nil {
				return err
			}
		}
	}

	return nil
}

// ApplyRules applies rs in order. Order matters: later soft rules do not see
// pairs excluded by earlier hard rules. The first failing rule aborts the
// build; cells written by earlier rules stay written.
// Complexity: O(|rs|·n²) checks.
func (m *Matrix) ApplyRules(rs []rules.Rule, attrs rules.Attributes) error {
	for i, r := range rs {
		if err := m.ApplyRule(r, attrs); err != nil {
			return fmt.Errorf("rule %d (%s): %w", i, r, err)
		}
	}

	return nil
}

// Clone returns a deep copy sharing no mutable state with m.
// Complexity: O(n²).
func (m *Matrix) Clone() *Matrix {
	cp := &Matrix{
		n:     m.n,
		ids:   append([]string(nil), m.ids...),
		index: make(map[string]int, m.n),
		data:  append([]int16(nil), m.data...),
	}
	for id, i := range m.index {
		cp.index[id] = i
	}

	return cp
}

// Equal reports whether m and o have the same ordering and identical cells.
// Two builds from the same input and rules are always Equal.
// Complexity: O(n²).
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.n != o.n {
		return false
	}
	for i := range m.ids {
		if m.ids[i] != o.ids[i] {
			return false
		}
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}

	return true
}

// String renders the matrix with an id header; excluded cells print as "x".
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("\t")
	sb.WriteString(strings.Join(m.ids, "\t"))
	sb.WriteByte('\n')
	var x, y int
	for x = 0; x < m.n; x++ {
		sb.WriteString(m.ids[x])
		for y = 0; y < m.n; y++ {
			sb.WriteByte('\t')
			if v := m.data[x*m.n+y]; v == Min {
				sb.WriteByte('x')
			} else {
				fmt.Fprintf(&sb, "%d", v)
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
