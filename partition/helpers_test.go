// Package partition_test helpers: matrix fixtures and a brute-force reference
// solver used to cross-check Solve on small random instances.
package partition_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvgroup/affinity"
	"github.com/katalvlaran/lvgroup/partition"
	"github.com/katalvlaran/lvgroup/rules"
	"github.com/stretchr/testify/require"
)

// blank returns n elements with ids e00, e01, ... (sorted in index order)
// and no fields.
func blank(n int) rules.Attributes {
	attrs := make(rules.Attributes, n)
	for i := 0; i < n; i++ {
		attrs[fmt.Sprintf("e%02d", i)] = map[string]string{}
	}

	return attrs
}

// uniform returns an n×n matrix with every off-diagonal cell at the Standard weight.
func uniform(t testing.TB, n int) *affinity.Matrix {
	t.Helper()
	m, err := affinity.New(blank(n))
	require.NoError(t, err)

	return m
}

// fromCells builds a matrix whose off-diagonal cells are copied from cells.
func fromCells(t testing.TB, cells [][]int16) *affinity.Matrix {
	t.Helper()
	m := uniform(t, len(cells))
	for x := range cells {
		for y := range cells[x] {
			if x != y {
				m.Put(x, y, cells[x][y])
			}
		}
	}

	return m
}

// exclude marks the unordered pair (a, b) as excluded in both directions.
func exclude(m *affinity.Matrix, a, b int) {
	m.Put(a, b, affinity.Min)
	m.Put(b, a, affinity.Min)
}

// random builds an n×n matrix with cells in [-3, 3] and roughly pEx of the
// unordered pairs excluded.
func random(t testing.TB, rng *rand.Rand, n int, pEx float64) *affinity.Matrix {
	t.Helper()
	m := uniform(t, n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			if x != y {
				m.Put(x, y, int16(rng.Intn(7)-3))
			}
		}
	}
	for x := 0; x < n; x++ {
		for y := x + 1; y < n; y++ {
			if rng.Float64() < pEx {
				exclude(m, x, y)
			}
		}
	}

	return m
}

// bruteForce enumerates every set partition of m's elements into blocks of
// size >= 2 that fit q (exact size, else the smallest larger size with room)
// and returns the optimum (ok=false if none is feasible).
func bruteForce(m *affinity.Matrix, q partition.Quota) (int32, bool) {
	n := m.Len()
	used := make([]bool, n)
	left := q.Clone()
	slot := func(size int) int {
		best := 0
		for s, c := range left {
			if c != 0 && s >= size && (best == 0 || s < best) {
				best = s
			}
		}
		return best
	}
	var rec func(remaining int) (int32, bool)
	rec = func(remaining int) (int32, bool) {
		if remaining == 0 {
			return 0, true
		}
		first := -1
		for i := 0; i < n; i++ {
			if !used[i] {
				first = i
				break
			}
		}
		var rest []int
		for i := first + 1; i < n; i++ {
			if !used[i] {
				rest = append(rest, i)
			}
		}

		best, found := int32(math.MinInt32), false
		for mask := 1; mask < 1<<len(rest); mask++ {
			group := []int{first}
			for b := range rest {
				if mask&(1<<b) != 0 {
					group = append(group, rest[b])
				}
			}
			s := slot(len(group))
			if s == 0 {
				continue
			}
			ok, score := m.CalcScore(group)
			if !ok {
				continue
			}
			if left[s] > 0 {
				left[s]--
			}
			for _, g := range group {
				used[g] = true
			}
			sub, subOK := rec(remaining - len(group))
			for _, g := range group {
				used[g] = false
			}
			if left[s] >= 0 {
				left[s]++
			}
			if subOK && (!found || score+sub > best) {
				best, found = score+sub, true
			}
		}

		return best, found
	}

	return rec(n)
}
