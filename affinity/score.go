// SPDX-License-Identifier: MIT

package affinity

import "math"

// CalcScore sums cell (a, b) over every ordered pair of distinct members of
// group, both directions counted. If any such cell is Min the group is
// infeasible and CalcScore returns (false, math.MinInt32) immediately.
//
// Indices must be valid; duplicates are treated as the same member.
// Complexity: O(k²) for k = len(group).
func (m *Matrix) CalcScore(group []int) (bool, int32) {
	var (
		sum  int32
		i, j int
		a, b int
		v    int16
	)
	for i = 0; i < len(group); i++ {
		a = group[i]
		for j = 0; j < len(group); j++ {
			b = group[j]
			if a == b {
				continue
			}
			v = m.data[a*m.n+b]
			if v == Min {
				return false, math.MinInt32
			}
			sum += int32(v)
		}
	}

	return true, sum
}

// PossibleGroups returns, for every row, a candidate list whose first entry is
// the row itself followed by every col that is not excluded in either
// direction, in ascending order. This narrows the search per anchor; it is
// not a solution.
// Complexity: O(n²).
func (m *Matrix) PossibleGroups() [][]int {
	out := make([][]int, m.n)
	var row, col int
	for row = 0; row < m.n; row++ {
		cand := make([]int, 1, m.n)
		cand[0] = row
		for col = 0; col < m.n; col++ {
			if col == row || m.excluded(row, col) {
				continue
			}
			cand = append(cand, col)
		}
		out[row] = cand
	}

	return out
}
