// SPDX-License-Identifier: MIT

// Package affinity builds the pairwise score matrix ("connections") that the
// partition search optimises over.
//
// Lifecycle:
//
//  1. New fixes the element ordering (sorted ids) and allocates an n×n
//     int16 matrix: off-diagonal cells start at the Standard weight (+1),
//     diagonal cells at Min.
//  2. ApplyRule / ApplyRules mutate the matrix in caller order. Min is a
//     one-way sentinel: soft rules skip any pair already excluded in either
//     direction, only hard rules may write to such cells.
//  3. CalcScore and PossibleGroups read the finished matrix. After the build
//     phase the matrix is read-only and may be shared across goroutines.
//
// The matrix is not symmetric in general: cell (x, y) holds what rules said
// about x looking at y.
//
// Storage is a flat row-major buffer (offset = x*n + y).
//
// Complexity:
//   - New: O(n log n + n²); ApplyRule: O(n²·cost(Check)).
//   - CalcScore: O(k²) for a group of k; PossibleGroups: O(n²).
package affinity
