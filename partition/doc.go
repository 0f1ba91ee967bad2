// SPDX-License-Identifier: MIT

// Package partition finds a maximum-score partition of all elements of an
// affinity matrix into groups whose sizes fit a quota table.
//
// Solve runs an exact depth-first backtracking search:
//
//  1. Anchors are the candidate lists from Scorer.PossibleGroups, ordered
//     by list length (Ascending = most-constrained-first, the default).
//  2. At each anchor every group "anchor + (k-1) still-free partners" is
//     enumerated for k = 2..largest available quota size; infeasible groups
//     (any excluded ordered pair) are dropped.
//  3. Candidate groups are tried best-score-first; each takes the quota
//     bucket of its exact size, or else the smallest larger bucket still
//     available (a group may occupy a slot sized for more members).
//  4. The best total over all candidates wins; a strictly greater total is
//     required to replace the incumbent, so ties keep the first found.
//
// No full partition is a normal outcome: Result.Feasible is false and
// Result.Score is math.MinInt32. Running out of quota buckets is not: a
// branch that still has elements to place but no bucket left fails the
// search with ErrNoViableOutput, which points at the quota table rather than
// at the exclusions. WithSkipNoViable lets the search step over such
// branches and keep looking.
//
// Complexity:
//   - Worst case exponential in n and in the largest quota size; there is no
//     memoisation. Practical inputs are tens of elements.
//   - Memory: O(n) search state + O(depth·C) candidate lists.
//
// The search has no internal stopping rule. Callers bound it with a context
// deadline (checked every 1024 nodes) or WithNodeLimit.
package partition
