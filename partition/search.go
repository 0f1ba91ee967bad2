// SPDX-License-Identifier: MIT

// Package partition - exact backtracking search over anchors and quota buckets.
//
// Solve places every element exactly once by walking anchors (one candidate
// list per element) depth-first and trying, at each anchor, every feasible
// group "anchor + free partners" that a quota bucket can still hold.
//
// Rationale (succinct):
//  1. Anchor order is fixed up front by a stable sort on candidate-list
//     length. Ascending puts the most constrained element first so that
//     exclusions cut the tree early; equal lengths keep index order.
//  2. Candidates are enumerated lexicographically per size, sizes ascending,
//     then stably sorted by score descending. Good groups are tried first
//     and the whole order stays deterministic.
//  3. Quota resolution: exact size first, else the smallest larger size
//     with capacity. A group may occupy a slot sized for more members.
//  4. Search state (used set, placed counter, bucket table) is mutated in
//     place and restored on return. Siblings never see each other's state.
//  5. An anchor that still has free partners while the bucket table is
//     empty is a "no viable output" dead end. By default it stops the whole
//     search with ErrNoViableOutput; WithSkipNoViable turns it into a plain
//     dead branch.
//  6. Budgets: ctx is polled every 1024 nodes, WithNodeLimit caps the
//     node count exactly.
//
// Invariants:
//   - A completion replaces the incumbent only when strictly greater, so
//     ties keep the first one found.
//   - Groups come out in anchor order; each group starts with its anchor.
//   - The Scorer is only read. Concurrent Solve calls may share it.
//
// Complexity:
//   - Worst case exponential in n and in the largest quota size (no memo).
//   - Per anchor: O(Σ_k C(f, k-1)·k²) scoring for f free partners.
//   - Memory: O(n) state + candidate lists along the current path.

package partition

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// ctxCheckMask sets how often the context is polled (every 1024 nodes).
const ctxCheckMask = 1023

// Scorer is the read-only view of an affinity matrix the search needs.
// *affinity.Matrix implements it.
type Scorer interface {
	// Len returns the number of elements.
	Len() int
	// CalcScore returns (false, math.MinInt32) for a group with an excluded
	// ordered pair, else (true, sum of both directions of every pair).
	CalcScore(group []int) (bool, int32)
	// PossibleGroups returns one candidate list per element: the element
	// itself followed by every bidirectionally non-excluded partner.
	PossibleGroups() [][]int
}

// Result is the outcome of one search.
type Result struct {
	// Score is the aggregate score; math.MinInt32 when Feasible is false.
	Score int32
	// Groups covers every element exactly once when Feasible. Groups appear
	// in anchor order; each group starts with its anchor.
	Groups [][]int
	// Feasible reports whether a full partition exists.
	Feasible bool
	// Nodes counts visited search nodes.
	Nodes int64
	// Order is the anchor order the search used.
	Order Order
}

// candidate is a feasible group around the current anchor.
type candidate struct {
	members []int
	score   int32
}

// branch is the best completion found below a node.
type branch struct {
	score  int32
	groups [][]int
	ok     bool
}

var infeasible = branch{score: math.MinInt32}

// engine holds the search state of one Solve call. used and quota are
// marked before descending and restored after, so sibling branches never
// see each other's speculative state.
type engine struct {
	s       Scorer
	n       int
	anchors [][]int

	used   []bool
	placed int
	quota  table

	ctx          context.Context
	nodes        int64
	nodeLimit    int64
	skipNoViable bool
	sawNoViable  bool
}

// tick counts a node and enforces the node budget and sparse context polls.
func (e *engine) tick() error {
	e.nodes++
	if e.nodeLimit > 0 && e.nodes > e.nodeLimit {
		return fmt.Errorf("%w: %d", ErrNodeLimit, e.nodeLimit)
	}
	if e.nodes&ctxCheckMask == 0 {
		if err := e.ctx.Err(); err != nil {
			return fmt.Errorf("partition: search interrupted: %w", err)
		}
	}

	return nil
}

// noViable handles a branch that ran out of quota buckets: fatal unless
// skipNoViable is set, in which case the branch is only recorded.
func (e *engine) noViable() (branch, error) {
	e.sawNoViable = true
	if !e.skipNoViable {
		return branch{}, fmt.Errorf("%w: %d of %d elements placed", ErrNoViableOutput, e.placed, e.n)
	}

	return infeasible, nil
}

// candidates enumerates anchor + every (k-1)-subset of free for
// k = 2..maxSize, keeps the feasible ones, and orders them by score
// descending. Enumeration is lexicographic per k, k ascending; the sort is
// stable so that order decides between equal scores.
func (e *engine) candidates(anchor int, free []int, maxSize int) []candidate {
	var (
		out   []candidate
		group = make([]int, 0, maxSize)
	)
	for k := 2; k <= maxSize; k++ {
		r := k - 1
		if r > len(free) {
			break
		}
		combinations(len(free), r, func(idx []int) {
			group = append(group[:0], anchor)
			for _, i := range idx {
				group = append(group, free[i])
			}
			if ok, score := e.s.CalcScore(group); ok {
				out = append(out, candidate{members: append([]int(nil), group...), score: score})
			}
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })

	return out
}

// search returns the best completion from anchor position pos onward.
func (e *engine) search(pos int) (branch, error) {
	if e.placed == e.n {
		return branch{ok: true}, nil
	}
	if err := e.tick(); err != nil {
		return branch{}, err
	}
	if pos >= len(e.anchors) {
		return infeasible, nil
	}

	item := e.anchors[pos]
	if len(item) < 2 {
		return infeasible, nil
	}
	anchor := item[0]
	if e.used[anchor] {
		return e.search(pos + 1)
	}

	free := make([]int, 0, len(item)-1)
	for _, c := range item[1:] {
		if !e.used[c] {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		return infeasible, nil
	}

	maxSize := e.quota.maxSize()
	if maxSize == 0 {
		return e.noViable()
	}

	best := infeasible
	// every candidate fits: maxSize is itself a bucket with capacity
	for _, c := range e.candidates(anchor, free, maxSize) {
		bi := e.quota.resolve(len(c.members))
		e.quota.take(bi)
		e.mark(c.members, true)
		sub, err := e.search(pos + 1)
		e.mark(c.members, false)
		e.quota.release(bi)
		if err != nil {
			return branch{}, err
		}
		if !sub.ok {
			continue
		}

		total := c.score + sub.score
		if !best.ok || total > best.score {
			groups := make([][]int, 0, len(sub.groups)+1)
			groups = append(groups, c.members)
			best = branch{score: total, groups: append(groups, sub.groups...), ok: true}
		}
	}

	return best, nil
}

// mark flips the used flag of members and keeps the placed counter in sync.
func (e *engine) mark(members []int, used bool) {
	for _, m := range members {
		e.used[m] = used
	}
	if used {
		e.placed += len(members)
	} else {
		e.placed -= len(members)
	}
}

// sortAnchors orders candidate lists by length; equal lengths keep index order.
func sortAnchors(anchors [][]int, order Order) {
	sort.SliceStable(anchors, func(i, j int) bool {
		if order == Descending {
			return len(anchors[i]) > len(anchors[j])
		}

		return len(anchors[i]) < len(anchors[j])
	})
}

// combinations calls visit with every r-subset of [0, n) as an ascending
// index slice, in lexicographic order. The slice is reused between calls.
// Requires 1 <= r <= n.
func combinations(n, r int, visit func(idx []int)) {
	idx := make([]int, r)
	for i := range idx {
		idx[i] = i
	}
	for {
		visit(idx)
		i := r - 1
		for i >= 0 && idx[i] == i+n-r {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < r; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Solve finds a maximum-score partition of every element of s into groups
// that fit q. The matrix behind s must not be mutated during the call;
// concurrent Solve calls on the same Scorer are safe.
//
// A branch whose anchor still has free partners after every quota bucket is
// used up fails the search with ErrNoViableOutput. With WithSkipNoViable
// such branches are abandoned instead, and ErrNoViableOutput is returned only
// if no feasible partition was found at all.
//
// An infeasible instance otherwise returns
// Result{Feasible: false, Score: math.MinInt32} and a nil error.
//
// Errors: ErrNilScorer, quota validation errors (ErrNoOutputs,
// ErrInvalidSize, ErrInvalidCount), ErrNoViableOutput, ErrNodeLimit, and
// the context error (wrapped) when ctx is done.
// Complexity: exponential in n in the worst case; see the file header.
func Solve(ctx context.Context, s Scorer, q Quota, opts ...Option) (Result, error) {
	if s == nil {
		return Result{}, ErrNilScorer
	}
	if err := ValidateQuota(q); err != nil {
		return Result{}, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := ctx.Err(); err != nil {
		return Result{Order: o.order}, fmt.Errorf("partition: search interrupted: %w", err)
	}

	pg := s.PossibleGroups()
	anchors := make([][]int, len(pg))
	copy(anchors, pg)
	sortAnchors(anchors, o.order)

	n := s.Len()
	e := engine{
		s:            s,
		n:            n,
		anchors:      anchors,
		used:         make([]bool, n),
		quota:        newTable(q),
		ctx:          ctx,
		nodeLimit:    o.nodeLimit,
		skipNoViable: o.skipNoViable,
	}

	b, err := e.search(0)
	res := Result{Nodes: e.nodes, Order: o.order}
	if err != nil {
		res.Score = math.MinInt32
		return res, err
	}
	if !b.ok {
		res.Score = math.MinInt32
		if e.sawNoViable {
			return res, ErrNoViableOutput
		}

		return res, nil
	}
	res.Score = b.score
	res.Groups = b.groups
	res.Feasible = true
	if res.Groups == nil {
		res.Groups = [][]int{}
	}

	return res, nil
}
