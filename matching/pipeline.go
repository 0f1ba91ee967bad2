// SPDX-License-Identifier: MIT

package matching

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvgroup/affinity"
	"github.com/katalvlaran/lvgroup/partition"
)

// Report is the outcome of Pipeline.Process.
type Report struct {
	// RunID identifies the run in logs and output.
	RunID string `json:"run_id"`
	// Score is the winning aggregate score; math.MinInt32 when infeasible.
	Score int32 `json:"score"`
	// Feasible reports whether any order found a full partition.
	Feasible bool `json:"feasible"`
	// Order is the anchor order that produced Groups.
	Order partition.Order `json:"order"`
	// Groups lists the element ids of each group, anchor first.
	Groups [][]string `json:"groups"`
	// Indices mirrors Groups as matrix indices.
	Indices [][]int `json:"indices"`
	// Nodes is the total number of search nodes across all orders.
	Nodes int64 `json:"nodes"`
}

// Option configures a Pipeline.
type Option func(p *Pipeline)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithOrders sets the anchor orders to search, in tie-break priority.
// Duplicates are dropped; an empty list keeps the default.
func WithOrders(orders ...partition.Order) Option {
	return func(p *Pipeline) {
		var uniq []partition.Order
		seen := make(map[partition.Order]bool, len(orders))
		for _, o := range orders {
			if !seen[o] {
				seen[o] = true
				uniq = append(uniq, o)
			}
		}
		if len(uniq) > 0 {
			p.orders = uniq
		}
	}
}

// WithSearchOptions adds options passed to every partition.Solve call.
// partition.WithOrder is overridden per search.
func WithSearchOptions(opts ...partition.Option) Option {
	return func(p *Pipeline) { p.search = append(p.search, opts...) }
}

// Pipeline runs documents through matrix construction and search.
// It is safe for concurrent use once built.
type Pipeline struct {
	log    *zap.Logger
	orders []partition.Order
	search []partition.Option
}

// New returns a Pipeline searching Ascending then Descending by default.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		log:    zap.NewNop(),
		orders: []partition.Order{partition.Ascending, partition.Descending},
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Orders returns the configured search orders.
func (p *Pipeline) Orders() []partition.Order {
	return append([]partition.Order(nil), p.orders...)
}

// Build validates doc and returns its affinity matrix with every rule applied.
//
// Errors: ErrInvalidDocument, rules.ErrUnknownElement, rules.ErrMissingField.
func (p *Pipeline) Build(doc *Document) (*affinity.Matrix, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	m, err := affinity.New(doc.Elements)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := m.ApplyRules(doc.Rules, doc.Elements); err != nil {
		return nil, err
	}
	if ce := p.log.Check(zap.DebugLevel, "affinity matrix built"); ce != nil {
		ce.Write(
			zap.Int("elements", m.Len()),
			zap.Int("rules", len(doc.Rules)),
			zap.String("matrix", m.String()),
		)
	}

	return m, nil
}

// Process builds the matrix once and searches it under every configured
// order concurrently. The highest score wins; equal scores go to the order
// configured first. A feasible winner is re-checked with partition.Validate.
//
// An instance without any feasible partition yields Feasible=false,
// Score=math.MinInt32 and a nil error. The first search error cancels the
// remaining searches and is returned.
func (p *Pipeline) Process(ctx context.Context, doc *Document) (Report, error) {
	rep := Report{RunID: uuid.NewString(), Score: math.MinInt32}
	log := p.log.With(zap.String("run_id", rep.RunID))

	m, err := p.Build(doc)
	if err != nil {
		log.Warn("build failed", zap.Error(err))
		return rep, err
	}

	results := make([]partition.Result, len(p.orders))
	g, gctx := errgroup.WithContext(ctx)
	for i, order := range p.orders {
		i, order := i, order
		opts := append(append([]partition.Option(nil), p.search...), partition.WithOrder(order))
		g.Go(func() error {
			res, err := partition.Solve(gctx, m, doc.Outputs, opts...)
			if err != nil {
				return fmt.Errorf("%s search: %w", order, err)
			}
			results[i] = res
			log.Debug("search finished",
				zap.Stringer("order", order),
				zap.Bool("feasible", res.Feasible),
				zap.Int32("score", res.Score),
				zap.Int64("nodes", res.Nodes),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("search failed", zap.Error(err))
		return rep, err
	}

	best := -1
	for i, res := range results {
		rep.Nodes += res.Nodes
		if !res.Feasible {
			continue
		}
		if best < 0 || res.Score > results[best].Score {
			best = i
		}
	}
	if best < 0 {
		rep.Order = p.orders[0]
		log.Info("no feasible partition", zap.Int64("nodes", rep.Nodes))
		return rep, nil
	}

	win := results[best]
	if err := partition.Validate(m, doc.Outputs, win.Groups); err != nil {
		return rep, fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}
	rep.Score = win.Score
	rep.Feasible = true
	rep.Order = win.Order
	rep.Indices = win.Groups
	rep.Groups = make([][]string, len(win.Groups))
	for gi, grp := range win.Groups {
		ids := make([]string, len(grp))
		for j, idx := range grp {
			ids[j] = m.ID(idx)
		}
		rep.Groups[gi] = ids
	}
	log.Info("partition found",
		zap.Int32("score", rep.Score),
		zap.Stringer("order", rep.Order),
		zap.Int("groups", len(rep.Groups)),
		zap.Int64("nodes", rep.Nodes),
	)

	return rep, nil
}
