// SPDX-License-Identifier: MIT

package partition

import (
	"fmt"
	"strings"
)

// Order selects how anchors are sorted by candidate-list length.
type Order int

const (
	// Ascending processes the most constrained anchor first (default).
	Ascending Order = iota
	// Descending processes the least constrained anchor first.
	Descending
)

// String implements fmt.Stringer.
func (o Order) String() string {
	switch o {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Order) MarshalText() ([]byte, error) {
	switch o {
	case Ascending, Descending:
		return []byte(o.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOrder, int(o))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseOrder.
func (o *Order) UnmarshalText(text []byte) error {
	v, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = v

	return nil
}

// ParseOrder accepts "asc", "ascending", "desc" and "descending" (any case).
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
	}
}

// Option configures Solve.
type Option func(o *options)

type options struct {
	order     Order
	nodeLimit    int64
	skipNoViable bool
}

func defaultOptions() options {
	return options{order: Ascending}
}

// WithOrder sets the anchor order.
func WithOrder(order Order) Option {
	return func(o *options) { o.order = order }
}

// WithNodeLimit aborts the search with ErrNodeLimit after n visited nodes.
// n <= 0 means unlimited.
func WithNodeLimit(n int64) Option {
	return func(o *options) { o.nodeLimit = n }
}

// WithSkipNoViable abandons a branch that runs out of quota buckets and
// keeps searching, instead of failing the whole search with
// ErrNoViableOutput. Solve still returns ErrNoViableOutput when no feasible
// partition is found and at least one branch was abandoned this way.
func WithSkipNoViable() Option {
	return func(o *options) { o.skipNoViable = true }
}
