// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvgroup/matching"
	"github.com/katalvlaran/lvgroup/partition"
)

var (
	errInfeasible = errors.New("no partition satisfies the rules and outputs")
	errTimeout    = errors.New("timeout")
	errBadFlag    = errors.New("invalid flag value")
)

// parseOrders maps the --order flag to search orders.
func parseOrders(s string) ([]partition.Order, error) {
	if strings.EqualFold(strings.TrimSpace(s), "both") {
		return []partition.Order{partition.Ascending, partition.Descending}, nil
	}
	o, err := partition.ParseOrder(s)
	if err != nil {
		return nil, fmt.Errorf("%w: --order: %w", errBadFlag, err)
	}

	return []partition.Order{o}, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	orders, err := parseOrders(orderFlag)
	if err != nil {
		return err
	}
	if outputFlag != "text" && outputFlag != "json" {
		return fmt.Errorf("%w: --output %q", errBadFlag, outputFlag)
	}

	doc, err := matching.LoadFile(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	searchOpts := []partition.Option{partition.WithNodeLimit(nodeLimit)}
	if !failFast {
		searchOpts = append(searchOpts, partition.WithSkipNoViable())
	}
	p := matching.New(
		matching.WithLogger(logger),
		matching.WithOrders(orders...),
		matching.WithSearchOptions(searchOpts...),
	)

	logger.Info("solving", zap.String("file", args[0]), zap.Int("elements", len(doc.Elements)))
	rep, err := p.Process(ctx, doc)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s: %w", errTimeout, timeout, err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if outputFlag == "json" {
		if err := writeJSON(out, rep); err != nil {
			return err
		}
	} else if err := writeText(out, rep); err != nil {
		return err
	}
	if !rep.Feasible {
		return errInfeasible
	}

	return nil
}

func writeJSON(w io.Writer, rep matching.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rep)
}

func writeText(w io.Writer, rep matching.Report) error {
	if !rep.Feasible {
		_, err := fmt.Fprintf(w, "run %s: no feasible partition (%d nodes)\n", rep.RunID, rep.Nodes)
		return err
	}
	fmt.Fprintf(w, "run %s: score %d, order %s, %d nodes\n", rep.RunID, rep.Score, rep.Order, rep.Nodes)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tSIZE\tMEMBERS")
	for i, g := range rep.Groups {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", i+1, len(g), strings.Join(g, ", "))
	}

	return tw.Flush()
}
