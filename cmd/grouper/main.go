// SPDX-License-Identifier: MIT

// Command grouper partitions the elements of a matching document into
// scored groups.
//
//	grouper solve teams.yaml --order both --timeout 30s
//	grouper matrix teams.yaml
//	grouper validate teams.json
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/lvgroup/matching"
	"github.com/katalvlaran/lvgroup/partition"
	"github.com/katalvlaran/lvgroup/rules"
)

var (
	// Global flags
	verbose bool

	// solve flags
	orderFlag  string
	timeout    time.Duration
	nodeLimit  int64
	failFast   bool
	outputFlag string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "grouper",
	Short: "Partition elements into scored groups under compatibility rules",
	Long: `grouper reads a matching document (elements with attributes, compatibility
rules and allowed output sizes) and finds the partition of all elements into
groups with the highest total affinity score.

Documents are JSON (.json) or YAML (.yaml, .yml).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve FILE",
	Short: "Find the best partition of a document",
	Long: `Builds the affinity matrix from the document rules and searches for the
maximum-score partition. With --order both, the ascending and descending
anchor orders run concurrently and the better result is kept (ascending on
ties).`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

var matrixCmd = &cobra.Command{
	Use:   "matrix FILE",
	Short: "Print the affinity matrix after all rules are applied",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatrix,
}

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Decode and validate a document without searching",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	solveCmd.Flags().StringVar(&orderFlag, "order", "both", "Anchor order: asc, desc or both")
	solveCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Search timeout (0 disables)")
	solveCmd.Flags().Int64Var(&nodeLimit, "node-limit", 0, "Abort after this many search nodes (0 disables)")
	solveCmd.Flags().BoolVar(&failFast, "fail-fast", true, "Abort at the first branch without a usable output size (false skips such branches)")
	solveCmd.Flags().StringVarP(&outputFlag, "output", "o", "text", "Output format: text or json")

	rootCmd.AddCommand(solveCmd, matrixCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

// describe prefixes err with the kind of failure a user can act on.
func describe(err error) string {
	switch {
	case errors.Is(err, errInfeasible):
		return "infeasible: " + err.Error()
	case errors.Is(err, partition.ErrNoViableOutput):
		return "no viable output: " + err.Error()
	case errors.Is(err, partition.ErrNodeLimit):
		return "search budget exhausted: " + err.Error()
	case errors.Is(err, errTimeout):
		return "search timed out: " + err.Error()
	case errors.Is(err, matching.ErrDecode),
		errors.Is(err, matching.ErrInvalidDocument),
		errors.Is(err, matching.ErrUnknownFormat),
		errors.Is(err, rules.ErrUnknownElement),
		errors.Is(err, rules.ErrMissingField):
		return "configuration error: " + err.Error()
	default:
		return err.Error()
	}
}
