// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvgroup/matching"
)

func runMatrix(cmd *cobra.Command, args []string) error {
	doc, err := matching.LoadFile(args[0])
	if err != nil {
		return err
	}
	m, err := matching.New(matching.WithLogger(logger)).Build(doc)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprint(tw, m.String()); err != nil {
		return err
	}

	return tw.Flush()
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := matching.LoadFile(args[0])
	if err != nil {
		return err
	}
	logger.Debug("document valid", zap.String("file", args[0]))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d elements, %d rules, %d output sizes)\n",
		args[0], len(doc.Elements), len(doc.Rules), len(doc.Outputs))

	return err
}
