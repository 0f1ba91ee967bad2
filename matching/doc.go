// SPDX-License-Identifier: MIT

// Package matching ties the algorithm packages into one run: it decodes an
// input document (element attributes, rules, output quotas), builds the
// affinity matrix, searches it under one or more anchor orders and reports
// the best partition by element id.
//
//	doc, err := matching.LoadFile("teams.yaml")
//	if err != nil { ... }
//	p := matching.New(matching.WithLogger(logger))
//	rep, err := p.Process(ctx, doc)
//
// The algorithm packages never log; Pipeline logs through the injected
// *zap.Logger (a no-op logger by default).
package matching
