// SPDX-License-Identifier: MIT

// Package lvgroup partitions a set of elements into groups of bounded sizes
// so that the total pairwise affinity is maximal.
//
// Affinities come from declarative compatibility rules evaluated over element
// attributes. Hard rules forbid pairs, soft rules raise or lower a pair score.
// The search is exact: it returns a best partition or reports that none
// exists.
//
// Packages:
//
//	rules/      - rule severities, operands, Check/Apply over a cell grid
//	affinity/   - the n×n score matrix, rule application, group scoring
//	partition/  - exact backtracking search under an output-size quota
//	matching/   - document decoding (JSON/YAML), validation, two-order pipeline
//	cmd/grouper - command line front end
//
// Quick start:
//
//	doc, _ := matching.LoadFile("teams.yaml")
//	rep, err := matching.New().Process(ctx, doc)
//	if err != nil { ... }
//	for _, g := range rep.Groups { fmt.Println(g) }
package lvgroup
