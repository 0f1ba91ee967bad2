// SPDX-License-Identifier: MIT

// Package rules defines declarative compatibility rules and the severity
// weights they contribute to an affinity matrix.
//
// A Rule compares one field of a source element with one field of a target
// element. Soft severities (Prefer, Standard, PreferExclude) add their weight
// to the matrix cell of the ordered pair when the comparison holds. Hard
// severities establish exclusions:
//
//   - ForceExclude excludes every pair that satisfies the comparison.
//   - Force excludes every pair that does NOT satisfy it, so that only
//     matching pairs may ever share a group. Force never rewards a pair.
//
// Rules are directional: Check reads the source element's Field and the target
// element's TargetField, so an affinity matrix built from rules is in general
// not symmetric.
//
// Missing elements or fields are configuration errors (ErrUnknownElement,
// ErrMissingField); callers are expected to stop the build on them.
package rules
