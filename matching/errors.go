// SPDX-License-Identifier: MIT

package matching

import "errors"

var (
	// ErrDecode indicates that the input document could not be parsed.
	ErrDecode = errors.New("matching: decode document")

	// ErrInvalidDocument indicates a structurally invalid document
	// (missing elements or outputs, empty rule fields, undeclared fields).
	ErrInvalidDocument = errors.New("matching: invalid document")

	// ErrUnknownFormat indicates an unsupported document format or file extension.
	ErrUnknownFormat = errors.New("matching: unknown document format")

	// ErrInvalidResult indicates that a search returned a partition that does
	// not pass partition.Validate. It signals a bug, not bad input.
	ErrInvalidResult = errors.New("matching: search returned an invalid partition")
)
