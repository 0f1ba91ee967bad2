// SPDX-License-Identifier: MIT

package affinity

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when the attribute data holds no elements.
	ErrEmpty = errors.New("affinity: no elements")

	// ErrOutOfRange indicates a row or column index outside [0, n).
	ErrOutOfRange = errors.New("affinity: index out of range")

	// ErrNilMatrix indicates a nil *Matrix was used.
	ErrNilMatrix = errors.New("affinity: nil matrix")
)

// cellErrorf wraps err with the method name and coordinates.
func cellErrorf(method string, x, y int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, x, y, err)
}
