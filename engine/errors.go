// SPDX-License-Identifier: MIT

package engine

import "errors"

var (
	// ErrNilContext indicates a nil operator context.
	ErrNilContext = errors.New("engine: nil operator context")

	// ErrNilTable indicates a nil symbol table.
	ErrNilTable = errors.New("engine: nil symbol table")

	// ErrNilDictionary indicates a nil dictionary.
	ErrNilDictionary = errors.New("engine: nil dictionary")

	// ErrContextMismatch indicates a table or dictionary built over another context.
	ErrContextMismatch = errors.New("engine: table or dictionary built over a different context")

	// ErrInvalidIndex indicates an unknown index kind or a negative level.
	ErrInvalidIndex = errors.New("engine: invalid matrix index")
)
