// Package history defines domain-specific errors
package history

import "errors"

var (
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
	ErrCorruptSnapshot = errors.New("corrupt history snapshot")
)
