// Package document defines domain-specific errors
package document

import "errors"

var (
	ErrInvalidDocument   = errors.New("invalid flow document")
	ErrUnsupportedFormat = errors.New("unsupported document format")
)
