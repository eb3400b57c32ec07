// Package registry defines domain-specific errors
package registry

import "errors"

var (
	ErrUnknownKind   = errors.New("unknown node kind")
	ErrInvalidSpec   = errors.New("invalid kind spec")
	ErrInvalidConfig = errors.New("invalid registry configuration")
)
