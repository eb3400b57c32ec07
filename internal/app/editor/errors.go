// Package editor defines domain-specific errors
package editor

import "errors"

var (
	ErrConnectionRejected = errors.New("connection rejected")
	ErrUnknownPort        = errors.New("unknown port")
)
