// Package errs provides common errors thrown in the app that are expected to be caught upstream
package errs

import "errors"

var (
	// ErrInvalidArgument marks a field that fails its static constraint at construction time.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIllegalState marks a single-use builder used after Build.
	ErrIllegalState = errors.New("illegal state")
	// ErrMalformed marks an encoded payload that cannot be decoded into a valid config.
	ErrMalformed = errors.New("malformed payload")

	ErrHyprNotRunning = errors.New("hyprland IPC not available")
	ErrNotFound       = errors.New("not found")
)
