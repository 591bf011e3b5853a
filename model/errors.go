package model

import "github.com/pkg/errors"

var (
	// ErrNotInitialized is returned when a Grid is used before Init
	ErrNotInitialized = errors.New("grid is not initialized")
	// ErrInvalidDimensions is returned by Init for a non-positive width or height
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	// ErrInvalidPattern is returned for an empty or ragged template, or a negative padding
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrUnknownPattern is returned when a name is missing from the pattern library
	ErrUnknownPattern = errors.New("unknown pattern")
)
