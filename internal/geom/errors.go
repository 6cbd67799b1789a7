package geom

import "errors"

// Validation errors for fastener patterns.
var (
	// ErrBadGrid indicates rows or columns below 1.
	ErrBadGrid = errors.New("geom: rows and cols must be at least 1")

	// ErrBadSpacing indicates a non-positive fastener spacing.
	ErrBadSpacing = errors.New("geom: spacing must be positive")
)
