// Package domain defines the core task domain entities and types.
package domain

import (
	"github.com/allisson/taskhub/internal/errors"
)

// Domain-specific errors for task operations.
var (
	// ErrTaskNotFound indicates the requested task does not exist.
	ErrTaskNotFound = errors.Wrap(errors.ErrNotFound, "task not found")
)
