package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is the root of every domain validation error; callers
	// that do not care which rule failed can match on it alone.
	ErrValidation = errors.New("validation failed")

	// ErrItemTitleEmpty is returned when an item has no title.
	ErrItemTitleEmpty = fmt.Errorf("%w: item title cannot be empty", ErrValidation)

	// ErrInvalidDifficulty is returned when a difficulty is not one of
	// Easy, Medium, or Hard.
	ErrInvalidDifficulty = fmt.Errorf("%w: invalid difficulty", ErrValidation)

	// ErrInvalidRating is returned when a rating is not one of
	// again, hard, good, or easy.
	ErrInvalidRating = fmt.Errorf("%w: invalid rating", ErrValidation)

	// ErrInvalidTier is returned when a solution tier is not one of
	// brute, optimized, or best.
	ErrInvalidTier = fmt.Errorf("%w: invalid solution tier", ErrValidation)

	// ErrNotebookNameEmpty is returned when a notebook has no name.
	ErrNotebookNameEmpty = fmt.Errorf("%w: notebook name cannot be empty", ErrValidation)

	// ErrInvalidIntervalConfig is returned when an interval configuration
	// contains a non-positive knob.
	ErrInvalidIntervalConfig = fmt.Errorf("%w: interval configuration values must be positive", ErrValidation)
)
