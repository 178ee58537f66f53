package dynamo

import "errors"

var (
	// ErrMissingSource indicates neither a star nor a central mass was given.
	ErrMissingSource = errors.New("dynamo: star or central mass required")

	// ErrMissingRunMode indicates Run got neither a step count nor an end time.
	ErrMissingRunMode = errors.New("dynamo: steps or end time required")

	// ErrConflictingRunMode indicates Run got both a step count and an end time.
	ErrConflictingRunMode = errors.New("dynamo: steps and end time are mutually exclusive")

	// ErrInvalidSteps indicates a negative step count.
	ErrInvalidSteps = errors.New("dynamo: steps must be positive")
)
