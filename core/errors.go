package core

import "errors"

// ErrInvalidArgument is returned when operand lengths differ or when a
// collection that must be non-empty is empty.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrDegenerateInput is returned when cosine similarity is requested for a
// vector with zero norm, where the angle is undefined.
var ErrDegenerateInput = errors.New("degenerate input")
