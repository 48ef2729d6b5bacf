package formula

import "errors"

// Domain errors for the formula system.
var (
	// ErrEmptyName indicates a formula was built without a name.
	ErrEmptyName = errors.New("formula name cannot be empty")

	// ErrNoHandler indicates a formula was built without a handler.
	ErrNoHandler = errors.New("formula has no handler")

	// ErrInvalidField indicates a field descriptor without a name.
	ErrInvalidField = errors.New("formula field must be named")

	// ErrFormulaNotFound indicates the requested formula is not registered.
	ErrFormulaNotFound = errors.New("formula not found")

	// ErrFormulaExists indicates a formula with the same name is registered.
	ErrFormulaExists = errors.New("formula already exists")

	// ErrInvalidInput indicates the input could not be decoded.
	ErrInvalidInput = errors.New("invalid formula input")

	// ErrEvaluationTimeout indicates evaluation exceeded its deadline.
	ErrEvaluationTimeout = errors.New("formula evaluation timed out")
)

// ErrNotOK indicates outputs were requested from an invalid result.
var ErrNotOK = errors.New("result is not ok")
