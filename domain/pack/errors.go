package pack

import "errors"

// Domain errors for pack operations.
var (
	// ErrPackNotFound is returned when a pack does not exist.
	ErrPackNotFound = errors.New("pack not found")

	// ErrPackExists is returned when a pack already exists.
	ErrPackExists = errors.New("pack already exists")

	// ErrInvalidPack is returned when a pack is invalid.
	ErrInvalidPack = errors.New("invalid pack")

	// ErrDuplicateFormula is returned when a pack names a formula twice.
	ErrDuplicateFormula = errors.New("duplicate formula in pack")

	// ErrDependencyNotFound is returned when a required dependency is missing.
	ErrDependencyNotFound = errors.New("pack dependency not found")
)
