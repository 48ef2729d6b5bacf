package units

import "errors"

// Domain errors for unit conversion.
var (
	// ErrUnknownKind indicates the quantity kind is not in the table.
	ErrUnknownKind = errors.New("unknown quantity kind")

	// ErrUnknownUnit indicates the unit does not belong to the kind.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrNotFinite indicates a value or its conversion is NaN or infinite.
	ErrNotFinite = errors.New("not a finite number")
)
