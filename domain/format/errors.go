package format

import "errors"

// ErrInvalidFormat indicates an unusable locale, currency or precision.
var ErrInvalidFormat = errors.New("invalid format settings")
