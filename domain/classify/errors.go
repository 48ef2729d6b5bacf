package classify

import "errors"

// ErrNoEntry indicates a lookup key has no table entry.
var ErrNoEntry = errors.New("no table entry")
