package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Formula adds the formula name.
func Formula(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("formula", name)
	}
}

// Category adds the formula category.
func Category(c string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("category", c)
	}
}

// RequestID adds a request ID.
func RequestID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("request_id", id)
	}
}

// Source adds the surface that issued the request.
func Source(s string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("source", s)
	}
}

// Status adds a result or job status.
func Status(s string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("status", s)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// Cached adds a cached field.
func Cached(cached bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("cached", cached)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// JobID adds a file job ID.
func JobID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("job_id", id)
	}
}

// Progress adds a job progress percentage.
func Progress(p int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("progress", p)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Operation adds an operation field.
func Operation(op string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", op)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

// Int adds an int field with custom key.
func Int(key string, value int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, value)
	}
}
