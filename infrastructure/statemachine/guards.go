package statemachine

import (
	"github.com/felixgeelhaar/statekit"
)

// Guards receive the context by value, which for *Context is the pointer.

func guardProgressComplete(ctx *Context, _ statekit.Event) bool {
	return ctx != nil && ctx.Job != nil && ctx.Job.Progress >= 100
}
