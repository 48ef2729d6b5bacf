package pack

import (
	"github.com/felixgeelhaar/calc-go/domain/formula"
)

// Registry manages a collection of packs.
type Registry interface {
	// Register adds a pack to the registry.
	Register(pack *Pack) error

	// Get retrieves a pack by name.
	Get(name string) (*Pack, bool)

	// List returns all registered packs sorted by name.
	List() []*Pack

	// Unregister removes a pack from the registry.
	Unregister(name string) error

	// Install installs a pack's formulas into a formula registry.
	Install(name string, formulas formula.Registry) error
}
