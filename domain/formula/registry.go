package formula

// Registry defines formula registration and lookup.
// Implementations live in infrastructure.
type Registry interface {
	// Register adds a formula.
	Register(f Formula) error

	// Get retrieves a formula by name.
	Get(name string) (Formula, bool)

	// List returns all formulas sorted by name.
	List() []Formula

	// Names returns all registered names sorted.
	Names() []string

	// Has checks if a formula is registered.
	Has(name string) bool

	// Unregister removes a formula.
	Unregister(name string) error
}
