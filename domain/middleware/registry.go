package middleware

// Registry is an ordered, named collection of middleware.
type Registry struct {
	names       []string
	middlewares []Middleware
}

// NewRegistry creates an empty middleware registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Use appends a named middleware. Middleware run in the order added.
func (r *Registry) Use(name string, m Middleware) *Registry {
	r.names = append(r.names, name)
	r.middlewares = append(r.middlewares, m)
	return r
}

// Chain returns the composed chain, or Noop when empty.
func (r *Registry) Chain() Middleware {
	if len(r.middlewares) == 0 {
		return Noop()
	}
	return Chain(r.middlewares...)
}

// Names returns the middleware names in execution order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of middleware.
func (r *Registry) Len() int {
	return len(r.middlewares)
}
