package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation:
// different projects or deployments get separate cache namespaces on a
// shared backend.
//
// Example usage:
//
//	// Project-specific keys
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "project:atlas:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for a stored graph snapshot.
func (k *ScopedKeyer) GraphKey(name string) string {
	return k.prefix + k.inner.GraphKey(name)
}

// LayoutKey generates a prefixed key for a layout pass.
func (k *ScopedKeyer) LayoutKey(graphHash, stateHash string) string {
	return k.prefix + k.inner.LayoutKey(graphHash, stateHash)
}
