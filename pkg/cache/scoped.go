package cache

// ScopedKeyer wraps a Keyer with a prefix. This keeps entries of different
// deployments apart when they share one Redis server.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "permsample:")
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

// BestKey generates a prefixed key for the best known solution.
func (k *ScopedKeyer) BestKey(instanceHash, objective string) string {
	return k.prefix + k.inner.BestKey(instanceHash, objective)
}
