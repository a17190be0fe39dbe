package cache

// Keyer builds cache keys.
type Keyer interface {
	// BestKey returns the key of the best known solution of an instance
	// with content hash instanceHash under the named objective.
	BestKey(instanceHash, objective string) string
}

// DefaultKeyer builds keys of the form "best:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// BestKey hashes the instance hash and the objective together.
func (DefaultKeyer) BestKey(instanceHash, objective string) string {
	return hashKey("best", instanceHash, objective)
}
