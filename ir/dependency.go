package ir

// Dependency resolves the short contract identifiers appearing in source
// code, such as Yul object names, to fully qualified contract paths. The
// compilation driver implements it on top of its project layout; code
// generation only ever resolves, never mutates.
type Dependency interface {
	ResolvePath(identifier string) (string, error)
}

// NoopDependency is the resolver for standalone compilation of a single
// contract, where no identifier can refer to another unit.
type NoopDependency struct{}

// ResolvePath returns the identifier unchanged. A single contract cannot
// reference units outside itself, so there is nothing to resolve.
func (NoopDependency) ResolvePath(identifier string) (string, error) {
	return identifier, nil
}
