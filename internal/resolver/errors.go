package resolver

import "fmt"

// NotFoundError is returned when a LawCard reference cannot be resolved to
// any local artifact.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resolver: cannot resolve LawCard ref %q; provide a local path or set RULEGRAPH_CARD_PATHS", e.Ref)
}

// HashMismatchError is returned when a direct-path load's declared sha256
// does not match the canonical hash of the loaded document.
type HashMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("resolver: sha256 mismatch for %s: expected %s, computed %s", e.Path, e.Expected, e.Actual)
}

// SchemaError wraps a malformed or unparsable card document.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("resolver: schema error in %s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
