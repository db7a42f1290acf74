package network

import (
	"errors"
	"fmt"
)

// AddressingError reports a malformed key or a key with an element prefix
// other than pore or throat.
type AddressingError struct {
	Key    string
	Reason string
}

func (e AddressingError) Error() string {
	return fmt.Sprintf("bad key %q: %s", e.Key, e.Reason)
}

// ShapeError reports an array whose leading dimension does not match the
// established count of its kind, or a model output that does not fit the
// target slice.
type ShapeError struct {
	Key  string
	Got  int
	Want int
}

func (e ShapeError) Error() string {
	return fmt.Sprintf("wrong length for %s: got %d, want %d", e.Key, e.Got, e.Want)
}

// KeyNotFoundError reports a key with neither an exact nor a group match,
// or a domain-qualified read of a property that was never written.
type KeyNotFoundError struct {
	Key string
}

func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %q not found", e.Key)
}

// ModelNotFoundError reports a qualified name absent from a model registry.
type ModelNotFoundError struct {
	Name string
}

func (e ModelNotFoundError) Error() string {
	return fmt.Sprintf("model %q not registered", e.Name)
}

// IsKeyNotFound reports whether err is a KeyNotFoundError.
func IsKeyNotFound(err error) bool {
	var kerr KeyNotFoundError
	return errors.As(err, &kerr)
}
