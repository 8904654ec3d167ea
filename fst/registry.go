// Package fst: the explicit type registry for polymorphic reads.
//
// There is deliberately no process-global registry: the embedding
// application builds one (usually StandardRegistry plus its own
// representations) and passes it to Read/ReadMutable, avoiding hidden
// global mutable state and import-order sensitivity.

package fst

import (
	"fmt"
	"io"
	"sort"

	"github.com/katalvlaran/lvlfst/semiring"
)

// ReaderFunc deserializes one representation body. The header has
// already been consumed and validated (magic, arc type) by Read.
type ReaderFunc[W semiring.Weight[W]] func(r io.Reader, h Header, opts ReadOptions) (Fst[W], error)

// Registry maps representation type tags to their readers for one arc
// type instantiation. A Registry is immutable once populated and safe
// for concurrent lookups; populate it during initialization.
type Registry[W semiring.Weight[W]] struct {
	readers map[string]ReaderFunc[W]
}

// NewRegistry returns an empty registry.
func NewRegistry[W semiring.Weight[W]]() *Registry[W] {
	return &Registry[W]{readers: make(map[string]ReaderFunc[W])}
}

// StandardRegistry returns a registry with the library's built-in
// representations ("vector") registered.
func StandardRegistry[W semiring.Weight[W]]() *Registry[W] {
	reg := NewRegistry[W]()
	// Registration of a built-in cannot collide in a fresh registry.
	_ = reg.Register(VectorFstType, readVectorBody[W])

	return reg
}

// Register binds a type tag to its reader. A duplicate tag is an error:
// silently replacing a reader would make deserialization depend on
// registration order.
func (reg *Registry[W]) Register(fstType string, fn ReaderFunc[W]) error {
	if _, exists := reg.readers[fstType]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFstType, fstType)
	}
	reg.readers[fstType] = fn

	return nil
}

// Reader looks up the reader for a type tag.
func (reg *Registry[W]) Reader(fstType string) (ReaderFunc[W], bool) {
	fn, ok := reg.readers[fstType]

	return fn, ok
}

// Types returns the registered type tags in sorted order, for
// diagnostics.
func (reg *Registry[W]) Types() []string {
	types := make([]string, 0, len(reg.readers))
	for t := range reg.readers {
		types = append(types, t)
	}
	sort.Strings(types)

	return types
}
