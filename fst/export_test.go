package fst

// Shared exposes the cell aliasing state to the copy-on-write tests.
func (f *VectorFst[W]) Shared() bool { return f.shared() }
