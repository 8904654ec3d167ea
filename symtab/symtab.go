// Package symtab: the Table type and its serialization.

package symtab

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Sentinel errors for symbol table operations.
var (
	// ErrEmptySymbol indicates an attempt to intern the empty string.
	ErrEmptySymbol = errors.New("symtab: symbol is empty")

	// ErrNegativeKey indicates a negative label key, which is outside the
	// label domain.
	ErrNegativeKey = errors.New("symtab: label key is negative")

	// ErrBadTableData indicates a malformed serialized table.
	ErrBadTableData = errors.New("symtab: malformed table data")
)

// NoSymbol is returned by Find for absent spellings.
const NoSymbol int64 = -1

// Table maps labels to symbol spellings and back. The zero Table is not
// usable; construct with New.
type Table struct {
	name     string
	byKey    map[int64]string
	bySym    map[string]int64
	nextKey  int64
	numAdded int64
}

// New creates an empty table with the given diagnostic name.
func New(name string) *Table {
	return &Table{
		name:  name,
		byKey: make(map[int64]string),
		bySym: make(map[string]int64),
	}
}

// Name returns the table's diagnostic name.
func (t *Table) Name() string { return t.name }

// NumSymbols returns the number of interned symbols.
func (t *Table) NumSymbols() int { return len(t.byKey) }

// AddSymbol interns sym under the next available key and returns the
// key; re-adding an existing symbol returns its existing key.
// Complexity: O(1) amortized.
func (t *Table) AddSymbol(sym string) (int64, error) {
	if sym == "" {
		return NoSymbol, ErrEmptySymbol
	}
	if key, ok := t.bySym[sym]; ok {
		return key, nil
	}
	key := t.nextKey
	t.setEntry(key, sym)

	return key, nil
}

// AddSymbolKey interns sym under an explicit key, overwriting any
// previous spelling at that key. Complexity: O(1).
func (t *Table) AddSymbolKey(sym string, key int64) error {
	if sym == "" {
		return ErrEmptySymbol
	}
	if key < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeKey, key)
	}
	if old, ok := t.byKey[key]; ok {
		delete(t.bySym, old)
	}
	t.setEntry(key, sym)

	return nil
}

func (t *Table) setEntry(key int64, sym string) {
	t.byKey[key] = sym
	t.bySym[sym] = key
	if key >= t.nextKey {
		t.nextKey = key + 1
	}
	t.numAdded++
}

// Find returns the key for a spelling, or NoSymbol when absent.
func (t *Table) Find(sym string) int64 {
	key, ok := t.bySym[sym]
	if !ok {
		return NoSymbol
	}

	return key
}

// Spelling returns the symbol stored under key; ok reports presence.
func (t *Table) Spelling(key int64) (string, bool) {
	sym, ok := t.byKey[key]

	return sym, ok
}

// Keys returns all keys in ascending order. Complexity: O(n log n).
func (t *Table) Keys() []int64 {
	keys := make([]int64, 0, len(t.byKey))
	for k := range t.byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// Copy returns an independent deep copy sharing no storage with the
// receiver. A nil receiver copies to nil, so optional tables propagate
// without branching at every call site.
func (t *Table) Copy() *Table {
	if t == nil {
		return nil
	}
	clone := New(t.name)
	for k, s := range t.byKey {
		clone.byKey[k] = s
		clone.bySym[s] = k
	}
	clone.nextKey = t.nextKey

	return clone
}

// Equal reports equality by content (name and all entries). Either side
// may be nil; two nils are equal.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == nil && other == nil
	}
	if t.name != other.name || len(t.byKey) != len(other.byKey) {
		return false
	}
	for k, s := range t.byKey {
		if os, ok := other.byKey[k]; !ok || os != s {
			return false
		}
	}

	return true
}

// Write serializes the table: name, entry count, then (key, spelling)
// pairs in ascending key order.
func (t *Table) Write(w io.Writer) error {
	if err := writeString(w, t.name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int64(len(t.byKey))); err != nil {
		return err
	}
	for _, k := range t.Keys() {
		if err := binary.Write(w, binary.LittleEndian, k); err != nil {
			return err
		}
		if err := writeString(w, t.byKey[k]); err != nil {
			return err
		}
	}

	return nil
}

// Read deserializes a table previously written with Write.
func Read(r io.Reader) (*Table, error) {
	name, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: name: %w", ErrBadTableData, err)
	}
	var n int64
	if err = binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: entry count: %w", ErrBadTableData, err)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative entry count %d", ErrBadTableData, n)
	}
	t := New(name)
	for i := int64(0); i < n; i++ {
		var key int64
		if err = binary.Read(r, binary.LittleEndian, &key); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrBadTableData, i, err)
		}
		sym, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrBadTableData, i, err)
		}
		if err = t.AddSymbolKey(sym, key); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrBadTableData, i, err)
		}
	}

	return t, nil
}

// writeString emits a length-prefixed string.
func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)

	return err
}

// readString consumes a length-prefixed string.
func readString(r io.Reader) (string, error) {
	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("negative string length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}

	return string(buf), nil
}
