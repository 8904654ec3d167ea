// Package fst: binary serialization.
//
// Layout: header (magic, representation type tag, arc type, version,
// properties, start, state and arc counts, table flags), then the
// optional symbol tables, then the representation body. The body
// encoding is representation-specific; the dense encoding written here
// is the one the "vector" registry entry reads back.

package fst

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/lvlfst/semiring"
	"github.com/katalvlaran/lvlfst/symtab"
)

// File format marker and version.
const (
	fstMagic   int32 = 0x6C564654 // "lVFT"
	fstVersion int32 = 1
)

// Header flag bits.
const (
	headerHasISymbols uint32 = 1 << iota
	headerHasOSymbols
)

// Header is the serialized preamble of every transducer file.
type Header struct {
	FstType    string
	ArcType    string
	Version    int32
	Flags      uint32
	Properties uint64
	Start      StateID
	NumStates  int64
	NumArcs    int64
}

// Write emits the header.
func (h *Header) Write(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, fstMagic); err != nil {
		return err
	}
	if err := writeString(w, h.FstType); err != nil {
		return err
	}
	if err := writeString(w, h.ArcType); err != nil {
		return err
	}
	for _, v := range []any{h.Version, h.Flags, h.Properties, int64(h.Start), h.NumStates, h.NumArcs} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	return nil
}

// ReadHeader consumes and validates a header.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	var magic int32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return h, fmt.Errorf("%w: magic: %w", ErrBadHeader, err)
	}
	if magic != fstMagic {
		return h, fmt.Errorf("%w: %#x", ErrBadMagic, magic)
	}
	var err error
	if h.FstType, err = readString(r); err != nil {
		return h, fmt.Errorf("%w: fst type: %w", ErrBadHeader, err)
	}
	if h.ArcType, err = readString(r); err != nil {
		return h, fmt.Errorf("%w: arc type: %w", ErrBadHeader, err)
	}
	var start int64
	for _, v := range []any{&h.Version, &h.Flags, &h.Properties, &start, &h.NumStates, &h.NumArcs} {
		if err = binary.Read(r, binary.LittleEndian, v); err != nil {
			return h, fmt.Errorf("%w: %w", ErrBadHeader, err)
		}
	}
	h.Start = StateID(start)
	if h.Version > fstVersion {
		return h, fmt.Errorf("%w: version %d newer than supported %d", ErrBadHeader, h.Version, fstVersion)
	}
	if h.NumStates < 0 || h.NumArcs < 0 {
		return h, fmt.Errorf("%w: negative counts", ErrBadHeader)
	}

	return h, nil
}

// ReadOptions carries the context of one deserialization: a source name
// for diagnostics and a logger for the failure paths. The default
// logger discards everything.
type ReadOptions struct {
	Source string
	Logger logr.Logger
}

// ReadOption is a functional option for Read/ReadMutable.
type ReadOption func(*ReadOptions)

// WithSource names the input for diagnostics (file path, URL, ...).
func WithSource(source string) ReadOption {
	return func(o *ReadOptions) { o.Source = source }
}

// WithLogger routes read-path diagnostics to the given logger.
func WithLogger(logger logr.Logger) ReadOption {
	return func(o *ReadOptions) { o.Logger = logger }
}

// DefaultReadOptions returns the defaults: unnamed source, discarding
// logger.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{Source: "<unspecified>", Logger: logr.Discard()}
}

// Write serializes f. The body is the dense per-state encoding; the
// header records f's own type tag, so a representation other than
// "vector" can only be read back through a registry that maps its tag —
// convert to a VectorFst first when in doubt.
// Complexity: O(V + E).
func Write[W semiring.Weight[W]](w io.Writer, f Expanded[W]) error {
	if f == nil {
		return ErrNilFst
	}
	numArcs := int64(0)
	n := f.NumStates()
	for s := StateID(0); s < StateID(n); s++ {
		numArcs += int64(f.NumArcs(s))
	}
	h := Header{
		FstType:    f.Type(),
		ArcType:    ArcType[W](),
		Version:    fstVersion,
		Properties: f.Properties(PropAll, false),
		Start:      f.Start(),
		NumStates:  int64(n),
		NumArcs:    numArcs,
	}
	if f.InputSymbols() != nil {
		h.Flags |= headerHasISymbols
	}
	if f.OutputSymbols() != nil {
		h.Flags |= headerHasOSymbols
	}
	if err := h.Write(w); err != nil {
		return err
	}
	if t := f.InputSymbols(); t != nil {
		if err := t.Write(w); err != nil {
			return err
		}
	}
	if t := f.OutputSymbols(); t != nil {
		if err := t.Write(w); err != nil {
			return err
		}
	}
	for s := StateID(0); s < StateID(n); s++ {
		if err := f.Final(s).Encode(w); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int64(f.NumArcs(s))); err != nil {
			return err
		}
		for it := f.Arcs(s); !it.Done(); it.Next() {
			arc := it.Value()
			if err := binary.Write(w, binary.LittleEndian, int64(arc.ILabel)); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, int64(arc.OLabel)); err != nil {
				return err
			}
			if err := arc.Weight.Encode(w); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, int64(arc.NextState)); err != nil {
				return err
			}
		}
	}

	return nil
}

// Read deserializes a transducer of unknown concrete representation:
// the header's type tag is resolved through reg. An unknown tag, an arc
// type differing from W, or a bad header fail the read — the error is
// returned and logged with the tag and source, and no default
// representation is silently substituted.
func Read[W semiring.Weight[W]](r io.Reader, reg *Registry[W], opts ...ReadOption) (Fst[W], error) {
	cfg := DefaultReadOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	h, err := ReadHeader(r)
	if err != nil {
		cfg.Logger.Error(err, "fst read: bad header", "source", cfg.Source)
		return nil, err
	}
	return readBody(r, h, reg, cfg)
}

// ReadMutable is the mutable-read entry point: it additionally fails
// with ErrNotMutable when the header marks a non-mutable
// representation, instead of returning a handle that merely looks
// mutable. Rebuild such files through Convert after a plain Read.
func ReadMutable[W semiring.Weight[W]](r io.Reader, reg *Registry[W], opts ...ReadOption) (Mutable[W], error) {
	cfg := DefaultReadOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	h, err := ReadHeader(r)
	if err != nil {
		cfg.Logger.Error(err, "fst read: bad header", "source", cfg.Source)
		return nil, err
	}
	if h.Properties&PropMutable == 0 {
		err = fmt.Errorf("%w: type %q", ErrNotMutable, h.FstType)
		cfg.Logger.Error(err, "fst read: not mutable", "fstType", h.FstType, "source", cfg.Source)
		return nil, err
	}
	f, err := readBody(r, h, reg, cfg)
	if err != nil {
		return nil, err
	}
	m, ok := f.(Mutable[W])
	if !ok {
		err = fmt.Errorf("%w: type %q reader returned a non-mutable value", ErrNotMutable, h.FstType)
		cfg.Logger.Error(err, "fst read: not mutable", "fstType", h.FstType, "source", cfg.Source)
		return nil, err
	}

	return m, nil
}

// readBody resolves the representation reader and applies it.
func readBody[W semiring.Weight[W]](r io.Reader, h Header, reg *Registry[W], cfg ReadOptions) (Fst[W], error) {
	if want := ArcType[W](); h.ArcType != want {
		err := fmt.Errorf("%w: file %q, expected %q", ErrArcTypeMismatch, h.ArcType, want)
		cfg.Logger.Error(err, "fst read: arc type mismatch", "fstType", h.FstType, "source", cfg.Source)
		return nil, err
	}
	rd, ok := reg.Reader(h.FstType)
	if !ok {
		err := fmt.Errorf("%w: %q (arc type %q)", ErrUnknownFstType, h.FstType, h.ArcType)
		cfg.Logger.Error(err, "fst read: unknown type", "fstType", h.FstType, "source", cfg.Source)
		return nil, err
	}
	f, err := rd(r, h, cfg)
	if err != nil {
		cfg.Logger.Error(err, "fst read: body failed", "fstType", h.FstType, "source", cfg.Source)
		return nil, err
	}

	return f, nil
}

// readVectorBody reads the dense encoding into a VectorFst. Registered
// under VectorFstType by StandardRegistry.
func readVectorBody[W semiring.Weight[W]](r io.Reader, h Header, _ ReadOptions) (Fst[W], error) {
	f := NewVectorFst[W]()
	if h.Flags&headerHasISymbols != 0 {
		t, err := symtab.Read(r)
		if err != nil {
			return nil, err
		}
		f.SetInputSymbols(t)
	}
	if h.Flags&headerHasOSymbols != 0 {
		t, err := symtab.Read(r)
		if err != nil {
			return nil, err
		}
		f.SetOutputSymbols(t)
	}
	f.ReserveStates(int(h.NumStates))
	f.AddStates(int(h.NumStates))
	var zero W
	arcsRead := int64(0)
	for s := StateID(0); s < StateID(h.NumStates); s++ {
		final, err := zero.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("%w: state %d final: %w", ErrBadHeader, s, err)
		}
		f.SetFinal(s, final)
		var na int64
		if err = binary.Read(r, binary.LittleEndian, &na); err != nil {
			return nil, fmt.Errorf("%w: state %d arc count: %w", ErrBadHeader, s, err)
		}
		if na < 0 {
			return nil, fmt.Errorf("%w: state %d negative arc count", ErrBadHeader, s)
		}
		f.ReserveArcs(s, int(na))
		for i := int64(0); i < na; i++ {
			var ilabel, olabel, next int64
			if err = binary.Read(r, binary.LittleEndian, &ilabel); err != nil {
				return nil, fmt.Errorf("%w: state %d arc %d: %w", ErrBadHeader, s, i, err)
			}
			if err = binary.Read(r, binary.LittleEndian, &olabel); err != nil {
				return nil, fmt.Errorf("%w: state %d arc %d: %w", ErrBadHeader, s, i, err)
			}
			weight, err := zero.Decode(r)
			if err != nil {
				return nil, fmt.Errorf("%w: state %d arc %d weight: %w", ErrBadHeader, s, i, err)
			}
			if err = binary.Read(r, binary.LittleEndian, &next); err != nil {
				return nil, fmt.Errorf("%w: state %d arc %d: %w", ErrBadHeader, s, i, err)
			}
			f.AddArc(s, Arc[W]{ILabel: Label(ilabel), OLabel: Label(olabel), Weight: weight, NextState: StateID(next)})
			arcsRead++
		}
	}
	if arcsRead != h.NumArcs {
		return nil, fmt.Errorf("%w: arc count %d, header said %d", ErrBadHeader, arcsRead, h.NumArcs)
	}
	if h.Start != NoStateID {
		f.SetStart(h.Start)
	}
	f.SetProperties(h.Properties&PropCopy, PropAll)

	return f, nil
}

// writeString and readString are shared with the symbol table layout:
// little-endian int32 length prefix.
func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)

	return err
}

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
