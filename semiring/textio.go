// Package semiring: composite-weight text I/O.
//
// A composite weight (Pair and derivatives) is printed as its sub-weight
// strings joined by a single separator character, optionally enclosed in
// an open/close parenthesis pair when nesting requires disambiguation.
// TextWriter and TextReader own that framing; weight types only emit or
// consume their own tokens between the framing calls.
//
// Configuration errors (separator not exactly one character, exactly one
// of the two parentheses unset) are surfaced at construction: the
// constructor returns the sentinel error AND the returned helper is
// marked errored, so a caller that ignored the error finds every stream
// operation short-circuited rather than a panic mid-parse.

package semiring

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for composite-weight text I/O.
var (
	// ErrBadSeparator indicates the configured separator is not exactly
	// one character.
	ErrBadSeparator = errors.New("semiring: weight separator must be exactly one character")

	// ErrBadParentheses indicates exactly one of the open/close pair was
	// configured; both must be set together or both left unset.
	ErrBadParentheses = errors.New("semiring: weight parentheses must be set or unset together")

	// ErrOpenParenMissing indicates a composite weight did not start with
	// the configured opening parenthesis.
	ErrOpenParenMissing = errors.New("semiring: open parenthesis missing")

	// ErrCloseParenMissing indicates a composite weight did not end with
	// the configured closing parenthesis.
	ErrCloseParenMissing = errors.New("semiring: close parenthesis missing")

	// ErrSeparatorMissing indicates the separator between two composite
	// components was absent.
	ErrSeparatorMissing = errors.New("semiring: separator missing between components")

	// ErrTrailingGarbage indicates non-whitespace input remained after a
	// fully parsed weight.
	ErrTrailingGarbage = errors.New("semiring: trailing characters after weight")

	// ErrBadWeightText indicates a token could not be parsed as a weight
	// of the requested type.
	ErrBadWeightText = errors.New("semiring: malformed weight text")

	// ErrIOHelperErrored indicates an operation on a text I/O helper that
	// was constructed with an invalid configuration.
	ErrIOHelperErrored = errors.New("semiring: text I/O helper in errored state")
)

// DefaultSeparator joins composite components when no option overrides it.
const DefaultSeparator byte = ','

// TextOptions configures composite-weight text I/O.
//
// Separator   – exactly one character placed between components.
// OpenParen   – opening character for composite framing (0 = none).
// CloseParen  – closing character for composite framing (0 = none).
type TextOptions struct {
	Separator  string
	OpenParen  byte
	CloseParen byte
}

// TextOption is a functional option for composite-weight text I/O.
type TextOption func(*TextOptions)

// WithSeparator sets the component separator. Validation happens at
// helper construction, not here, so a bad value surfaces as
// ErrBadSeparator from NewTextWriter/NewTextReader.
func WithSeparator(sep string) TextOption {
	return func(o *TextOptions) { o.Separator = sep }
}

// WithParentheses sets the enclosing pair for composite weights.
// Pass (0, 0) to disable framing (the default).
func WithParentheses(open, close byte) TextOption {
	return func(o *TextOptions) {
		o.OpenParen = open
		o.CloseParen = close
	}
}

// DefaultTextOptions returns the package defaults: ',' separator, no
// parentheses.
func DefaultTextOptions() TextOptions {
	return TextOptions{Separator: string(DefaultSeparator)}
}

// validate checks the configuration invariants shared by reader and
// writer: a one-character separator and an all-or-nothing parenthesis
// pair.
func (o TextOptions) validate() error {
	if len(o.Separator) != 1 {
		return fmt.Errorf("%w: got %q", ErrBadSeparator, o.Separator)
	}
	if (o.OpenParen == 0) != (o.CloseParen == 0) {
		return fmt.Errorf("%w: open=%d close=%d", ErrBadParentheses, o.OpenParen, o.CloseParen)
	}

	return nil
}

// TextWriter emits composite weights onto an io.Writer.
//
// Usage by a composite weight type:
//
//	tw.WriteBegin()
//	first.WriteText(tw)
//	tw.WriteSeparator()
//	second.WriteText(tw)
//	tw.WriteEnd()
//
// Scalar weight types call WriteElement only. All methods no-op once the
// writer is errored; check Err after the final framing call.
type TextWriter struct {
	w    io.Writer
	opts TextOptions
	err  error
}

// NewTextWriter builds a TextWriter over w. A configuration error is
// returned AND recorded on the writer, so subsequent operations
// short-circuit even if the caller dropped the error.
func NewTextWriter(w io.Writer, opts ...TextOption) (*TextWriter, error) {
	cfg := DefaultTextOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	tw := &TextWriter{w: w, opts: cfg}
	if err := cfg.validate(); err != nil {
		tw.err = err
		return tw, err
	}

	return tw, nil
}

// Err reports the first error encountered by the writer.
func (tw *TextWriter) Err() error { return tw.err }

// WriteBegin opens a composite frame (emits the open parenthesis when
// configured).
func (tw *TextWriter) WriteBegin() {
	if tw.err != nil {
		return
	}
	if tw.opts.OpenParen != 0 {
		tw.writeByte(tw.opts.OpenParen)
	}
}

// WriteEnd closes a composite frame (emits the close parenthesis when
// configured).
func (tw *TextWriter) WriteEnd() {
	if tw.err != nil {
		return
	}
	if tw.opts.CloseParen != 0 {
		tw.writeByte(tw.opts.CloseParen)
	}
}

// WriteSeparator emits the component separator.
func (tw *TextWriter) WriteSeparator() {
	if tw.err != nil {
		return
	}
	tw.writeByte(tw.opts.Separator[0])
}

// WriteElement emits one scalar token.
func (tw *TextWriter) WriteElement(token string) {
	if tw.err != nil {
		return
	}
	if _, err := io.WriteString(tw.w, token); err != nil {
		tw.err = err
	}
}

func (tw *TextWriter) writeByte(b byte) {
	if _, err := tw.w.Write([]byte{b}); err != nil {
		tw.err = err
	}
}

// TextReader consumes composite weights from an io.Reader, mirroring
// TextWriter framing call for call. It keeps a one-character lookahead
// so termination of the final token can be checked without consuming
// input that does not belong to the weight.
type TextReader struct {
	r    *bufio.Reader
	opts TextOptions
	c    int // lookahead character; -1 = end of input
	err  error
}

const eof = -1

// NewTextReader builds a TextReader over r. Configuration errors behave
// as in NewTextWriter. The reader primes its lookahead past leading
// whitespace per the convention.
func NewTextReader(r io.Reader, opts ...TextOption) (*TextReader, error) {
	cfg := DefaultTextOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	tr := &TextReader{r: bufio.NewReader(r), opts: cfg}
	if err := cfg.validate(); err != nil {
		tr.err = err
		return tr, err
	}
	tr.advance()
	for tr.err == nil && tr.c != eof && isSpace(byte(tr.c)) {
		tr.advance()
	}

	return tr, nil
}

// Err reports the first error encountered by the reader.
func (tr *TextReader) Err() error { return tr.err }

// ReadBegin opens a composite frame: when parentheses are configured the
// next character must be the opening one (ErrOpenParenMissing otherwise).
func (tr *TextReader) ReadBegin() error {
	if tr.err != nil {
		return tr.err
	}
	if tr.opts.OpenParen != 0 {
		if tr.c != int(tr.opts.OpenParen) {
			tr.fail(fmt.Errorf("%w: got %q (weight parentheses configured correctly?)", ErrOpenParenMissing, lookDesc(tr.c)))
			return tr.err
		}
		tr.advance()
	}

	return tr.err
}

// ReadEnd closes a composite frame, consuming the closing parenthesis
// when configured. Missing close parenthesis is an error.
func (tr *TextReader) ReadEnd() error {
	if tr.err != nil {
		return tr.err
	}
	if tr.opts.CloseParen != 0 {
		if tr.c != int(tr.opts.CloseParen) {
			tr.fail(fmt.Errorf("%w: got %q", ErrCloseParenMissing, lookDesc(tr.c)))
			return tr.err
		}
		tr.advance()
	}

	return tr.err
}

// ReadSeparator consumes the component separator.
func (tr *TextReader) ReadSeparator() error {
	if tr.err != nil {
		return tr.err
	}
	if tr.c != int(tr.opts.Separator[0]) {
		tr.fail(fmt.Errorf("%w: got %q", ErrSeparatorMissing, lookDesc(tr.c)))
		return tr.err
	}
	tr.advance()

	return tr.err
}

// ReadElement collects one scalar token: characters up to (not
// including) the separator, the closing parenthesis, whitespace, or end
// of input. An empty token is malformed input.
func (tr *TextReader) ReadElement() (string, error) {
	if tr.err != nil {
		return "", tr.err
	}
	var buf []byte
	for tr.err == nil && tr.c != eof {
		b := byte(tr.c)
		if b == tr.opts.Separator[0] || (tr.opts.CloseParen != 0 && b == tr.opts.CloseParen) || isSpace(b) {
			break
		}
		buf = append(buf, b)
		tr.advance()
	}
	if tr.err != nil {
		return "", tr.err
	}
	if len(buf) == 0 {
		tr.fail(fmt.Errorf("%w: empty token", ErrBadWeightText))
		return "", tr.err
	}

	return string(buf), nil
}

// Finish verifies the weight consumed the whole input: the lookahead
// must be end of input or whitespace, anything else is trailing garbage
// (typically a symptom of a misconfigured separator or parentheses).
func (tr *TextReader) Finish() error {
	if tr.err != nil {
		return tr.err
	}
	if tr.c != eof && !isSpace(byte(tr.c)) {
		tr.fail(fmt.Errorf("%w: %q (weight separator/parentheses configured correctly?)", ErrTrailingGarbage, lookDesc(tr.c)))
	}

	return tr.err
}

// advance moves the lookahead one character forward.
func (tr *TextReader) advance() {
	b, err := tr.r.ReadByte()
	if err == io.EOF {
		tr.c = eof
		return
	}
	if err != nil {
		tr.fail(err)
		return
	}
	tr.c = int(b)
}

// fail records the first error; the reader stays bad from then on.
func (tr *TextReader) fail(err error) {
	if tr.err == nil {
		tr.err = err
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// lookDesc renders a lookahead character for error messages.
func lookDesc(c int) string {
	if c == eof {
		return "<eof>"
	}

	return string(rune(c))
}
