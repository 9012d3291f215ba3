package assemble

import "io"

// Emitter is the writer the assembler emits C source through (unbuffered:
// each write goes straight to the wrapped io.Writer),
// plus the indentation counter §4.5 describes ("one tab per level").
// Indentation lives here rather than on format.Context: the format context
// tracks value layout only, and folding a display concern into it would
// make already-in-format checks harder to reason about.
type Emitter struct {
	w      io.Writer
	Indent int
}

// NewEmitter wraps w for instruction emission.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// WriteString writes s verbatim.
func (e *Emitter) WriteString(s string) error {
	if _, err := io.WriteString(e.w, s); err != nil {
		return &writeError{cause: err}
	}
	return nil
}

// writeError distinguishes a failure of the underlying io.Writer from the
// semantic errors Instruction.Emit otherwise returns (missing class, unknown
// type id, and so on) — both shapes are plain `error`, so Method.Write needs
// a way to tell them apart before deciding whether a failure is a
// WriteFailure assembly error or something else entirely.
type writeError struct{ cause error }

func (w *writeError) Error() string { return w.cause.Error() }
func (w *writeError) Unwrap() error { return w.cause }

// WriteTabs writes e.Indent tab characters.
func (e *Emitter) WriteTabs() error {
	for i := 0; i < e.Indent; i++ {
		if err := e.WriteString("\t"); err != nil {
			return err
		}
	}
	return nil
}
