// SPDX-FileCopyrightText: © 2021 The geo authors <https://github.com/golangee/geo/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package assemble

import (
	"fmt"

	"github.com/golangee/geo/format"
	"github.com/golangee/geo/types"
)

// Instruction is the Emission Instruction tree's common interface (§4.5):
// leaves are scalar emissions, composite variants sequence or nest child
// instructions. Emission follows instruction order, depth-first,
// left-to-right (§5).
type Instruction interface {
	Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error
}

// DeclareContext declares the 256-slot void* context struct (§6).
type DeclareContext struct{}

func (DeclareContext) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteString("struct __CONTEXT__ {\n\tvoid* v[256];\n};\n")
}

// InitContext declares one context-struct variable.
type InitContext struct{}

func (InitContext) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteString("struct __CONTEXT__ context;\n")
}

// DeclareCalculationScope declares a method body's in/out/len locals.
type DeclareCalculationScope struct{}

func (DeclareCalculationScope) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteString("void* in; void* out;\nint len;\n\n")
}

// SetLength sets the running byte length to a fixed value.
type SetLength struct{ N uint64 }

func (i SetLength) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteString(fmt.Sprintf("len = %d;\n", i.N))
}

// InitIntake allocates the intake buffer.
type InitIntake struct{ Bytes uint64 }

func (i InitIntake) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteString(fmt.Sprintf("in = malloc(%d);\n", i.Bytes))
}

// InitOutgive allocates the outgive buffer.
type InitOutgive struct{ Bytes uint64 }

func (i InitOutgive) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteString(fmt.Sprintf("out = malloc(%d);\n", i.Bytes))
}

// LoadIntake reads a previously saved pointer out of the context slot
// ptrID into the local `in` variable.
type LoadIntake struct{ PtrID uint16 }

func (i LoadIntake) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteString(fmt.Sprintf("in = context.v[%d];\n", i.PtrID))
}

// SaveOutgive stores the local `out` variable into context slot ptrID.
type SaveOutgive struct{ PtrID uint16 }

func (i SaveOutgive) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteString(fmt.Sprintf("context.v[%d] = out;\n", i.PtrID))
}

// NoOp aliases the outgive pointer to the intake pointer with no
// conversion — emitted when a method already sees its consume format.
type NoOp struct{}

func (NoOp) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteString("out = in;\n")
}

// AddIntake writes Value into the intake buffer as a value of Class's
// type, then advances `in` and `len` by that type's byte size.
type AddIntake struct {
	Value Instruction
	Class ClassRef
}

func (i AddIntake) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	classID, ok := i.Class.inClass(fc)
	if !ok {
		return fmt.Errorf("assemble: AddIntake with no active in-class")
	}
	t, ok := reg.GetType(classID)
	if !ok {
		return fmt.Errorf("assemble: unknown class id %d", classID)
	}
	if err := e.WriteString(fmt.Sprintf("*((%s*)in) = ", t.Name)); err != nil {
		return err
	}
	if err := i.Value.Emit(fc, reg, impls, e); err != nil {
		return err
	}
	if err := e.WriteString(";\n"); err != nil {
		return err
	}
	bytes := reg.Bytes(classID)
	if err := e.WriteString(fmt.Sprintf("in += %d;\n", bytes)); err != nil {
		return err
	}
	return e.WriteString(fmt.Sprintf("len += %d;\n", bytes))
}

// FlipIntake rewinds `in` by `len` so a buffer can be re-read from its
// start, used before streaming over it.
type FlipIntake struct{}

func (FlipIntake) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteString("in -= len;\n")
}

// PrintString prints Len bytes of Value as a %s-formatted string.
type PrintString struct {
	Len   uint64
	Value Instruction
}

func (i PrintString) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	if err := e.WriteString(fmt.Sprintf("printf(\"%%.%ds\", ", i.Len)); err != nil {
		return err
	}
	if err := i.Value.Emit(fc, reg, impls, e); err != nil {
		return err
	}
	return e.WriteString(")")
}

// PrintValue prints Value formatted with a caller-supplied printf format.
type PrintValue struct {
	Format string
	Value  Instruction
}

func (i PrintValue) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	if err := e.WriteString(fmt.Sprintf("printf(\"%s\", \n", i.Format)); err != nil {
		return err
	}
	if err := i.Value.Emit(fc, reg, impls, e); err != nil {
		return err
	}
	return e.WriteString(")")
}

// CallMethod resolves Method on the format context's current out-class and
// inlines its emitter: there is no real C function call, the callee's body
// is spliced in at the call site (§4.5).
type CallMethod struct {
	Class  ClassRef
	Method string
}

func (i CallMethod) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	classID, ok := i.Class.outClass(fc)
	if !ok {
		return fmt.Errorf("assemble: CallMethod %q with no active out-class", i.Method)
	}
	method, ok := impls.Lookup(classID, i.Method)
	if !ok {
		return fmt.Errorf("assemble: no method %q on class id %d", i.Method, classID)
	}
	return method.Write(classID, fc, reg, impls, e)
}

// Cast writes a C pointer-cast prefix, e.g. "(int *)".
type Cast struct{ Type string }

func (i Cast) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteString(fmt.Sprintf("(%s *)", i.Type))
}

// Deref writes a dereference, optionally cast to Type first.
type Deref struct{ Type *string }

func (i Deref) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	if i.Type != nil {
		return e.WriteString(fmt.Sprintf("*(%s *)", *i.Type))
	}
	return e.WriteString("*")
}

// Get writes the current intake pointer's name.
type Get struct{ Class ClassRef }

func (i Get) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteString("in")
}

// Stream emits a while-loop over a fixed-width element stream and runs
// Body once per element.
type Stream struct {
	Class ClassRef
	Body  Instruction
}

func (i Stream) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	classID, ok := i.Class.inClass(fc)
	if !ok {
		return fmt.Errorf("assemble: Stream with no active in-class")
	}
	bytes := reg.Bytes(classID)
	if err := (FlipIntake{}).Emit(fc, reg, impls, e); err != nil {
		return err
	}
	if err := e.WriteString("while(in) {"); err != nil {
		return err
	}
	e.Indent++
	if err := (Indent{}).Emit(fc, reg, impls, e); err != nil {
		return err
	}
	if err := i.Body.Emit(fc, reg, impls, e); err != nil {
		return err
	}
	if err := e.WriteString(fmt.Sprintf("in += %d;", bytes)); err != nil {
		return err
	}
	if err := (EndBlock{}).Emit(fc, reg, impls, e); err != nil {
		return err
	}
	e.Indent--
	return nil
}

// Multiply writes "(a * b)".
type Multiply struct{ A, B Instruction }

func (i Multiply) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	if err := e.WriteString("("); err != nil {
		return err
	}
	if err := i.A.Emit(fc, reg, impls, e); err != nil {
		return err
	}
	if err := e.WriteString(" * "); err != nil {
		return err
	}
	if err := i.B.Emit(fc, reg, impls, e); err != nil {
		return err
	}
	return e.WriteString(")")
}

// Chain emits A then B with no separator, composing expression fragments.
type Chain struct{ A, B Instruction }

func (i Chain) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	if err := i.A.Emit(fc, reg, impls, e); err != nil {
		return err
	}
	return i.B.Emit(fc, reg, impls, e)
}

// EndBlock closes a brace and re-indents the following line.
type EndBlock struct{}

func (EndBlock) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	if err := e.WriteString("}\n"); err != nil {
		return err
	}
	return (Indent{}).Emit(fc, reg, impls, e)
}

// Semicolon terminates a statement and re-indents.
type Semicolon struct{}

func (Semicolon) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	if err := e.WriteString(";\n"); err != nil {
		return err
	}
	if e.Indent > 0 {
		return e.WriteTabs()
	}
	return nil
}

// Indent writes the current indentation.
type Indent struct{}

func (Indent) Emit(fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	return e.WriteTabs()
}
