// SPDX-FileCopyrightText: © 2021 The geo authors <https://github.com/golangee/geo/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package assemble

import (
	stderrors "errors"
	"fmt"

	"github.com/golangee/geo/format"
	"github.com/golangee/geo/types"
)

// Param is one method parameter: a source name bound to a class id.
type Param struct {
	SourceName string
	ClassID    uint16
}

// Method is an entry in the Implementation Registry (§3/§4.3): a name, a
// consume/produce format pair, the produced class id, a parameter list and
// three instruction vectors.
type Method struct {
	Name           string
	Consume        format.Layout
	Produce        format.Layout
	ProduceClassID uint16
	Parameters     []Param
	Allocation     []Instruction
	Body           []Instruction
	Free           []Instruction
}

// NewMethod returns an empty method ready to receive parameters and
// instructions via the Add* methods.
func NewMethod(name string, consume, produce format.Layout, produceClassID uint16) *Method {
	return &Method{Name: name, Consume: consume, Produce: produce, ProduceClassID: produceClassID}
}

func (m *Method) AddParameter(p Param)          { m.Parameters = append(m.Parameters, p) }
func (m *Method) AddInstruction(i Instruction)  { m.Body = append(m.Body, i) }
func (m *Method) AddAllocation(i Instruction)   { m.Allocation = append(m.Allocation, i) }
func (m *Method) AddFree(i Instruction)         { m.Free = append(m.Free, i) }

// Write is the method emitter described in §4.5: bridge formats (emit a
// no-op if the caller already left its value in this method's consume
// format, otherwise a conversion loop), push format state, emit the body
// in order, then pop format state. classID is the type Write is being
// invoked against (CallMethod's resolved out-class).
func (m *Method) Write(classID uint16, fc *format.Context, reg *types.Registry, impls *ImplRegistry, e *Emitter) error {
	if fc.AlreadyInFormat(m.Consume) {
		if err := (NoOp{}).Emit(fc, reg, impls, e); err != nil {
			return wrapWriteFailure(err)
		}
	} else if err := convert(classID, m.Consume, reg, e); err != nil {
		return wrapWriteFailure(err)
	}

	fc.Enter(classID, m.Consume)
	for _, instr := range m.Body {
		if err := instr.Emit(fc, reg, impls, e); err != nil {
			return wrapWriteFailure(err)
		}
	}
	fc.Exit(m.ProduceClassID, m.Produce)
	return nil
}

// wrapWriteFailure promotes an underlying io.Writer failure to a typed
// WriteFailure assembly error; any other error (a missing class, an unknown
// type id) passes through unchanged.
func wrapWriteFailure(err error) error {
	var werr *writeError
	if stderrors.As(err, &werr) {
		return &Error{Kind: WriteFailure, Cause: werr.cause}
	}
	return err
}

// convert emits the transpose conversion loop from §4.4: for a composite
// of N fields each B bytes, rearrange the intake buffer's layout into the
// outgive buffer as the classical matrix transpose, written as a nested
// loop over field index and byte offset. target names the layout the
// caller needs on the outgive side; since Write only calls convert when
// the format context is NOT already in target, the intake side is always
// the other of the two layouts, and which side is field-major versus
// byte-major flips accordingly.
func convert(classID uint16, target format.Layout, reg *types.Registry, e *Emitter) error {
	t, ok := reg.GetType(classID)
	if !ok {
		return fmt.Errorf("assemble: unknown class id %d in format conversion", classID)
	}
	n := len(t.Members)
	if n == 0 {
		return (NoOp{}).Emit(nil, reg, nil, e)
	}
	fieldBytes := reg.Bytes(t.Members[0].ClassID)
	if err := e.WriteString(fmt.Sprintf("for (int __field = 0; __field < %d; __field++) {\n", n)); err != nil {
		return err
	}
	if err := e.WriteString(fmt.Sprintf("\tfor (int __byte = 0; __byte < %d; __byte++) {\n", fieldBytes)); err != nil {
		return err
	}

	var assign string
	if target == format.StreamOfValues {
		// Intake is StreamOfElements (field-interleaved, byte-major);
		// outgive groups each field's bytes together (field-major).
		assign = "\t\t((char*)out)[__field * " + fmt.Sprintf("%d", fieldBytes) + " + __byte] = ((char*)in)[__byte * " + fmt.Sprintf("%d", n) + " + __field];\n"
	} else {
		// Intake is StreamOfValues (field-major); outgive interleaves
		// fields byte by byte (StreamOfElements).
		assign = "\t\t((char*)out)[__byte * " + fmt.Sprintf("%d", n) + " + __field] = ((char*)in)[__field * " + fmt.Sprintf("%d", fieldBytes) + " + __byte];\n"
	}
	if err := e.WriteString(assign); err != nil {
		return err
	}
	if err := e.WriteString("\t}\n"); err != nil {
		return err
	}
	return e.WriteString("}\n")
}

// ImplRegistry is the class_id -> {method_name -> Method} table (§3).
type ImplRegistry struct {
	methods map[uint16]map[string]*Method
}

// NewImplRegistry returns an empty implementation registry.
func NewImplRegistry() *ImplRegistry {
	return &ImplRegistry{methods: map[uint16]map[string]*Method{}}
}

// Define installs m under classID, keyed by its own name.
func (r *ImplRegistry) Define(classID uint16, m *Method) {
	if r.methods[classID] == nil {
		r.methods[classID] = map[string]*Method{}
	}
	r.methods[classID][m.Name] = m
}

// Lookup finds the method named name on classID.
func (r *ImplRegistry) Lookup(classID uint16, name string) (*Method, bool) {
	mm, ok := r.methods[classID]
	if !ok {
		return nil, false
	}
	m, ok := mm[name]
	return m, ok
}
