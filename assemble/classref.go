// Package assemble owns the Implementation Registry, the Emission
// Instruction tree, and the assembler driver that walks a scope tree,
// records types, and locates the start method (§4.3 - §4.5).
package assemble

import "github.com/golangee/geo/format"

// ClassRef is either This (the current type in the format context) or
// ThisAs(interfaceClassID) — a view of the current object through an
// interface. Resolution always consults the format context's current
// frame; ThisAs only documents intent (the lens the emitted expression is
// conceptually viewed through), it does not redirect which frame is read.
type ClassRef struct {
	viaInterface bool
	interfaceID  uint16
}

// This refers to the format context's current class.
func This() ClassRef { return ClassRef{} }

// ThisAs views the current object through interfaceID.
func ThisAs(interfaceID uint16) ClassRef {
	return ClassRef{viaInterface: true, interfaceID: interfaceID}
}

// InterfaceID returns the interface id a ThisAs reference names, and
// whether this reference is a ThisAs at all.
func (c ClassRef) InterfaceID() (uint16, bool) {
	return c.interfaceID, c.viaInterface
}

// outClass resolves c against fc's current out-frame. Every instruction
// that carries a ClassRef threads it through one of outClass/inClass
// rather than calling fc.OutClass/fc.InClass directly, mirroring the
// original's own out_class/in_class functions: both take the full
// reference and both arms of their match still read the live stack top.
// Naming an interface via InterfaceID only documents the lens the value
// is conceptually viewed through here; it does not change which frame
// resolves.
func (c ClassRef) outClass(fc *format.Context) (uint16, bool) {
	_, _ = c.InterfaceID()
	return fc.OutClass()
}

// inClass mirrors outClass for the in-stack.
func (c ClassRef) inClass(fc *format.Context) (uint16, bool) {
	_, _ = c.InterfaceID()
	return fc.InClass()
}
