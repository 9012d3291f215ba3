// SPDX-FileCopyrightText: © 2021 The geo authors <https://github.com/golangee/geo/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package assemble

import (
	"github.com/golangee/geo/format"
	"github.com/golangee/geo/types"
)

// InstallBuiltins installs the two built-in method tables §4.3 requires
// before user code is recorded: int::print (prints the 32-bit value with a
// C %d format), int::cast (yields an int), and ()::print (streams over the
// Printable view of its contents and invokes print on each element).
func InstallBuiltins(impls *ImplRegistry) {
	intType := "int"

	print := NewMethod("print", format.StreamOfElements, format.StreamOfElements, types.ClassIDVoid)
	print.AddInstruction(PrintValue{
		Format: "%d",
		Value:  Chain{A: Deref{Type: &intType}, B: Get{Class: This()}},
	})
	impls.Define(types.ClassIDInt, print)

	cast := NewMethod("cast", format.StreamOfElements, format.StreamOfElements, types.ClassIDInt)
	cast.AddInstruction(Chain{A: Deref{Type: &intType}, B: Get{Class: This()}})
	impls.Define(types.ClassIDInt, cast)

	voidPrint := NewMethod("print", format.StreamOfElements, format.StreamOfElements, types.ClassIDVoid)
	voidPrint.AddInstruction(Stream{
		Class: ThisAs(types.ClassIDPrintable),
		Body:  CallMethod{Class: ThisAs(types.ClassIDPrintable), Method: "print"},
	})
	impls.Define(types.ClassIDVoid, voidPrint)
}
