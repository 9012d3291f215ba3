// SPDX-FileCopyrightText: © 2021 The geo authors <https://github.com/golangee/geo/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package assemble

import (
	"github.com/golangee/geo/format"
	"github.com/golangee/geo/parse"
	"github.com/golangee/geo/types"
)

// Result is the outcome of a successful compilation run.
type Result struct {
	Types *types.Registry
	Impls *ImplRegistry
}

// Assemble lexes and parses src, bootstraps the registries, records user
// declarations, and confirms a start method exists on class id 0 — the
// sole required gate before emission (§4.3, §9). Lexer and parser errors
// propagate wrapped as a ParseFailure assembly error, per §7.
func Assemble(src []byte) (*Result, error) {
	tree, err := parse.Parse(src)
	if err != nil {
		return nil, &Error{Kind: ParseFailure, Cause: err}
	}
	return AssembleTree(tree)
}

// AssembleTree runs the record/require-start pipeline over an
// already-parsed scope tree.
func AssembleTree(tree *parse.Tree) (*Result, error) {
	reg := types.NewRegistry()
	reg.Bootstrap()
	impls := NewImplRegistry()
	InstallBuiltins(impls)

	if err := recordDeclarations(0, tree, reg); err != nil {
		return nil, err
	}

	// Every method declared in a top-level `impl ()` block is registered on
	// class id 0; methods of impl blocks for named types are not recorded.
	for _, tok := range tree.Get(0).Tokens {
		if impl, ok := tok.(parse.Impl); ok && impl.Subject.(parse.Literal).Kind == parse.LiteralVoid {
			for _, m := range tree.Get(impl.Body.Scope).Tokens {
				if md, ok := m.(parse.MethodDef); ok {
					impls.Define(types.ClassIDVoid, NewMethod(md.Name, format.StreamOfElements, format.StreamOfElements, types.ClassIDVoid))
				}
			}
		}
	}

	start, ok := impls.Lookup(types.ClassIDVoid, "start")
	if !ok {
		return nil, newError(NoStartMethodFound, "")
	}
	walkMethod(start)

	return &Result{Types: reg, Impls: impls}, nil
}

// walkMethod is the hook named in §9: the start method lookup above is the
// sole required gate before emission, and no behavior should be invented
// here — translating a method's token tree into Emission Instructions is
// out of scope for this pipeline.
func walkMethod(_ *Method) {}

// recordDeclarations performs the two-pass recording described in §4.3
// over scope's top-level tokens: first allocate a dense class id for every
// top-level TypeDef (as an empty Composition), then descend into each
// type's body and append a member for every VariableDef found there. The
// parser guarantees a TypeDef's name is always an identifier literal, so
// this need not re-validate that.
func recordDeclarations(scope int, tree *parse.Tree, reg *types.Registry) error {
	classIDs := map[string]uint16{}
	for _, tok := range tree.Get(scope).Tokens {
		td, ok := tok.(parse.TypeDef)
		if !ok {
			continue
		}
		name, _ := td.Name.AsIdentifierString()
		classIDs[name] = reg.CreateType(name)
	}

	for _, tok := range tree.Get(scope).Tokens {
		td, ok := tok.(parse.TypeDef)
		if !ok {
			continue
		}
		name, _ := td.Name.AsIdentifierString()
		ownerID := classIDs[name]
		for _, v := range tree.Get(td.Body.Scope).Tokens {
			vd, ok := v.(parse.VariableDef)
			if !ok {
				continue
			}
			typeName, ok := vd.Type.AsIdentifierString()
			if !ok {
				return newError(TypeNotFound, vd.Name)
			}
			classID, ok := reg.GetTypeID(typeName)
			if !ok {
				return newError(TypeNotFound, typeName)
			}
			if err := reg.AddVariable(ownerID, vd.Name, classID); err != nil {
				return newError(VariableOnNonComposition, vd.Name)
			}
		}
	}
	return nil
}
