package assemble

import (
	"strings"
	"testing"

	"github.com/golangee/geo/format"
	"github.com/golangee/geo/types"
)

func emitToString(t *testing.T, instr Instruction, fc *format.Context, reg *types.Registry, impls *ImplRegistry) string {
	t.Helper()
	var sb strings.Builder
	e := NewEmitter(&sb)
	if err := instr.Emit(fc, reg, impls, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return sb.String()
}

func TestDeclareContext(t *testing.T) {
	out := emitToString(t, DeclareContext{}, nil, nil, nil)
	if out != "struct __CONTEXT__ {\n\tvoid* v[256];\n};\n" {
		t.Fatalf("got %q", out)
	}
}

func TestSetLengthAndInitIntake(t *testing.T) {
	out := emitToString(t, SetLength{N: 8}, nil, nil, nil)
	if out != "len = 8;\n" {
		t.Fatalf("got %q", out)
	}
	out = emitToString(t, InitIntake{Bytes: 16}, nil, nil, nil)
	if out != "in = malloc(16);\n" {
		t.Fatalf("got %q", out)
	}
}

func TestAddIntakeWritesTypedValueAndAdvances(t *testing.T) {
	reg := types.NewRegistry()
	reg.Bootstrap()
	fc := format.NewContext()
	fc.Enter(types.ClassIDInt, format.StreamOfElements)

	out := emitToString(t, AddIntake{Value: Get{Class: This()}, Class: This()}, fc, reg, nil)
	if !strings.Contains(out, "*((int*)in) = in;\n") {
		t.Fatalf("got %q", out)
	}
	if !strings.Contains(out, "in += 4;\n") || !strings.Contains(out, "len += 4;\n") {
		t.Fatalf("got %q", out)
	}
}

func TestChainComposesFragments(t *testing.T) {
	intType := "int"
	out := emitToString(t, Chain{A: Deref{Type: &intType}, B: Get{Class: This()}}, nil, nil, nil)
	if out != "*(int *)in" {
		t.Fatalf("got %q", out)
	}
}

func TestMultiplyWrapsOperandsInParens(t *testing.T) {
	out := emitToString(t, Multiply{A: Get{Class: This()}, B: Get{Class: This()}}, nil, nil, nil)
	if out != "(in * in)" {
		t.Fatalf("got %q", out)
	}
}

func TestIndentAndEndBlockRespectDepth(t *testing.T) {
	var sb strings.Builder
	e := NewEmitter(&sb)
	e.Indent = 2
	if err := (EndBlock{}).Emit(nil, nil, nil, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sb.String() != "}\n\t\t" {
		t.Fatalf("got %q", sb.String())
	}
}

func TestFormatBalanceAcrossMethodCall(t *testing.T) {
	impls := NewImplRegistry()
	InstallBuiltins(impls)
	reg := types.NewRegistry()
	reg.Bootstrap()

	fc := newTestFormatContext(types.ClassIDInt)
	inBefore, outBefore := fc.Depths()

	var sb strings.Builder
	e := NewEmitter(&sb)
	instr := CallMethod{Class: This(), Method: "print"}
	if err := instr.Emit(fc, reg, impls, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inAfter, outAfter := fc.Depths()
	if inBefore != inAfter || outBefore != outAfter {
		t.Fatalf("stacks did not balance: before (%d,%d) after (%d,%d)", inBefore, outBefore, inAfter, outAfter)
	}
}
