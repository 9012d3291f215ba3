package parse

import (
	"testing"

	"github.com/golangee/geo/lexer"
)

func TestParseSingleIdentifier(t *testing.T) {
	tree, err := Parse([]byte("Goose"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tokens := tree.Get(0).Tokens
	if len(tokens) != 1 {
		t.Fatalf("want 1 token, got %d", len(tokens))
	}
	lit, ok := tokens[0].(Literal)
	if !ok || lit.Kind != LiteralIdentifier || lit.Text != "Goose" {
		t.Fatalf("got %#v", tokens[0])
	}
}

func TestParseIdentifierMarksUndeclared(t *testing.T) {
	tree, err := Parse([]byte("Goose"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.Get(0).Undeclared["Goose"] {
		t.Fatalf("want Goose recorded as undeclared, got %+v", tree.Get(0).Undeclared)
	}
}

func TestParseVoid(t *testing.T) {
	tree, err := Parse([]byte("()"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tokens := tree.Get(0).Tokens
	if len(tokens) != 1 {
		t.Fatalf("want 1 token, got %d", len(tokens))
	}
	lit, ok := tokens[0].(Literal)
	if !ok || lit.Kind != LiteralVoid {
		t.Fatalf("got %#v", tokens[0])
	}
}

func TestParseUnaryNot(t *testing.T) {
	tree, err := Parse([]byte("!Puff"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tokens := tree.Get(0).Tokens
	if len(tokens) != 1 {
		t.Fatalf("want 1 token, got %d", len(tokens))
	}
	op, ok := tokens[0].(OperatorGroup)
	if !ok || !op.Unary || op.Op != lexer.Not {
		t.Fatalf("got %#v", tokens[0])
	}
	operand, ok := op.Operand.(Literal)
	if !ok || operand.Text != "Puff" {
		t.Fatalf("got %#v", op.Operand)
	}
}

func TestParseBinaryPlus(t *testing.T) {
	tree, err := Parse([]byte("Goose + Ocelot"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tokens := tree.Get(0).Tokens
	if len(tokens) != 1 {
		t.Fatalf("want 1 token, got %d", len(tokens))
	}
	op, ok := tokens[0].(OperatorGroup)
	if !ok || op.Unary || op.Op != lexer.Plus {
		t.Fatalf("got %#v", tokens[0])
	}
	left, ok := op.Left.(Literal)
	if !ok || left.Text != "Goose" {
		t.Fatalf("got %#v", op.Left)
	}
	right, ok := op.Right.(Literal)
	if !ok || right.Text != "Ocelot" {
		t.Fatalf("got %#v", op.Right)
	}
}

func TestParseIllegalUnaryOperator(t *testing.T) {
	_, err := Parse([]byte("+Puff"))
	perr, ok := err.(*Error)
	if !ok || perr.Kind != IllegalUnaryOperator {
		t.Fatalf("want illegal unary operator error, got %v", err)
	}
}

func TestParseTypeDef(t *testing.T) {
	tree, err := Parse([]byte("type Geheusie data { int x, int y, }"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tokens := tree.Get(0).Tokens
	if len(tokens) != 1 {
		t.Fatalf("want 1 token in scope 0, got %d", len(tokens))
	}
	td, ok := tokens[0].(TypeDef)
	if !ok {
		t.Fatalf("got %#v", tokens[0])
	}
	if td.Classifier != lexer.Data || td.Name.Text != "Geheusie" || td.Body.Scope != 1 {
		t.Fatalf("got %#v", td)
	}
	body := tree.Get(1).Tokens
	if len(body) != 2 {
		t.Fatalf("want 2 tokens in scope 1, got %d", len(body))
	}
	x, ok := body[0].(VariableDef)
	if !ok || x.Type.Text != "int" || x.Name != "x" {
		t.Fatalf("got %#v", body[0])
	}
	y, ok := body[1].(VariableDef)
	if !ok || y.Type.Text != "int" || y.Name != "y" {
		t.Fatalf("got %#v", body[1])
	}
}

func TestParseImplCalcStart(t *testing.T) {
	src := "impl () { calc start() { Point(1,2) => print () } }"
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scope0 := tree.Get(0).Tokens
	if len(scope0) != 1 {
		t.Fatalf("want 1 token in scope 0, got %d", len(scope0))
	}
	impl, ok := scope0[0].(Impl)
	if !ok {
		t.Fatalf("got %#v", scope0[0])
	}
	if _, isVoid := impl.Subject.(Literal); !isVoid || impl.Subject.(Literal).Kind != LiteralVoid {
		t.Fatalf("want void subject, got %#v", impl.Subject)
	}
	if impl.Body.Scope != 1 {
		t.Fatalf("want impl body scope 1, got %d", impl.Body.Scope)
	}

	scope1 := tree.Get(1).Tokens
	if len(scope1) != 1 {
		t.Fatalf("want 1 token in scope 1, got %d", len(scope1))
	}
	method, ok := scope1[0].(MethodDef)
	if !ok || method.Mode != lexer.Calc || method.Name != "start" {
		t.Fatalf("got %#v", scope1[0])
	}
	if method.Params.Scope != 2 || method.Body.Scope != 3 {
		t.Fatalf("want params scope 2 and body scope 3, got %#v", method)
	}

	scope3 := tree.Get(3).Tokens
	if len(scope3) != 1 {
		t.Fatalf("want 1 token in scope 3, got %d", len(scope3))
	}
	into, ok := scope3[0].(OperatorGroup)
	if !ok || into.Unary || into.Op != lexer.FatArrow {
		t.Fatalf("got %#v", scope3[0])
	}
	leftCtor, ok := into.Left.(Constructor)
	if !ok || leftCtor.Name != "Point" || leftCtor.Args.Scope != 4 {
		t.Fatalf("got %#v", into.Left)
	}
	rightCtor, ok := into.Right.(Constructor)
	if !ok || rightCtor.Name != "print" {
		t.Fatalf("got %#v", into.Right)
	}

	scope4 := tree.Get(4).Tokens
	if len(scope4) != 2 {
		t.Fatalf("want 2 tokens in scope 4, got %d", len(scope4))
	}
	first, ok := scope4[0].(Literal)
	if !ok || first.Kind != LiteralNumber || first.IntValue != 1 {
		t.Fatalf("got %#v", scope4[0])
	}
	second, ok := scope4[1].(Literal)
	if !ok || second.Kind != LiteralNumber || second.IntValue != 2 {
		t.Fatalf("got %#v", scope4[1])
	}
}

func TestParseWrapsLexError(t *testing.T) {
	_, err := Parse([]byte("{}}"))
	perr, ok := err.(*Error)
	if !ok || perr.Kind != LexFailure {
		t.Fatalf("want wrapped lex failure, got %v", err)
	}
	if _, ok := perr.Cause.(*lexer.Error); !ok {
		t.Fatalf("want lexer.Error cause, got %v", perr.Cause)
	}
}

func TestScopeAcyclicity(t *testing.T) {
	tree, err := Parse([]byte("impl () { calc start() { Point(1,2) => print () } }"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range tree.Scopes {
		seen := map[int]bool{}
		cur := s.Index
		for cur != 0 {
			if seen[cur] {
				t.Fatalf("cycle detected reaching scope %d", cur)
			}
			seen[cur] = true
			cur = tree.Get(cur).Parent
			if cur == NoParent {
				break
			}
		}
	}
}
