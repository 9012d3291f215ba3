// SPDX-FileCopyrightText: © 2021 The geo authors <https://github.com/golangee/geo/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"strconv"

	"github.com/golangee/geo/lexer"
)

// Parse lexes src and builds the scope tree described in SPEC_FULL.md §4.2.
// Lexical errors are wrapped as a LexFailure parse error, per §7's
// propagation policy (each phase's errors cross the boundary wrapped in the
// next phase's error kind).
func Parse(src []byte) (*Tree, error) {
	lexemes, err := lexer.Lex(src)
	if err != nil {
		return nil, &Error{Kind: LexFailure, Cause: err}
	}
	return ParseLexemes(lexemes)
}

// ParseLexemes builds a scope tree directly from an already-lexed sequence.
func ParseLexemes(lexemes []lexer.Lexeme) (*Tree, error) {
	p := &parser{lexemes: lexemes, tree: newTree(), scope: 0}
	if err := p.parseUntil(len(lexemes)); err != nil {
		return nil, err
	}
	return p.tree, nil
}

type parser struct {
	lexemes []lexer.Lexeme
	cursor  int
	tree    *Tree
	scope   int
}

func (p *parser) cur() lexer.Lexeme { return p.lexemes[p.cursor] }

func (p *parser) offsetAt(i int) int {
	if i < len(p.lexemes) {
		return p.lexemes[i].End
	}
	if len(p.lexemes) > 0 {
		return p.lexemes[len(p.lexemes)-1].End
	}
	return 0
}

func (p *parser) curScope() *Scope { return p.tree.Get(p.scope) }

func (p *parser) emit(tok Token) {
	s := p.curScope()
	s.Tokens = append(s.Tokens, tok)
}

// pushIdentifier records name as seen in the current scope, the way every
// identifier reached as a primary token is recorded before dispatch decides
// whether it is a variable definition, a constructor call or a bare
// reference. Nothing in this package ever populates a scope's Declared set,
// so this only ever grows Undeclared — Declared exists for a distinction
// (identifiers bound by a prior declaration in scope) that no caller needs
// yet; see DESIGN.md.
func (p *parser) pushIdentifier(name string) {
	s := p.curScope()
	if !s.Declared[name] {
		s.Undeclared[name] = true
	}
}

// parseUntil drives the per-iteration dispatch loop with stall detection:
// if two consecutive iterations fail to advance the cursor, parsing aborts.
func (p *parser) parseUntil(end int) error {
	prevCursor := -1
	for p.cursor < end {
		if p.cursor == prevCursor {
			return newError(Stall, p.offsetAt(p.cursor))
		}
		prevCursor = p.cursor
		if err := p.step(end); err != nil {
			return err
		}
	}
	return nil
}

// step performs one unit of per-iteration dispatch (§4.2). It may consume
// more than one lexeme (e.g. a full block) but always makes progress or
// returns an error.
func (p *parser) step(end int) error {
	lx := p.cur()
	switch lx.Kind {
	case lexer.DelimiterLex:
		p.cursor++
		return nil
	case lexer.Identifier:
		return p.stepIdentifier(end)
	case lexer.KeywordLex:
		return p.stepKeyword(end)
	case lexer.Integer, lexer.Float:
		return p.stepNumber()
	case lexer.BraceLex:
		return p.stepBrace(end)
	case lexer.OperatorLex:
		return p.stepOperator(end)
	default:
		return newError(Stall, p.offsetAt(p.cursor))
	}
}

func (p *parser) stepIdentifier(end int) error {
	lx := p.cur()
	name := lx.Text
	p.pushIdentifier(name)
	if p.cursor+1 < end && p.lexemes[p.cursor+1].Kind == lexer.Identifier {
		varName := p.lexemes[p.cursor+1].Text
		p.emit(VariableDef{
			Type: Literal{Kind: LiteralIdentifier, Text: name},
			Name: varName,
		})
		p.cursor += 2
		return nil
	}
	if p.cursor+1 < end && isOpenRound(p.lexemes[p.cursor+1]) {
		p.cursor++
		block, err := p.parseBracedBlock()
		if err != nil {
			return err
		}
		p.emit(Constructor{Name: name, Args: block})
		return nil
	}
	p.emit(Literal{Kind: LiteralIdentifier, Text: name})
	p.cursor++
	return nil
}

func isOpenRound(lx lexer.Lexeme) bool {
	return lx.Kind == lexer.BraceLex && lx.Brace == lexer.Round && lx.Status == lexer.Open
}

func (p *parser) stepKeyword(end int) error {
	switch p.cur().Keyword {
	case lexer.Type:
		return p.parseTypeDef(end)
	case lexer.Impl:
		return p.parseImpl(end)
	case lexer.Calc, lexer.Trans:
		return p.parseMethodDef(end)
	default:
		p.emit(Literal{Kind: LiteralKeyword, Keyword: p.cur().Keyword})
		p.cursor++
		return nil
	}
}

func isClassifierKeyword(k lexer.Keyword) bool {
	return k == lexer.Data || k == lexer.Comp || k == lexer.Enum
}

func (p *parser) parseTypeDef(end int) error {
	p.cursor++ // past 'type'
	if p.cursor >= end || p.cur().Kind != lexer.Identifier {
		return newError(MissingAfterKeyword, p.offsetAt(p.cursor))
	}
	name := Literal{Kind: LiteralIdentifier, Text: p.cur().Text}
	p.cursor++
	if p.cursor >= end || p.cur().Kind != lexer.KeywordLex || !isClassifierKeyword(p.cur().Keyword) {
		return newError(MissingAfterKeyword, p.offsetAt(p.cursor))
	}
	classifier := p.cur().Keyword
	p.cursor++
	if p.cursor >= end || !isOpenCurly(p.cur()) {
		return newError(MissingAfterKeyword, p.offsetAt(p.cursor))
	}
	body, err := p.parseBracedBlock()
	if err != nil {
		return err
	}
	p.emit(TypeDef{Classifier: classifier, Name: name, Body: body})
	return nil
}

func isOpenCurly(lx lexer.Lexeme) bool {
	return lx.Kind == lexer.BraceLex && lx.Brace == lexer.Curly && lx.Status == lexer.Open
}

func (p *parser) parseImpl(end int) error {
	p.cursor++ // past 'impl'
	if p.cursor >= end {
		return newError(MissingAfterKeyword, p.offsetAt(p.cursor))
	}
	var subject Token
	if isOpenRound(p.cur()) && p.cur().Matching == p.cursor+1 {
		subject = Literal{Kind: LiteralVoid}
		p.cursor += 2
	} else if p.cur().Kind == lexer.Identifier {
		subject = Literal{Kind: LiteralIdentifier, Text: p.cur().Text}
		p.cursor++
	} else {
		return newError(MissingAfterKeyword, p.offsetAt(p.cursor))
	}
	if p.cursor >= end || !isOpenCurly(p.cur()) {
		return newError(MissingAfterKeyword, p.offsetAt(p.cursor))
	}
	body, err := p.parseBracedBlock()
	if err != nil {
		return err
	}
	p.emit(Impl{Subject: subject, Body: body})
	return nil
}

func (p *parser) parseMethodDef(end int) error {
	mode := p.cur().Keyword
	p.cursor++
	if p.cursor >= end || p.cur().Kind != lexer.Identifier {
		return newError(MissingAfterKeyword, p.offsetAt(p.cursor))
	}
	name := p.cur().Text
	p.cursor++
	if p.cursor >= end || !isOpenRound(p.cur()) {
		return newError(MissingAfterKeyword, p.offsetAt(p.cursor))
	}
	params, err := p.parseBracedBlock()
	if err != nil {
		return err
	}
	if p.cursor >= end || !isOpenCurly(p.cur()) {
		return newError(MissingAfterKeyword, p.offsetAt(p.cursor))
	}
	body, err := p.parseBracedBlock()
	if err != nil {
		return err
	}
	p.emit(MethodDef{Mode: mode, Name: name, Params: params, Body: body})
	return nil
}

func (p *parser) stepNumber() error {
	lx := p.cur()
	if lx.Kind == lexer.Integer {
		v, err := strconv.ParseInt(lx.Text, 10, 64)
		if err != nil {
			return newError(NumberParseFailure, p.offsetAt(p.cursor))
		}
		p.emit(Literal{Kind: LiteralNumber, NumberKind: NumInteger, IntValue: v})
		p.cursor++
		return nil
	}
	text := lx.Text
	if len(text) > 0 && text[len(text)-1] == 'f' {
		text = text[:len(text)-1]
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return newError(NumberParseFailure, p.offsetAt(p.cursor))
	}
	p.emit(Literal{Kind: LiteralNumber, NumberKind: NumFloat, FloatValue: v})
	p.cursor++
	return nil
}

// stepBrace handles a brace lexeme reached as a primary position (not
// pre-consumed by an identifier/keyword handler above): the round-brace
// void special case, a bare recursively-descended block, or an
// out-of-place closer.
func (p *parser) stepBrace(end int) error {
	lx := p.cur()
	switch lx.Status {
	case lexer.Close:
		return newError(WrongLevelClose, p.offsetAt(p.cursor))
	case lexer.Agnostic:
		switch lx.Brace {
		case lexer.StringLit, lexer.CharLit:
			p.emit(Literal{Kind: LiteralString, Text: lx.Text})
		case lexer.LineComment, lexer.BlockComment:
			p.emit(Literal{Kind: LiteralComment, Text: lx.Text})
		}
		p.cursor++
		return nil
	case lexer.Open:
		if lx.Brace == lexer.Round && lx.Matching == p.cursor+1 {
			p.emit(Literal{Kind: LiteralVoid})
			p.cursor += 2
			return nil
		}
		block, err := p.parseBracedBlock()
		if err != nil {
			return err
		}
		p.emit(block)
		return nil
	default:
		return newError(Stall, p.offsetAt(p.cursor))
	}
}

// parseBracedBlock implements block descent: push a new scope, parse until
// the cursor reaches the opener's matching closer, pop the scope, and
// return a Block token referencing the new scope's index.
func (p *parser) parseBracedBlock() (Block, error) {
	opener := p.cur()
	openerIdx := p.cursor
	closerIdx := opener.Matching
	kind := opener.Brace

	newScope := p.tree.push(p.scope, BraceState{Present: true, Kind: kind, Level: opener.Level})
	savedScope := p.scope
	if savedScope == NoParent {
		return Block{}, newError(LeftRootScope, p.offsetAt(p.cursor))
	}
	p.scope = newScope
	p.cursor = openerIdx + 1

	if err := p.parseUntil(closerIdx); err != nil {
		p.scope = savedScope
		return Block{}, err
	}
	if p.cursor != closerIdx {
		p.scope = savedScope
		return Block{}, newError(WrongLevelClose, p.offsetAt(p.cursor))
	}

	p.scope = savedScope
	p.cursor = closerIdx + 1
	return Block{Brace: kind, Scope: newScope}, nil
}

func (p *parser) stepOperator(end int) error {
	op := p.cur().Op
	offset := p.offsetAt(p.cursor)
	p.cursor++
	scope := p.curScope()
	if len(scope.Tokens) > 0 {
		left := scope.Tokens[len(scope.Tokens)-1]
		scope.Tokens = scope.Tokens[:len(scope.Tokens)-1]
		right, err := p.parseOperand(end)
		if err != nil {
			return err
		}
		p.emit(OperatorGroup{Op: op, Left: left, Right: right})
		return nil
	}
	if op != lexer.Not {
		return newError(IllegalUnaryOperator, offset)
	}
	operand, err := p.parseOperand(end)
	if err != nil {
		return err
	}
	p.emit(OperatorGroup{Op: op, Unary: true, Operand: operand})
	return nil
}

// parseOperand parses exactly one token — the "next parsed token" an
// operator group's right-hand side or unary operand refers to — by running
// the ordinary per-iteration dispatch until it appends something.
func (p *parser) parseOperand(end int) (Token, error) {
	scope := p.curScope()
	before := len(scope.Tokens)
	for len(scope.Tokens) == before {
		if p.cursor >= end {
			return nil, newError(MissingAfterKeyword, p.offsetAt(p.cursor))
		}
		prevCursor := p.cursor
		if err := p.step(end); err != nil {
			return nil, err
		}
		if p.cursor == prevCursor {
			return nil, newError(Stall, p.offsetAt(p.cursor))
		}
	}
	tok := scope.Tokens[len(scope.Tokens)-1]
	scope.Tokens = scope.Tokens[:len(scope.Tokens)-1]
	return tok, nil
}
