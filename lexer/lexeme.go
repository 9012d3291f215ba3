// SPDX-FileCopyrightText: © 2021 The geo authors <https://github.com/golangee/geo/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package lexer turns a .geo source buffer into an ordered sequence of
// lexemes, matching brackets as it goes.
package lexer

// Kind tags the variant a Lexeme carries.
type Kind int

const (
	Identifier Kind = iota
	KeywordLex
	Integer
	Float
	OperatorLex
	BraceLex
	DelimiterLex
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case KeywordLex:
		return "keyword"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case OperatorLex:
		return "operator"
	case BraceLex:
		return "brace"
	case DelimiterLex:
		return "delimiter"
	default:
		return "unknown"
	}
}

// Keyword enumerates the nine reserved words.
type Keyword int

const (
	Data Keyword = iota
	Comp
	Type
	Impl
	Enum
	Calc
	Trans
	Inv
	Intake
)

var keywordText = [...]string{
	Data: "data", Comp: "comp", Type: "type", Impl: "impl", Enum: "enum",
	Calc: "calc", Trans: "trans", Inv: "inv", Intake: "intake",
}

func (k Keyword) String() string { return keywordText[k] }

// BraceKind identifies the four real bracket kinds plus the three
// quote/comment pseudo-brackets that share the brace-lexing machinery.
type BraceKind int

const (
	Round BraceKind = iota
	Square
	Curly
	Angle
	StringLit
	CharLit
	LineComment
	BlockComment
)

func (k BraceKind) String() string {
	switch k {
	case Round:
		return "()"
	case Square:
		return "[]"
	case Curly:
		return "{}"
	case Angle:
		return "<>"
	case StringLit:
		return "string"
	case CharLit:
		return "char"
	case LineComment:
		return "line-comment"
	case BlockComment:
		return "block-comment"
	default:
		return "unknown-brace"
	}
}

// realBracket reports whether k participates in the four-stack brace
// matcher (as opposed to being a quote/comment pseudo-brace).
func (k BraceKind) realBracket() bool {
	return k == Round || k == Square || k == Curly || k == Angle
}

// BraceStatus is the lifecycle state of a brace lexeme.
type BraceStatus int

const (
	SpeculativeOpen BraceStatus = iota
	Open
	Close
	Agnostic
)

// Operator enumerates every reserved operator, including the compound
// multi-byte forms.
type Operator int

const (
	Plus Operator = iota
	PlusEq
	Minus
	MinusEq
	Star
	StarEq
	Slash
	SlashEq
	Caret
	Percent
	Assign
	Eq
	NotEq
	Not
	Dot
	DotDot
	Ellipsis
	Arrow
	FatArrow
	Lt
	LtEq
	Gt
	GtEq
	Amp
	Pipe
	Question
	Colon
	ColonColon
)

var operatorText = [...]string{
	Plus: "+", PlusEq: "+=", Minus: "-", MinusEq: "-=", Star: "*", StarEq: "*=",
	Slash: "/", SlashEq: "/=", Caret: "^", Percent: "%", Assign: "=", Eq: "==",
	NotEq: "!=", Not: "!", Dot: ".", DotDot: "..", Ellipsis: "...", Arrow: "->",
	FatArrow: "=>", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=", Amp: "&", Pipe: "|",
	Question: "?", Colon: ":", ColonColon: "::",
}

func (o Operator) String() string { return operatorText[o] }

// DelimKind distinguishes comma from semicolon.
type DelimKind int

const (
	Comma DelimKind = iota
	Semicolon
)

func (d DelimKind) String() string {
	if d == Comma {
		return ","
	}
	return ";"
}

// Lexeme is a tagged variant over every lexical category the scanner
// produces. Not every field is meaningful for every Kind; see the
// constructors below for which fields a given Kind populates.
type Lexeme struct {
	Kind Kind
	End  int // byte offset one past this lexeme

	Text string // Identifier / Integer / Float text, or quote/comment body

	Keyword Keyword
	Op      Operator
	Delim   DelimKind

	Brace    BraceKind
	Status   BraceStatus
	Level    int
	Matching int // index of the matching closer/opener once Status == Open
}

func identifierLexeme(text string, end int) Lexeme {
	return Lexeme{Kind: Identifier, Text: text, End: end}
}

func keywordLexeme(k Keyword, end int) Lexeme {
	return Lexeme{Kind: KeywordLex, Keyword: k, End: end}
}

func integerLexeme(text string, end int) Lexeme {
	return Lexeme{Kind: Integer, Text: text, End: end}
}

func floatLexeme(text string, end int) Lexeme {
	return Lexeme{Kind: Float, Text: text, End: end}
}

func operatorLexeme(op Operator, end int) Lexeme {
	return Lexeme{Kind: OperatorLex, Op: op, End: end}
}

func delimiterLexeme(d DelimKind, end int) Lexeme {
	return Lexeme{Kind: DelimiterLex, Delim: d, End: end}
}

func braceLexeme(kind BraceKind, status BraceStatus, level, end int) Lexeme {
	return Lexeme{Kind: BraceLex, Brace: kind, Status: status, Level: level, End: end}
}

func agnosticLexeme(kind BraceKind, text string, end int) Lexeme {
	return Lexeme{Kind: BraceLex, Brace: kind, Status: Agnostic, Text: text, End: end}
}
