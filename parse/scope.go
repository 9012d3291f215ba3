// SPDX-FileCopyrightText: © 2021 The geo authors <https://github.com/golangee/geo/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parse

import "github.com/golangee/geo/lexer"

// ScopeState mirrors §3: the root scope is Root, every scope opened by a
// block is Global (the parser always demotes a freshly pushed scope).
type ScopeState int

const (
	RootState ScopeState = iota
	GlobalState
)

// BraceState is None for the root scope, or records the bracket kind and
// nesting level for a scope opened by a block.
type BraceState struct {
	Present bool
	Kind    lexer.BraceKind
	Level   int
}

// NoParent marks the root scope's parent.
const NoParent = -1

// Scope owns a sequence of tokens produced while that block was open.
// Scopes are appended to a Tree and never mutated after their block closes.
type Scope struct {
	State      ScopeState
	Brace      BraceState
	Tokens     []Token
	Declared   map[string]bool
	Undeclared map[string]bool
	Index      int
	Parent     int
}

// Tree is the flat scope table; scope 0 is always the root.
type Tree struct {
	Scopes []*Scope
}

func newTree() *Tree {
	t := &Tree{}
	t.Scopes = append(t.Scopes, &Scope{
		State:      RootState,
		Index:      0,
		Parent:     NoParent,
		Declared:   map[string]bool{},
		Undeclared: map[string]bool{},
	})
	return t
}

// push appends a new, empty Global scope as a child of parent and returns
// its index.
func (t *Tree) push(parent int, brace BraceState) int {
	idx := len(t.Scopes)
	t.Scopes = append(t.Scopes, &Scope{
		State:      GlobalState,
		Brace:      brace,
		Index:      idx,
		Parent:     parent,
		Declared:   map[string]bool{},
		Undeclared: map[string]bool{},
	})
	return idx
}

// Get returns the scope at index i.
func (t *Tree) Get(i int) *Scope { return t.Scopes[i] }
