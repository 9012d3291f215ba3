// SPDX-FileCopyrightText: © 2021 The geo authors <https://github.com/golangee/geo/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package lexer

import "fmt"

// braceMatcher tracks, for each of the four real bracket kinds, the stack of
// unmatched opener lexeme-indices, plus the opener->closer index map built
// as closers are seen. Quote-likes and comments never touch this type; they
// are emitted with BraceStatus Agnostic.
type braceMatcher struct {
	stacks  [4][]int // indexed by BraceKind (Round..Angle)
	matches [4]map[int]int
}

func newBraceMatcher() *braceMatcher {
	bm := &braceMatcher{}
	for i := range bm.matches {
		bm.matches[i] = make(map[int]int)
	}
	return bm
}

// pushOpener records lexemeIndex as an unmatched opener of kind. kind must
// be one of the four real bracket kinds — the stacks array is sized for
// exactly those; a quote/comment pseudo-bracket reaching here would be a
// lexer dispatch bug, not a malformed-input condition, so it panics rather
// than returning an error.
func (bm *braceMatcher) pushOpener(kind BraceKind, lexemeIndex int) {
	if !kind.realBracket() {
		panic(fmt.Sprintf("lexer: pushOpener called with non-bracket kind %v", kind))
	}
	bm.stacks[kind] = append(bm.stacks[kind], lexemeIndex)
}

// popCloser matches lexemeIndex (a closer of kind) against the most recent
// unmatched opener of the same kind. Returns the opener's lexeme index and
// true on success; false if there was no matching opener (an unmatched
// close bracket, a lexical error the caller reports with the offset of
// lexemeIndex's lexeme).
func (bm *braceMatcher) popCloser(kind BraceKind, lexemeIndex int) (int, bool) {
	stack := bm.stacks[kind]
	if len(stack) == 0 {
		return 0, false
	}
	opener := stack[len(stack)-1]
	bm.stacks[kind] = stack[:len(stack)-1]
	bm.matches[kind][opener] = lexemeIndex
	return opener, true
}

// level reports the current stack depth for kind, used to stamp a brace
// lexeme's Level field at the moment it is emitted.
func (bm *braceMatcher) level(kind BraceKind) int {
	return len(bm.stacks[kind])
}

// firstUnclosed returns the lexeme index of the earliest opener across all
// four kinds that was never matched by a closer, for use as the offset of
// an UnclosedBracket error once scanning reaches EOF.
func (bm *braceMatcher) firstUnclosed() (int, bool) {
	found := false
	best := 0
	for _, s := range bm.stacks {
		for _, idx := range s {
			if !found || idx < best {
				best = idx
				found = true
			}
		}
	}
	return best, found
}

// fixup rewrites every SpeculativeOpen brace lexeme in place to Open(k),
// using the opener->closer map accumulated during the scan. Must run after
// the full lexeme sequence has been produced.
func (bm *braceMatcher) fixup(lexemes []Lexeme) {
	for i := range lexemes {
		lx := &lexemes[i]
		if lx.Kind != BraceLex || lx.Status != SpeculativeOpen {
			continue
		}
		if closer, ok := bm.matches[lx.Brace][i]; ok {
			lx.Status = Open
			lx.Matching = closer
		}
	}
}
