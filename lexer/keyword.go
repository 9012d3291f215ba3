// SPDX-FileCopyrightText: © 2021 The geo authors <https://github.com/golangee/geo/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package lexer

// matchKeyword narrows a fully-scanned identifier's candidate keyword set
// one byte at a time, acting as the keyword trie: the first letter selects
// a cluster, then each following position eliminates
// candidates until either none remain (identifier) or the text is spent and
// exactly one surviving candidate has the same length (keyword). This
// disambiguates comp/calc, type/trans and impl/inv/intake by per-position
// equality alone, with no backtracking.
func matchKeyword(text string) (Keyword, bool) {
	var candidates []Keyword
	switch text[0] {
	case 'd':
		candidates = []Keyword{Data}
	case 'c':
		candidates = []Keyword{Comp, Calc}
	case 't':
		candidates = []Keyword{Type, Trans}
	case 'i':
		candidates = []Keyword{Impl, Inv, Intake}
	case 'e':
		candidates = []Keyword{Enum}
	default:
		return 0, false
	}

	for pos := 1; pos < len(text) && len(candidates) > 0; pos++ {
		surviving := candidates[:0:0]
		for _, k := range candidates {
			kw := k.String()
			if pos < len(kw) && kw[pos] == text[pos] {
				surviving = append(surviving, k)
			}
		}
		candidates = surviving
	}

	for _, k := range candidates {
		if len(k.String()) == len(text) {
			return k, true
		}
	}
	return 0, false
}

func isIdentStart(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z'
}

func isIdentBody(b byte) bool {
	return isIdentStart(b) || b >= '0' && b <= '9' || b == '_' || b == '-'
}
