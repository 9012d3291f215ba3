// SPDX-FileCopyrightText: © 2021 The geo authors <https://github.com/golangee/geo/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package manifest parses a geoc build manifest: a small, separate grammar
// naming a module and the ordered set of source files one `geoc build`
// invocation compiles together. This is deliberately not the same grammar
// the compiler front-end itself lexes and parses (see lexer/parse) — it is
// project configuration that sits one level above the files it enumerates.
package manifest

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer/stateful"
)

var lex = stateful.MustSimple([]stateful.Rule{
	{"comment", `//.*`, nil},
	{"String", `"(\\"|[^"])*"`, nil},
	{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
	{"Punct", `[{}]`, nil},
	{"whitespace", `\s+`, nil},
})

// Manifest names a module and the ordered set of .geo source files that
// belong to a single `geoc build` invocation.
type Manifest struct {
	Name    string   `"module" @String "{"`
	Sources []string `("source" @String)* "}"`
}

// Parse reads and parses a build manifest file.
func Parse(filename string) (*Manifest, error) {
	parser := participle.MustBuild(&Manifest{},
		participle.Lexer(lex),
		participle.Unquote("String"),
		participle.UseLookahead(1),
	)

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to open: %w", err)
	}
	defer file.Close()

	m := &Manifest{}
	return m, parser.Parse(filename, file, m)
}
