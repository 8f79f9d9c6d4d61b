// Package parser turns GP2 rule-source text into internal/ast trees using a
// participle grammar, the same approach the corpus uses for its own domain
// language front-end.
package parser

import "github.com/alecthomas/participle/v2/lexer"

// RuleLexer tokenises `.rule` source. Rule order matters: longer operators
// must be tried before their prefixes, and String/Ident/Int must each be
// tried before the generic punctuation fallback.
var RuleLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},
		{Name: "Int", Pattern: `[0-9]+`, Action: nil},
		{Name: "Operator", Pattern: `<->|->|<=|>=|!=|[+\-*/.<>=]`, Action: nil},
		{Name: "Punctuation", Pattern: `[{}\[\](),:;#]`, Action: nil},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
