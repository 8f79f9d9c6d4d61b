package ast

import "github.com/alecthomas/participle/v2/lexer"

// Position aliases the participle lexer position so grammar-tagged fields
// named Pos/EndPos are populated automatically during parsing.
type Position = lexer.Position
