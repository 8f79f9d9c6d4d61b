package lsp

import "gp2c/internal/ast"

// SemanticToken is one LSP semantic token entry in absolute line/character
// form; TextDocumentSemanticTokensFull delta-encodes these for the wire.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

func tokenTypeIndex(name string) int {
	for i, t := range SemanticTokenTypes {
		if t == name {
			return i
		}
	}
	return 0
}

func collectSemanticTokens(file *ast.RuleFile) []SemanticToken {
	var tokens []SemanticToken
	for _, rule := range file.Rules {
		tokens = append(tokens, walkRule(rule)...)
	}
	return tokens
}

func walkRule(r *ast.Rule) []SemanticToken {
	var tokens []SemanticToken
	tokens = append(tokens, makeToken(r.Pos, len(r.Name), "namespace", 1))

	for _, v := range r.Vars {
		tokens = append(tokens, makeToken(v.Pos, len(v.Type), "keyword", 0))
		tokens = append(tokens, makeToken(endOf(v.Pos, len(v.Type)+1), len(v.Name), "variable", 1))
	}

	tokens = append(tokens, walkGraphBlock(r.LHS)...)
	tokens = append(tokens, walkGraphBlock(r.RHS)...)

	if r.Interface != nil {
		for _, name := range r.Interface.Names {
			tokens = append(tokens, makeToken(name.Pos, len(name.Name), "property", 0))
		}
	}
	return tokens
}

func walkGraphBlock(g *ast.GraphBlock) []SemanticToken {
	if g == nil {
		return nil
	}
	var tokens []SemanticToken
	for _, n := range g.Nodes {
		tokens = append(tokens, makeToken(n.Pos, len(n.Name), "variable", 1))
	}
	for _, e := range g.Edges {
		tokens = append(tokens, makeToken(e.Pos, len(e.Name), "variable", 1))
		if e.Source != nil {
			tokens = append(tokens, makeToken(e.Source.Pos, len(e.Source.Name), "variable", 0))
		}
		if e.Target != nil {
			tokens = append(tokens, makeToken(e.Target.Pos, len(e.Target.Name), "variable", 0))
		}
	}
	return tokens
}

func makeToken(pos ast.Position, length int, tokenType string, modifiers int) SemanticToken {
	line := 0
	if pos.Line > 0 {
		line = pos.Line - 1
	}
	col := 0
	if pos.Column > 0 {
		col = pos.Column - 1
	}
	return SemanticToken{
		Line:           uint32(line),
		StartChar:      uint32(col),
		Length:         uint32(length),
		TokenType:      tokenTypeIndex(tokenType),
		TokenModifiers: modifiers,
	}
}

func endOf(pos ast.Position, offset int) ast.Position {
	pos.Column += offset
	pos.Offset += offset
	return pos
}
