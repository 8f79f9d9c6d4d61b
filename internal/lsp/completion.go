package lsp

import protocol "github.com/tliron/glsp/protocol_3_16"

// ruleKeywords lists the fixed vocabulary of the `.rule` grammar, offered
// verbatim as completion items; there is no dynamic symbol table to merge
// in beyond what's already visible as plain identifiers in the buffer.
var ruleKeywords = []string{
	"rule", "vars", "lhs", "rhs", "interface", "where",
	"node", "edge", "root",
	"int", "char", "string", "atom", "list",
	"none", "red", "green", "blue", "grey", "dashed", "any",
	"indeg", "outdeg",
	"and", "or", "not",
}

func keywordCompletions() []protocol.CompletionItem {
	kind := protocol.CompletionItemKindKeyword
	items := make([]protocol.CompletionItem, 0, len(ruleKeywords))
	for _, kw := range ruleKeywords {
		word := kw
		items = append(items, protocol.CompletionItem{
			Label: word,
			Kind:  &kind,
		})
	}
	return items
}
