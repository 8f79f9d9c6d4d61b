package lsp_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gp2c/internal/lsp"
)

func fileURI(t *testing.T, relPath string) protocol.DocumentUri {
	t.Helper()
	abs, err := filepath.Abs(relPath)
	require.NoError(t, err)
	return "file://" + filepath.ToSlash(abs)
}

func TestInitializeAdvertisesSemanticTokensAndCompletion(t *testing.T) {
	h := lsp.NewHandler()
	result, err := h.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	init, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	assert.NotNil(t, init.Capabilities.SemanticTokensProvider)
	assert.NotNil(t, init.Capabilities.CompletionProvider)
	assert.Equal(t, lsp.SemanticTokenTypes, init.Capabilities.SemanticTokensProvider.Legend.TokenTypes)
}

func TestSemanticTokensFullLazyLoadsFromDisk(t *testing.T) {
	h := lsp.NewHandler()
	uri := fileURI(t, "testdata/delete_loop.rule")

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.Data, "expected semantic tokens for a valid rule file")
}

func TestTextDocumentCompletionReturnsRuleKeywords(t *testing.T) {
	h := lsp.NewHandler()
	result, err := h.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{})
	require.NoError(t, err)

	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)
	assert.False(t, list.IsIncomplete)

	var labels []string
	for _, item := range list.Items {
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "rule")
	assert.Contains(t, labels, "where")
	assert.Contains(t, labels, "indeg")
}

func TestDidOpenOnCleanFileSucceeds(t *testing.T) {
	h := lsp.NewHandler()
	uri := fileURI(t, "testdata/delete_loop.rule")

	err := h.TextDocumentDidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri},
	})
	require.NoError(t, err, "a rule file with no diagnostics should never need to notify")
}

func TestDidCloseClearsDocumentState(t *testing.T) {
	h := lsp.NewHandler()
	uri := fileURI(t, "testdata/delete_loop.rule")

	require.NoError(t, h.TextDocumentDidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri},
	}))
	err := h.TextDocumentDidClose(&glsp.Context{}, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	assert.NoError(t, err)
}
