// Package lsp implements a language server for gp2c's `.rule` source files:
// diagnostics on open/change, and semantic tokens over the parsed rule
// structure.
package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sasha-s/go-deadlock"
	"github.com/segmentio/ksuid"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gp2c/internal/ast"
	"gp2c/internal/errors"
	"gp2c/internal/ir"
	"gp2c/internal/parser"
)

// SemanticTokenTypes is the legend advertised to clients during Initialize.
var SemanticTokenTypes = []string{
	"namespace",
	"keyword",
	"variable",
	"parameter",
	"property",
	"number",
	"string",
	"operator",
}

// SemanticTokenModifiers is the modifier legend advertised during Initialize.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// compiledRule caches one rule's most recent successful build, stamped with
// a generation id so stale completions/hovers can be detected by identity
// rather than by re-diffing source text.
type compiledRule struct {
	generation ksuid.KSUID
	rule       *ir.Rule
}

// Handler implements the glsp protocol.Handler methods for gp2c rule files.
// Documents are tracked by file path rather than URI so repeated
// uriToPath conversions stay consistent across handlers.
type Handler struct {
	mu      deadlock.RWMutex
	content map[string]string
	files   map[string]*ast.RuleFile
	rules   map[string]map[string]*compiledRule // path -> rule name -> compiled
}

// NewHandler creates a Handler with empty document state.
func NewHandler() *Handler {
	return &Handler{
		content: make(map[string]string),
		files:   make(map[string]*ast.RuleFile),
		rules:   make(map[string]map[string]*compiledRule),
	}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return h.recompile(ctx, params.TextDocument.URI)
}

// TextDocumentDidChange re-reads the document from disk rather than
// trusting the sync payload's shape, the same approach the rest of the
// corpus's LSP handlers take for full-sync clients.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	return h.recompile(ctx, params.TextDocument.URI)
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.files, path)
	delete(h.rules, path)
	return nil
}

func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        keywordCompletions(),
	}, nil
}

func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	file, err := h.getOrUpdateFile(ctx, path, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return &protocol.SemanticTokens{}, nil
	}

	tokens := collectSemanticTokens(file)
	var data []uint32
	var prevLine, prevStart uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		} else {
			deltaStart = tok.StartChar
		}
		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))
		prevLine, prevStart = tok.Line, tok.StartChar
	}
	return &protocol.SemanticTokens{Data: data}, nil
}

// recompile reads the document from disk, parses and builds every rule in
// it, publishing diagnostics for whatever failed and caching the rest under
// a fresh compile generation.
func (h *Handler) recompile(ctx *glsp.Context, uri protocol.DocumentUri) error {
	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	diagnostics, err := h.compileAndCache(path)
	if err != nil {
		return err
	}

	if len(diagnostics) > 0 {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: diagnostics,
		})
	}
	return nil
}

// getOrUpdateFile returns the cached parse tree for path, compiling it from
// disk first if nothing is cached yet; mirrors the corpus's lazy
// get-or-update pattern for LSP handlers invoked before any DidOpen.
func (h *Handler) getOrUpdateFile(ctx *glsp.Context, path string, uri protocol.DocumentUri) (*ast.RuleFile, error) {
	h.mu.RLock()
	file := h.files[path]
	h.mu.RUnlock()
	if file != nil {
		return file, nil
	}

	diagnostics, err := h.compileAndCache(path)
	if err != nil {
		return nil, err
	}
	if len(diagnostics) > 0 {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: diagnostics,
		})
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.files[path], nil
}

// compileAndCache reads path from disk, parses and builds every rule in
// it, and stores the result under a fresh compile generation. It returns
// the diagnostics produced, which is empty (nil) when every rule built
// cleanly.
func (h *Handler) compileAndCache(path string) ([]protocol.Diagnostic, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := string(raw)

	file, parseErr := parser.ParseString(path, text)
	var diagnostics []protocol.Diagnostic
	generation := ksuid.New()
	compiled := make(map[string]*compiledRule)

	if parseErr != nil {
		diagnostics = append(diagnostics, parseErrorDiagnostic(parseErr)...)
	} else {
		builder := ir.NewBuilder()
		for _, ruleAST := range file.Rules {
			rule, diags := builder.Build(ruleAST)
			diagnostics = append(diagnostics, compilerErrorDiagnostics(diags)...)
			if rule != nil && !hasFatal(diags) {
				compiled[ruleAST.Name] = &compiledRule{generation: generation, rule: rule}
			}
		}
	}

	h.mu.Lock()
	h.content[path] = text
	if file != nil {
		h.files[path] = file
	}
	h.rules[path] = compiled
	h.mu.Unlock()

	return diagnostics, nil
}

func hasFatal(diags []errors.CompilerError) bool {
	for _, d := range diags {
		if d.Level == errors.Error {
			return true
		}
	}
	return false
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool { return &b }
func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
