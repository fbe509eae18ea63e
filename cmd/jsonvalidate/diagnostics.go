package main

import (
	"context"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/nanojson/pulljson/pulljson"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = &document{uri: uri, content: content, version: version}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.put(uri, params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// TextDocumentSyncKindFull: the last change carries the entire document.
	content := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.docs.put(uri, content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}
	diagnostics := validate(doc.content)
	if s.conn == nil {
		return
	}
	s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Version:     uint32(doc.version),
		Diagnostics: diagnostics,
	})
}

// validate feeds the document through the push driver in fixed-size
// chunks, the shape a byte-at-a-time editor transport would actually
// deliver, and turns the first syntax error (if any) into an LSP
// Diagnostic. A clean parse publishes an empty diagnostic set, clearing
// any diagnostic from a previous revision.
func validate(content string) []protocol.Diagnostic {
	const chunkSize = 4096
	scratch := make([]byte, 4096)
	w := pulljson.NewWriter(scratch, pulljson.WithInt64(), pulljson.WithFloat())

	noop := func(pulljson.Event) error { return nil }
	raw := []byte(content)
	for off := 0; off < len(raw); off += chunkSize {
		end := off + chunkSize
		if end > len(raw) {
			end = len(raw)
		}
		if err := w.Write(raw[off:end], noop); err != nil {
			return []protocol.Diagnostic{diagnosticFor(err, content)}
		}
	}
	if err := w.Finish(noop); err != nil {
		return []protocol.Diagnostic{diagnosticFor(err, content)}
	}
	return []protocol.Diagnostic{}
}

func diagnosticFor(err error, content string) protocol.Diagnostic {
	line, col := 0, 0
	if se, ok := err.(*pulljson.SyntaxError); ok {
		line, col = offsetToLineCol(content, se.Offset())
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
			End:   protocol.Position{Line: uint32(line), Character: uint32(col + 1)},
		},
		Severity: protocol.DiagnosticSeverityError,
		Source:   "jsonvalidate",
		Message:  err.Error(),
	}
}

func offsetToLineCol(content string, offset int) (line, col int) {
	for i, r := range content {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}
