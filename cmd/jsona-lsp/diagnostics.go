package main

import (
	"context"

	"go.lsp.dev/protocol"

	"github.com/jsona-lang/jsona-go"
)

// publishDiagnostics merges doc's cached parse diagnostics with schema
// validation diagnostics, when a schema is associated with doc's uri,
// and pushes the combined set to the client.
func (s *Server) publishDiagnostics(ctx context.Context, doc *document) {
	diags := doc.diags
	if ref, ok := s.sch.associatedSchema(doc.uri, doc.root); ok {
		if sch, schDiags, ok := s.sch.compile(ref); ok {
			diags = append(append([]jsona.Diagnostic{}, diags...), jsona.ValidateDOM(doc.root, sch)...)
		} else {
			diags = append(append([]jsona.Diagnostic{}, diags...), schDiags...)
		}
	}

	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, protocol.Diagnostic{
			Range:    toLSPRange(d.Range),
			Severity: toLSPSeverity(d.Severity),
			Message:  d.Message,
			Source:   "jsona",
		})
	}

	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(doc.uri),
			Diagnostics: out,
		})
	}
}

func toLSPRange(r jsona.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(max(r.Start.Line-1, 0)), Character: uint32(max(r.Start.Column-1, 0))},
		End:   protocol.Position{Line: uint32(max(r.End.Line-1, 0)), Character: uint32(max(r.End.Column-1, 0))},
	}
}

func toLSPSeverity(severity string) protocol.DiagnosticSeverity {
	if severity == "warning" {
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}
