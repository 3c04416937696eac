package main

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/jsona-lang/jsona-go"
	"github.com/jsona-lang/jsona-go/pkg/format"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}

	formatted, err := jsona.Format(doc.content, format.Default())
	if err != nil {
		s.notifyOutput(ctx, "error", "format "+doc.uri+": "+err.Error())
		return nil, nil
	}
	if formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}

	lines := strings.Count(doc.content, "\n")
	if len(doc.content) > 0 && doc.content[len(doc.content)-1] != '\n' {
		lines++
	}

	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: uint32(lines), Character: 0},
			},
			NewText: formatted,
		},
	}, nil
}
