package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/jsona-lang/jsona-go"
	"github.com/jsona-lang/jsona-go/internal/jsonaglob"
	"github.com/jsona-lang/jsona-go/pkg/dom"
	"github.com/jsona-lang/jsona-go/pkg/schema"
)

// schemaInfo describes one schema the client can offer a user, part of
// the jsona/listSchemas and jsona/associatedSchema custom protocol.
type schemaInfo struct {
	URI  string `json:"uri"`
	Name string `json:"name,omitempty"`
}

type schemaRule struct {
	Glob  string `json:"glob,omitempty"`
	Regex string `json:"regex,omitempty"`
}

type schemaAssociation struct {
	SchemaURI string            `json:"schemaUri"`
	Rule      schemaRule        `json:"rule"`
	Meta      map[string]string `json:"meta,omitempty"`
}

type association struct {
	schemaAssociation
	regex *regexp.Regexp
}

// schemaRegistry tracks schema-to-document associations pushed by the
// client (jsona/associateSchemas) and compiles schema documents on
// demand. It is the extension-contributed-association layer of
// schema resolution; @jsonaschema on the document root still wins
// over it.
type schemaRegistry struct {
	mu           sync.RWMutex
	workspace    string
	associations []association
	compiled     map[string]*schema.Schema
}

func newSchemaRegistry() *schemaRegistry {
	return &schemaRegistry{compiled: make(map[string]*schema.Schema)}
}

func (r *schemaRegistry) setWorkspaceRoot(uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workspace = uri
}

func (r *schemaRegistry) setAssociations(assocs []schemaAssociation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.associations = r.associations[:0]
	for _, a := range assocs {
		entry := association{schemaAssociation: a}
		if a.Rule.Regex != "" {
			if re, err := regexp.Compile(a.Rule.Regex); err == nil {
				entry.regex = re
			}
		}
		r.associations = append(r.associations, entry)
	}
}

func (a association) matches(uri string) bool {
	if a.regex != nil {
		return a.regex.MatchString(uri)
	}
	if a.Rule.Glob != "" {
		return jsonaglob.Match(a.Rule.Glob, uri)
	}
	return false
}

// associatedSchema resolves the schema reference for a document,
// checking the document's own @jsonaschema annotation first, then the
// client-pushed associations.
func (r *schemaRegistry) associatedSchema(docURI string, root *dom.Node) (string, bool) {
	if root != nil {
		if ref, ok := schema.DocumentSchemaURL(root); ok {
			return ref, true
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.associations) - 1; i >= 0; i-- {
		if r.associations[i].matches(docURI) {
			return r.associations[i].SchemaURI, true
		}
	}
	return "", false
}

func (r *schemaRegistry) listSchemas(docURI string) []schemaInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []schemaInfo
	for _, a := range r.associations {
		if docURI == "" || a.matches(docURI) {
			out = append(out, schemaInfo{URI: a.SchemaURI, Name: a.Meta["name"]})
		}
	}
	return out
}

// compile fetches and compiles the schema document ref points to,
// caching the result. ref may be a filesystem path or an http(s) URL.
func (r *schemaRegistry) compile(ref string) (*schema.Schema, []jsona.Diagnostic, bool) {
	r.mu.RLock()
	cached, ok := r.compiled[ref]
	r.mu.RUnlock()
	if ok {
		return cached, nil, true
	}

	r.mu.RLock()
	workspace := r.workspace
	r.mu.RUnlock()
	src, err := fetchSchemaSource(ref, workspace)
	if err != nil {
		return nil, nil, false
	}
	sch, diags := jsona.CompileSchema(string(src))
	for _, d := range diags {
		if d.Severity == "error" {
			return nil, diags, false
		}
	}

	r.mu.Lock()
	r.compiled[ref] = sch
	r.mu.Unlock()
	return sch, diags, true
}

// fetchSchemaSource reads the schema document ref points to. A bare
// relative filesystem path (no scheme, not already absolute) is
// resolved against workspace, the root the client reported on
// initialize.
func fetchSchemaSource(ref, workspace string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		resp, err := http.Get(ref)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		return io.ReadAll(resp.Body)
	}
	path := strings.TrimPrefix(ref, "file://")
	if workspace != "" && !filepath.IsAbs(path) {
		root := strings.TrimPrefix(workspace, "file://")
		path = filepath.Join(root, path)
	}
	return os.ReadFile(path)
}

// Request handles the custom jsona/* methods the host editor isn't
// required to register separate handlers for: jsona/listSchemas and
// jsona/associatedSchema (client-to-server requests) and
// jsona/associateSchemas (client-to-server notification).
func (s *Server) Request(ctx context.Context, method string, params interface{}) (interface{}, error) {
	switch method {
	case "jsona/listSchemas":
		var p struct {
			DocumentURI string `json:"documentUri"`
		}
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return map[string]any{"schemas": s.sch.listSchemas(p.DocumentURI)}, nil

	case "jsona/associatedSchema":
		var p struct {
			DocumentURI string `json:"documentUri"`
		}
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		doc := s.docs.get(p.DocumentURI)
		var root *dom.Node
		if doc != nil {
			root = doc.root
		}
		if ref, ok := s.sch.associatedSchema(p.DocumentURI, root); ok {
			return map[string]any{"schema": schemaInfo{URI: ref}}, nil
		}
		return map[string]any{}, nil

	case "jsona/associateSchemas":
		var p struct {
			Associations []schemaAssociation `json:"associations"`
		}
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		s.sch.setAssociations(p.Associations)
		return nil, nil

	default:
		return nil, nil
	}
}

func decodeParams(params interface{}, out interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// notifyWorkspaceInitialized tells the client which workspace root the
// server resolved, the jsona/initializeWorkspace server-to-client
// notification.
func (s *Server) notifyWorkspaceInitialized(ctx context.Context, rootURI string) {
	if s.conn == nil {
		return
	}
	s.conn.Notify(ctx, "jsona/initializeWorkspace", map[string]any{"rootUri": rootURI})
}

// notifyOutput relays a CLI-style message (e.g. a format or lint
// result) to the client, the jsona/messageWithOutput notification.
func (s *Server) notifyOutput(ctx context.Context, kind, message string) {
	if s.conn == nil {
		return
	}
	s.conn.Notify(ctx, "jsona/messageWithOutput", map[string]any{"kind": kind, "message": message})
}
