package main

import "testing"

func TestSchemaRegistryAssociationsGlobMatch(t *testing.T) {
	r := newSchemaRegistry()
	r.setAssociations([]schemaAssociation{
		{SchemaURI: "schema.jsona", Rule: schemaRule{Glob: "*.config.jsona"}},
	})
	ref, ok := r.associatedSchema("file:///app.config.jsona", nil)
	if !ok || ref != "schema.jsona" {
		t.Fatalf("got (%q, %v), want (schema.jsona, true)", ref, ok)
	}
	if _, ok := r.associatedSchema("file:///app.txt", nil); ok {
		t.Fatal("expected no match for a non-matching uri")
	}
}

func TestSchemaRegistryLastAssociationWins(t *testing.T) {
	r := newSchemaRegistry()
	r.setAssociations([]schemaAssociation{
		{SchemaURI: "first.jsona", Rule: schemaRule{Glob: "*.jsona"}},
		{SchemaURI: "second.jsona", Rule: schemaRule{Glob: "*.jsona"}},
	})
	ref, ok := r.associatedSchema("file:///x.jsona", nil)
	if !ok || ref != "second.jsona" {
		t.Fatalf("got (%q, %v), want (second.jsona, true)", ref, ok)
	}
}

func TestSchemaRegistryListSchemasFiltersByDocument(t *testing.T) {
	r := newSchemaRegistry()
	r.setAssociations([]schemaAssociation{
		{SchemaURI: "a.jsona", Rule: schemaRule{Glob: "*.a.jsona"}},
		{SchemaURI: "b.jsona", Rule: schemaRule{Glob: "*.b.jsona"}},
	})
	got := r.listSchemas("file:///x.a.jsona")
	if len(got) != 1 || got[0].URI != "a.jsona" {
		t.Fatalf("got %v, want exactly a.jsona", got)
	}
}
