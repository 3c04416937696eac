package schema

import "testing"

func TestQueryIntoProperties(t *testing.T) {
	root := &Schema{
		Type: Types{TypeObject},
		Properties: map[string]*Schema{
			"a": {Type: Types{TypeString}},
		},
	}
	got, ok := Query(root, "/a")
	if !ok || got.Type[0] != TypeString {
		t.Fatalf("unexpected query result: %+v %v", got, ok)
	}
}

func TestQueryThroughDefsRef(t *testing.T) {
	root := &Schema{
		Defs: map[string]*Schema{
			"Point": {Type: Types{TypeObject}, Properties: map[string]*Schema{
				"x": {Type: Types{TypeInteger}},
			}},
		},
		Type:       Types{TypeObject},
		Properties: map[string]*Schema{"p": {Ref: "#/$defs/Point"}},
	}
	got, ok := Query(root, "/p/x")
	if !ok || got.Type[0] != TypeInteger {
		t.Fatalf("unexpected query result: %+v %v", got, ok)
	}
}

func TestQueryThroughOneOfFansOutToAllBranches(t *testing.T) {
	root := &Schema{
		OneOf: []*Schema{
			{Type: Types{TypeObject}, Properties: map[string]*Schema{"a": {Type: Types{TypeInteger}}}},
			{Type: Types{TypeObject}, Properties: map[string]*Schema{"a": {Type: Types{TypeString}}}},
		},
	}
	all := queryAll(root, "/a")
	if len(all) != 2 {
		t.Fatalf("expected a branch result from each oneOf arm, got %d", len(all))
	}
	got, ok := Query(root, "/a")
	if !ok || got.Type[0] != TypeInteger {
		t.Fatalf("expected Query to pick the first oneOf branch, got %+v %v", got, ok)
	}
}

func TestResolveExternalRefReturnsNil(t *testing.T) {
	root := &Schema{}
	local := &Schema{Ref: "https://example.com/other.json"}
	if got := Resolve(root, local); got != nil {
		t.Fatalf("expected nil for an unresolvable ref, got %+v", got)
	}
}
