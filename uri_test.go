package schemastream

import "testing"

func TestSchemaUriFragmentAndBase(t *testing.T) {
	u := NewSchemaUri("https://example.com/a.json#/definitions/pos")

	if got := u.Fragment(); got != "/definitions/pos" {
		t.Errorf("Fragment() = %q, want %q", got, "/definitions/pos")
	}
	if got := u.Base(); got != "https://example.com/a.json" {
		t.Errorf("Base() = %q, want %q", got, "https://example.com/a.json")
	}
}

func TestSchemaUriNoFragment(t *testing.T) {
	u := NewSchemaUri("https://example.com/a.json")

	if got := u.Fragment(); got != "" {
		t.Errorf("Fragment() = %q, want empty", got)
	}
	if got := u.Base(); got != u.Full {
		t.Errorf("Base() = %q, want %q", got, u.Full)
	}
}

func TestSchemaUriSetResolvesRelativeToBase(t *testing.T) {
	base := NewSchemaUri("https://example.com/dir/a.json")
	var u SchemaUri
	if err := u.Set(base, "b.json"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got := u.Base(); got != "https://example.com/dir/b.json" {
		t.Errorf("Set() resolved to %q, want %q", got, "https://example.com/dir/b.json")
	}
}

func TestSchemaUriInheritCopiesParent(t *testing.T) {
	parent := NewSchemaUri("https://example.com/a.json#/x")
	var u SchemaUri
	u.Inherit(parent)
	if u != parent {
		t.Errorf("Inherit() = %+v, want %+v", u, parent)
	}
}

func TestSchemaUriBaseEqualIgnoresFragment(t *testing.T) {
	a := NewSchemaUri("https://example.com/a.json#/x")
	b := NewSchemaUri("https://example.com/a.json#/y")
	c := NewSchemaUri("https://example.com/other.json#/x")

	if !a.BaseEqual(b) {
		t.Error("BaseEqual should ignore fragments for the same base")
	}
	if a.BaseEqual(c) {
		t.Error("BaseEqual should differ for different bases")
	}
}
