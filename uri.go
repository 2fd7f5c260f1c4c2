package schemastream

import (
	"net/url"
	"strings"
)

// SchemaUri is the absolute-URI-plus-fragment pair every SchemaValue and
// Reference carries, per spec §3.4. Grounded on the teacher's utils.go
// resolveURI/parseURI helpers, which likewise lean on net/url for
// RFC-3986 resolution rather than hand-rolling URI joining; no pack
// library builds schema $id URIs, so stdlib net/url is the right tool
// here (see DESIGN.md).
type SchemaUri struct {
	Full          string
	FragmentStart *int
}

// NewSchemaUri parses raw into a SchemaUri, recording where the fragment
// (if any) begins so callers can cheaply recover the fragment substring
// without re-splitting the string.
func NewSchemaUri(raw string) SchemaUri {
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		i := idx
		return SchemaUri{Full: raw, FragmentStart: &i}
	}
	return SchemaUri{Full: raw}
}

// Fragment returns the fragment substring (without the leading '#'), or
// "" if none is present.
func (u SchemaUri) Fragment() string {
	if u.FragmentStart == nil {
		return ""
	}
	return u.Full[*u.FragmentStart+1:]
}

// Base returns the URI without its fragment.
func (u SchemaUri) Base() string {
	if u.FragmentStart == nil {
		return u.Full
	}
	return u.Full[:*u.FragmentStart]
}

// Set resolves raw against base, following RFC 3986 reference
// resolution (net/url.Parse + ResolveReference), mirroring the
// "$id present → set(base, parent_base, id_string)" rule of spec §4.1.
func (u *SchemaUri) Set(base SchemaUri, raw string) error {
	baseURL, err := url.Parse(base.Base())
	if err != nil {
		return newCompileError(ErrID, "", "base URI is not parseable: "+err.Error())
	}
	refURL, err := url.Parse(raw)
	if err != nil {
		return newCompileError(ErrID, "", "$id value is not parseable: "+err.Error())
	}
	resolved := baseURL.ResolveReference(refURL)
	*u = NewSchemaUri(resolved.String())
	return nil
}

// Inherit copies parent's URI verbatim, per the "base_uri is inherited
// from parent when no local $id is present" invariant (spec §3.1 (vi)).
func (u *SchemaUri) Inherit(parent SchemaUri) { *u = parent }

// BaseEqual compares two URIs ignoring their fragments, used by the
// reference resolver's "base URI not equal to schema root's" external-ref
// check (spec §4.2 step 3).
func (u SchemaUri) BaseEqual(other SchemaUri) bool { return u.Base() == other.Base() }

func (u SchemaUri) String() string { return u.Full }
