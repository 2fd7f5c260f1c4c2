package schemastream

import (
	"fmt"
	"strconv"

	"github.com/kaptinlin/jsonpointer"
)

// Reference is a lazily-resolved $ref, per spec §3.3. Grounded on the
// teacher's ref.go (resolveRef/resolveAnchor/resolveJSONPointer) for the
// Go shape, and on original_source/src/schema/jso_schema_reference.c for
// the exact resolution algorithm this module follows instead of the
// teacher's anchor/$dynamicRef-heavy draft-2020-12 logic.
type Reference struct {
	URI    SchemaUri
	Parent *SchemaValue
	Schema *Schema
	Result *SchemaValue
}

func (r *Reference) resolved() bool { return r.Result != nil }

// resolve implements spec §4.2's six-step algorithm. doc is the raw
// decoded JSON document the Schema was compiled from, needed to walk the
// JSON-pointer fragment the same way the C original walks its own parsed
// document rather than the compiled IR.
func (r *Reference) resolve(doc any) error {
	if r.resolved() {
		return nil
	}

	schema := r.Schema
	if cached, ok := schema.uriDerefCache[r.URI.Full]; ok {
		r.Result = cached
		return nil
	}

	if !r.URI.BaseEqual(schema.root.BaseURI) {
		return newCompileErrorP(ErrReferenceExternal, "", "$ref {uri} targets a different base URI",
			map[string]any{"uri": r.URI.Full})
	}

	fragment := r.URI.Fragment()
	if fragment == "" {
		// original_source/src/schema/jso_schema_reference.c falls through
		// from this branch into building a JSON pointer from a negative
		// start index, which is undefined behaviour (spec §9). This
		// module returns immediately instead, per the explicit fix spec
		// §9 calls for.
		r.Result = schema.root
		schema.uriDerefCache[r.URI.Full] = schema.root
		return nil
	}

	tokens, err := jsonpointer.Parse(fragment)
	if err != nil {
		return newCompileError(ErrReferenceResolve, "", fmt.Sprintf("$ref fragment %q is not a valid JSON pointer: %v", fragment, err))
	}

	target, err := resolveJSONPointer(doc, tokens)
	if err != nil {
		return newCompileError(ErrReferenceResolve, "", fmt.Sprintf("$ref %q could not be resolved: %v", r.URI.Full, err))
	}

	// Insert a placeholder before recursing so that a cycle participant
	// which re-enters this URI sees the cache populated already (spec
	// §4.2 invariant: "cycles are tolerated because step 2 short-circuits
	// once any participant of a cycle populates the cache first").
	placeholder := &SchemaValue{Parent: r.Parent}
	schema.uriDerefCache[r.URI.Full] = placeholder

	compiled, err := schema.compiler.compileValue(target, r.Parent, schema, r.URI.Base())
	if err != nil {
		delete(schema.uriDerefCache, r.URI.Full)
		return err
	}

	*placeholder = *compiled
	r.Result = placeholder
	return nil
}

// resolveAgainst resolves r against an externally-supplied document whose
// base URI is known to match r.URI's base (already verified by the
// caller), bypassing the same-root BaseEqual check resolve() enforces.
// Used by Compiler.CompileMany (SPEC_FULL.md §12) to let a reference
// cross into a sibling document registered in the same batch, which is
// not the "remote-URI fetching" spec.md §1 scopes out — every document
// involved was supplied locally by the caller up front.
func (r *Reference) resolveAgainst(targetSchema *Schema, doc any) error {
	if r.resolved() {
		return nil
	}
	owner := r.Schema
	if cached, ok := owner.uriDerefCache[r.URI.Full]; ok {
		r.Result = cached
		return nil
	}

	fragment := r.URI.Fragment()
	if fragment == "" {
		r.Result = targetSchema.root
		owner.uriDerefCache[r.URI.Full] = targetSchema.root
		return nil
	}

	tokens, err := jsonpointer.Parse(fragment)
	if err != nil {
		return newCompileError(ErrReferenceResolve, "", fmt.Sprintf("$ref fragment %q is not a valid JSON pointer: %v", fragment, err))
	}
	target, err := resolveJSONPointer(doc, tokens)
	if err != nil {
		return newCompileError(ErrReferenceResolve, "", fmt.Sprintf("$ref %q could not be resolved against its batch sibling: %v", r.URI.Full, err))
	}

	placeholder := &SchemaValue{Parent: r.Parent}
	owner.uriDerefCache[r.URI.Full] = placeholder

	compiled, err := owner.compiler.compileValue(target, r.Parent, owner, r.URI.Base())
	if err != nil {
		delete(owner.uriDerefCache, r.URI.Full)
		return err
	}
	*placeholder = *compiled
	r.Result = placeholder
	return nil
}

// resolveJSONPointer walks doc following tokens, the RFC 6901 traversal
// spec §4.2 step 5 calls for. Grounded on the traversal style of
// _examples/itayankri-go-json-schema/jsonpointer/jsonpointer.go
// (evaluateToken switching over map[string]interface{} / []interface{}),
// adapted to operate over goccy/go-json's decoded any-trees and to report
// errors instead of panicking.
func resolveJSONPointer(doc any, tokens []string) (any, error) {
	current := doc
	for _, tok := range tokens {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[tok]
			if !ok {
				return nil, fmt.Errorf("no property %q", tok)
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("invalid array index %q for length %d", tok, len(node))
			}
			current = node[idx]
		default:
			return nil, fmt.Errorf("cannot traverse into token %q: not an object or array", tok)
		}
	}
	return current, nil
}
