package schemastream

// CompileMany compiles a set of schema documents, keyed by an identifier
// (typically their $id), deferring cross-document $ref resolution until
// every document in the batch has been compiled once. This mirrors the
// teacher's Compiler.CompileBatch two-pass shape, adapted from the
// teacher's "compile all, then resolve all" strategy (compiler.go) to
// this module's lazy per-Reference resolver instead of the teacher's
// eager $ref walk. See SPEC_FULL.md §12.
//
// A $ref whose base URI matches another document's own base URI (by
// value, not by network fetch) resolves against that sibling; this is
// not the "remote-URI fetching" non-goal spec.md §1 excludes, since every
// document was supplied by the caller in the docs map up front.
func (c *Compiler) CompileMany(docs map[string][]byte) (map[string]*Schema, error) {
	schemas := make(map[string]*Schema, len(docs))
	byBaseURI := make(map[string]*Schema, len(docs))

	for id, raw := range docs {
		schema, err := c.Compile(raw)
		if err != nil {
			return nil, &CompileError{Err: ErrBatchCompile, Code: "batch_compile", Pointer: "/" + id,
				Message: "failed to compile schema " + id + ": " + err.Error()}
		}
		schemas[id] = schema
		byBaseURI[schema.root.BaseURI.Base()] = schema
	}

	for _, schema := range schemas {
		resolveExternalRefs(schema, byBaseURI)
	}

	return schemas, nil
}

// resolveExternalRefs walks schema's compiled IR looking for References
// that compileReference left unresolved and retries the cross-document
// ones against the batch registry; same-document ones are left to
// compositionPush.
func resolveExternalRefs(schema *Schema, byBaseURI map[string]*Schema) {
	visited := make(map[*SchemaValue]bool)
	walkSchemaValue(schema.root, visited, func(v *SchemaValue) {
		if v.Ref == nil || v.Ref.resolved() {
			return
		}
		target, ok := byBaseURI[v.Ref.URI.Base()]
		if !ok || target == schema {
			return
		}
		_ = v.Ref.resolveAgainst(target, target.doc)
	})
}

// walkSchemaValue visits v and every structurally-reachable SchemaValue
// under it exactly once, per the ownership edges spec §5 describes
// (keyword SchemaObject/ObjectOfSchemaObjects/ArrayOfSchemaObjects
// slots), skipping Reference.Result since that is a non-owning
// back-reference (spec §3.3) that may point outside this tree entirely.
func walkSchemaValue(v *SchemaValue, visited map[*SchemaValue]bool, fn func(*SchemaValue)) {
	if v == nil || visited[v] {
		return
	}
	visited[v] = true
	fn(v)

	for _, sub := range v.Common.AllOf {
		walkSchemaValue(sub, visited, fn)
	}
	for _, sub := range v.Common.AnyOf {
		walkSchemaValue(sub, visited, fn)
	}
	for _, sub := range v.Common.OneOf {
		walkSchemaValue(sub, visited, fn)
	}
	if v.Common.Not != nil {
		walkSchemaValue(v.Common.Not, visited, fn)
	}
	for _, sub := range v.Common.TypeAny {
		walkSchemaValue(sub, visited, fn)
	}
	for _, sub := range v.Common.TypeList {
		walkSchemaValue(sub, visited, fn)
	}
	for _, sub := range v.Common.Definitions {
		walkSchemaValue(sub, visited, fn)
	}

	if v.Array != nil {
		walkSchemaValue(v.Array.Items, visited, fn)
		for _, sub := range v.Array.ItemsList {
			walkSchemaValue(sub, visited, fn)
		}
		walkSchemaValue(v.Array.AdditionalItems, visited, fn)
		walkSchemaValue(v.Array.Contains, visited, fn)
	}

	if v.Object != nil {
		for _, sub := range v.Object.Properties {
			walkSchemaValue(sub, visited, fn)
		}
		for _, pp := range v.Object.PatternProperties {
			walkSchemaValue(pp.Schema, visited, fn)
		}
		walkSchemaValue(v.Object.AdditionalProperties, visited, fn)
		walkSchemaValue(v.Object.PropertyNames, visited, fn)
		for _, dep := range v.Object.Dependencies {
			if dep.IsSchema() {
				walkSchemaValue(dep.Schema, visited, fn)
			}
		}
	}
}
