package schemastream

// compileSchemaOrArraySchemas implements the union-keyword lookup spec
// §4.1 describes for "items": attempt the SchemaObject interpretation
// first, then ArrayOfSchemaObjects; report a type error if neither
// matches. Grounded on the teacher's items.go union handling.
func (c *Compiler) compileSchemaOrArraySchemas(raw any, parent *SchemaValue, schema *Schema, baseURI, key string) (single *SchemaValue, list []*SchemaValue, err error) {
	switch v := raw.(type) {
	case map[string]any, bool:
		sub, err := c.compileValue(v, parent, schema, baseURI)
		if err != nil {
			return nil, nil, err
		}
		return sub, nil, nil
	case []any:
		out := make([]*SchemaValue, 0, len(v))
		for _, item := range v {
			sub, err := c.compileValue(item, parent, schema, baseURI)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, sub)
		}
		return nil, out, nil
	default:
		return nil, nil, newCompileError(ErrKeywordType, "/"+key, key+" must be a schema or an array of schemas")
	}
}

// compileSchemaOrFalse implements the Boolean | SchemaObject union spec
// §4.1 describes for "additionalItems"/"additionalProperties": the
// boolean false a special sentinel ("no additional entries allowed"),
// true is equivalent to an absent/unconstrained keyword.
func (c *Compiler) compileSchemaOrFalse(raw any, parent *SchemaValue, schema *Schema, baseURI, key string) (sub *SchemaValue, isFalse bool, err error) {
	switch v := raw.(type) {
	case bool:
		if !v {
			return nil, true, nil
		}
		return nil, false, nil
	case map[string]any:
		sub, err := c.compileValue(v, parent, schema, baseURI)
		if err != nil {
			return nil, false, err
		}
		return sub, false, nil
	default:
		return nil, false, newCompileError(ErrKeywordType, "/"+key, key+" must be a boolean or a schema")
	}
}

// compileArrayOfStrings extracts an ArrayOfStrings keyword, optionally
// requiring uniqueness (used by "required", spec §4.1).
func compileArrayOfStrings(raw any, key string, requireUnique bool) ([]string, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, newCompileError(ErrKeywordType, "/"+key, key+" must be an array of strings")
	}
	out := make([]string, 0, len(arr))
	seen := make(map[string]bool, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, newCompileError(ErrKeywordType, "/"+key, key+" entries must be strings")
		}
		if requireUnique {
			if seen[s] {
				return nil, newCompileError(ErrValueDataDeps, "/"+key, key+" entries must be unique")
			}
			seen[s] = true
		}
		out = append(out, s)
	}
	return out, nil
}
