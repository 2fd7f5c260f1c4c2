package schemastream

// compileArray extracts items/additionalItems/contains/minItems/maxItems/
// uniqueItems, per spec §3.1/§4.1/§4.8. contains and propertyNames are
// draft-6-only (spec §4.1's last paragraph).
func (c *Compiler) compileArray(obj map[string]any, parent *SchemaValue, schema *Schema, baseURI string) (*SchemaValue, error) {
	v := newSchemaValue(KindArray, parent)
	data := &ArrayData{}

	if raw, ok := obj["items"]; ok {
		single, list, err := c.compileSchemaOrArraySchemas(raw, v, schema, baseURI, "items")
		if err != nil {
			return nil, err
		}
		data.Items = single
		data.ItemsList = list
		v.markNotEmpty()
	}
	if raw, ok := obj["additionalItems"]; ok {
		sub, isFalse, err := c.compileSchemaOrFalse(raw, v, schema, baseURI, "additionalItems")
		if err != nil {
			return nil, err
		}
		data.AdditionalItems = sub
		data.AdditionalItemsFalse = isFalse
		if isFalse || sub != nil {
			v.markNotEmpty()
		}
	}
	if raw, ok := obj["contains"]; ok {
		if schema.version != VersionDraft06 {
			return nil, newCompileError(ErrKeywordType, "/contains", "contains requires draft 6")
		}
		sub, err := c.compileValue(raw, v, schema, baseURI)
		if err != nil {
			return nil, err
		}
		data.Contains = sub
		v.markNotEmpty()
	}
	if raw, ok := obj["minItems"]; ok {
		n, err := readUint(raw, "minItems")
		if err != nil {
			return nil, err
		}
		data.MinItems = &n
		v.markNotEmpty()
	}
	if raw, ok := obj["maxItems"]; ok {
		n, err := readUint(raw, "maxItems")
		if err != nil {
			return nil, err
		}
		data.MaxItems = &n
		v.markNotEmpty()
	}
	if raw, ok := obj["uniqueItems"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return nil, newCompileError(ErrKeywordType, "/uniqueItems", "uniqueItems must be a boolean")
		}
		data.UniqueItems = b
		if b {
			v.markNotEmpty()
		}
	}

	v.Array = data
	return v, nil
}
