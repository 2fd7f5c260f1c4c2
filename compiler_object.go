package schemastream

import "sort"

// compileObject extracts properties/patternProperties/additionalProperties/
// required/dependencies/minProperties/maxProperties/propertyNames, per
// spec §3.1/§4.1/§4.7. propertyNames is draft-6-only (spec §4.1's last
// paragraph). Grounded on the teacher's properties.go/patternProperties.go/
// dependentRequired.go field extraction, restated against the draft-4/6
// ObjectData shape instead of the teacher's 2020-12 pointer fields.
func (c *Compiler) compileObject(obj map[string]any, parent *SchemaValue, schema *Schema, baseURI string) (*SchemaValue, error) {
	v := newSchemaValue(KindObject, parent)
	data := &ObjectData{}

	if raw, ok := obj["properties"]; ok {
		props, ok := raw.(map[string]any)
		if !ok {
			return nil, newCompileError(ErrKeywordType, "/properties", "properties must be an object")
		}
		data.Properties = make(map[string]*SchemaValue, len(props))
		for _, key := range sortedKeys(props) {
			sub, err := c.compileValue(props[key], v, schema, baseURI)
			if err != nil {
				return nil, err
			}
			data.Properties[key] = sub
		}
		v.markNotEmpty()
	}

	if raw, ok := obj["patternProperties"]; ok {
		patterns, ok := raw.(map[string]any)
		if !ok {
			return nil, newCompileError(ErrKeywordType, "/patternProperties", "patternProperties must be an object")
		}
		for _, pattern := range sortedKeys(patterns) {
			re, err := c.regexCompile(pattern)
			if err != nil {
				return nil, newCompileError(ErrKeywordPrep, "/patternProperties", "pattern "+pattern+" does not compile: "+err.Error())
			}
			sub, err := c.compileValue(patterns[pattern], v, schema, baseURI)
			if err != nil {
				return nil, err
			}
			sub.Regex = re
			data.PatternProperties = append(data.PatternProperties, &PatternProperty{
				Pattern: pattern,
				Regex:   re,
				Schema:  sub,
			})
		}
		v.markNotEmpty()
	}

	if raw, ok := obj["additionalProperties"]; ok {
		sub, isFalse, err := c.compileSchemaOrFalse(raw, v, schema, baseURI, "additionalProperties")
		if err != nil {
			return nil, err
		}
		data.AdditionalProperties = sub
		data.AdditionalPropertiesFalse = isFalse
		if isFalse || sub != nil {
			v.markNotEmpty()
		}
	}

	if raw, ok := obj["required"]; ok {
		required, err := compileArrayOfStrings(raw, "required", true)
		if err != nil {
			return nil, err
		}
		data.Required = required
		v.markNotEmpty()
	}

	if raw, ok := obj["dependencies"]; ok {
		deps, ok := raw.(map[string]any)
		if !ok || len(deps) == 0 {
			return nil, newCompileError(ErrValueDataDeps, "/dependencies", "dependencies must be a non-empty object")
		}
		data.Dependencies = make(map[string]*DependencyValue, len(deps))
		for _, key := range sortedKeys(deps) {
			dep, err := c.compileDependency(deps[key], v, schema, baseURI, key)
			if err != nil {
				return nil, err
			}
			data.Dependencies[key] = dep
		}
		v.markNotEmpty()
	}

	if raw, ok := obj["minProperties"]; ok {
		n, err := readUint(raw, "minProperties")
		if err != nil {
			return nil, err
		}
		data.MinProperties = &n
		v.markNotEmpty()
	}
	if raw, ok := obj["maxProperties"]; ok {
		n, err := readUint(raw, "maxProperties")
		if err != nil {
			return nil, err
		}
		data.MaxProperties = &n
		v.markNotEmpty()
	}

	if raw, ok := obj["propertyNames"]; ok {
		if schema.version != VersionDraft06 {
			return nil, newCompileError(ErrKeywordType, "/propertyNames", "propertyNames requires draft 6")
		}
		sub, err := c.compileValue(raw, v, schema, baseURI)
		if err != nil {
			return nil, err
		}
		data.PropertyNames = sub
		v.markNotEmpty()
	}

	v.Object = data
	return v, nil
}

// compileDependency implements the ObjectOfSchemaObjectsOrArrayOfStrings
// union spec §3.2/§4.1 describes for "dependencies": each entry is either a
// schema (pre-value speculative push, spec §4.7) or an array of required
// property names (final-value string-array form).
func (c *Compiler) compileDependency(raw any, parent *SchemaValue, schema *Schema, baseURI, key string) (*DependencyValue, error) {
	switch v := raw.(type) {
	case map[string]any, bool:
		sub, err := c.compileValue(v, parent, schema, baseURI)
		if err != nil {
			return nil, err
		}
		return &DependencyValue{Schema: sub}, nil
	case []any:
		names, err := compileArrayOfStrings(v, "dependencies/"+key, true)
		if err != nil {
			return nil, err
		}
		return &DependencyValue{Required: names}, nil
	default:
		return nil, newCompileError(ErrKeywordType, "/dependencies/"+key, "dependencies entries must be a schema or an array of strings")
	}
}

// sortedKeys returns an object's keys in sorted order so compilation (and
// therefore patternProperties match iteration order, spec §4.7 step 5) is
// deterministic regardless of Go's randomised map iteration.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
