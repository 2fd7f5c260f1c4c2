package schemastream

// compileString extracts minLength/maxLength/pattern, per spec §3.1/§4.9.
func (c *Compiler) compileString(obj map[string]any, parent *SchemaValue) (*SchemaValue, error) {
	v := newSchemaValue(KindString, parent)
	data := &StringData{}

	if raw, ok := obj["minLength"]; ok {
		n, err := readUint(raw, "minLength")
		if err != nil {
			return nil, err
		}
		data.MinLength = &n
		v.markNotEmpty()
	}
	if raw, ok := obj["maxLength"]; ok {
		n, err := readUint(raw, "maxLength")
		if err != nil {
			return nil, err
		}
		data.MaxLength = &n
		v.markNotEmpty()
	}
	if raw, ok := obj["pattern"]; ok {
		pattern, ok := raw.(string)
		if !ok {
			return nil, newCompileError(ErrKeywordType, "/pattern", "pattern must be a string")
		}
		re, err := c.regexCompile(pattern)
		if err != nil {
			return nil, newCompileError(ErrKeywordPrep, "/pattern", "pattern does not compile: "+err.Error())
		}
		data.Pattern = re
		v.markNotEmpty()
	}

	v.String = data
	return v, nil
}

func readUint(raw any, key string) (int, error) {
	f, ok := raw.(float64)
	if !ok || f < 0 {
		return 0, newCompileError(ErrKeywordType, "/"+key, key+" must be a non-negative integer")
	}
	return int(f), nil
}
