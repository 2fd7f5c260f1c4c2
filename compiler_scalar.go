package schemastream

// compileNull/compileBoolean materialise the two constraint-free scalar
// kinds; they are "empty" (no NotEmpty flag) since null/boolean schemas
// carry no kind-specific keywords beyond the common block, per spec §4.1.
func (c *Compiler) compileNull(obj map[string]any, parent *SchemaValue) (*SchemaValue, error) {
	return newSchemaValue(KindNull, parent), nil
}

func (c *Compiler) compileBoolean(obj map[string]any, parent *SchemaValue) (*SchemaValue, error) {
	return newSchemaValue(KindBoolean, parent), nil
}

// compileInteger/compileNumber extract the numeric bounds of spec §3.1,
// handling the draft4/6 divergence of spec §4.1's last paragraph:
// exclusiveMinimum/exclusiveMaximum are booleans in draft 4 (requiring a
// companion minimum/maximum) and numbers in draft 6. Grounded on
// original_source/src/schema/jso_schema_validation_scalar.c's two-branch
// handling and the teacher's numeric keyword extraction in compiler.go.
func (c *Compiler) compileInteger(obj map[string]any, parent *SchemaValue, version Version) (*SchemaValue, error) {
	v := newSchemaValue(KindInteger, parent)
	data, err := c.compileNumericData(obj, version)
	if err != nil {
		return nil, err
	}
	v.Integer = data
	if numericDataNotEmpty(data) {
		v.markNotEmpty()
	}
	return v, nil
}

func (c *Compiler) compileNumber(obj map[string]any, parent *SchemaValue, version Version) (*SchemaValue, error) {
	v := newSchemaValue(KindNumber, parent)
	data, err := c.compileNumericData(obj, version)
	if err != nil {
		return nil, err
	}
	v.Number = data
	if numericDataNotEmpty(data) {
		v.markNotEmpty()
	}
	return v, nil
}

func numericDataNotEmpty(d *IntegerData) bool {
	return d.Minimum != nil || d.Maximum != nil || d.ExclusiveMinimum != nil ||
		d.ExclusiveMaximum != nil || d.MultipleOf != nil
}

func (c *Compiler) compileNumericData(obj map[string]any, version Version) (*IntegerData, error) {
	data := &IntegerData{}

	readNumber := func(key string) (*Number, error) {
		raw, ok := obj[key]
		if !ok {
			return nil, nil
		}
		f, ok := raw.(float64)
		if !ok {
			return nil, newCompileError(ErrKeywordType, "/"+key, key+" must be a number")
		}
		n := NumberFromJSON(f)
		return &n, nil
	}

	minimum, err := readNumber("minimum")
	if err != nil {
		return nil, err
	}
	maximum, err := readNumber("maximum")
	if err != nil {
		return nil, err
	}
	data.Minimum = minimum
	data.Maximum = maximum

	if excl, ok := obj["exclusiveMinimum"]; ok {
		switch version {
		case VersionDraft04:
			b, ok := excl.(bool)
			if !ok {
				return nil, newCompileError(ErrKeywordType, "/exclusiveMinimum", "exclusiveMinimum must be a boolean in draft 4")
			}
			if b && data.Minimum == nil {
				return nil, newCompileError(ErrKeywordRequired, "/exclusiveMinimum", "exclusiveMinimum requires minimum in draft 4")
			}
			data.ExclusiveMinimumBool = b
		default:
			f, ok := excl.(float64)
			if !ok {
				return nil, newCompileError(ErrKeywordType, "/exclusiveMinimum", "exclusiveMinimum must be a number in draft 6")
			}
			n := NumberFromJSON(f)
			data.ExclusiveMinimum = &n
		}
	}
	if excl, ok := obj["exclusiveMaximum"]; ok {
		switch version {
		case VersionDraft04:
			b, ok := excl.(bool)
			if !ok {
				return nil, newCompileError(ErrKeywordType, "/exclusiveMaximum", "exclusiveMaximum must be a boolean in draft 4")
			}
			if b && data.Maximum == nil {
				return nil, newCompileError(ErrKeywordRequired, "/exclusiveMaximum", "exclusiveMaximum requires maximum in draft 4")
			}
			data.ExclusiveMaximumBool = b
		default:
			f, ok := excl.(float64)
			if !ok {
				return nil, newCompileError(ErrKeywordType, "/exclusiveMaximum", "exclusiveMaximum must be a number in draft 6")
			}
			n := NumberFromJSON(f)
			data.ExclusiveMaximum = &n
		}
	}

	multipleOf, err := readNumber("multipleOf")
	if err != nil {
		return nil, err
	}
	if multipleOf != nil {
		if !multipleOf.IsPositive() {
			return nil, newCompileError(ErrValueDataDeps, "/multipleOf", "multipleOf must be strictly positive")
		}
		data.MultipleOf = multipleOf
	}

	return data, nil
}
