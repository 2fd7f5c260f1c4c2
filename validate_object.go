package schemastream

// objectKeyHandler implements spec §4.7 steps 1-6, run once per key as it
// arrives. Grounded on
// original_source/src/schema/jso_schema_validation_object.c's
// jso_schema_validation_object_key, including its ordering: maxProperties
// and propertyNames are checked before properties/patternProperties/
// additionalProperties.
func objectKeyHandler(schema *Schema, stack *ValidationStack, pos *Position, key string) error {
	if pos.IsFinal {
		return nil
	}
	data := pos.CurrentValue.Object
	if data == nil {
		return nil
	}

	if data.MaxProperties != nil && pos.Count > *data.MaxProperties {
		pos.finalizeInvalid(ReasonKeyword)
		return nil
	}

	if data.PropertyNames != nil {
		if evaluateSubschema(schema, stack, data.PropertyNames, key) != ResultValid {
			pos.finalizeInvalid(ReasonKeyword)
			return nil
		}
	}

	if pos.seenKeys == nil {
		pos.seenKeys = make(map[string]bool)
	}
	pos.seenKeys[key] = true

	matched := false
	if sub, ok := data.Properties[key]; ok {
		stack.PushBasic(sub, pos)
		matched = true
	}
	for _, pp := range data.PatternProperties {
		if pp.Regex.MatchString(key) {
			stack.PushBasic(pp.Schema, pos)
			matched = true
		}
	}
	if !matched {
		if data.AdditionalPropertiesFalse {
			pos.finalizeInvalid(ReasonKeyword)
			return nil
		}
		if data.AdditionalProperties != nil {
			stack.PushBasic(data.AdditionalProperties, pos)
		}
	}
	return nil
}

// dependencyRequired returns the "required" list of a schema-form
// dependency value's object data. A dependency schema with no explicit
// "type" keyword (the common way "required" is written standalone)
// compiles to a Mixed value whose object candidate lives inside
// Common.TypeAny rather than directly on v.Object (see compileMixed), so
// both shapes are checked.
func dependencyRequired(v *SchemaValue) []string {
	if v.Object != nil {
		return v.Object.Required
	}
	for _, sub := range v.Common.TypeAny {
		if sub.Kind == KindObject && sub.Object != nil {
			return sub.Object.Required
		}
	}
	return nil
}

// objectFinalChecks implements spec §4.7's pre-value and final-value
// steps: the "dependencies" schema-form pre-value hook (using mark/reset
// to unwind a speculative push when the dependency key is absent, per
// spec §4.3) followed by minProperties, the dependencies string-array
// form, and required. Grounded on
// jso_schema_validation_object.c's jso_schema_validation_object_pre_value
// and jso_schema_validation_object_value.
func objectFinalChecks(schema *Schema, stack *ValidationStack, pos *Position) {
	data := pos.CurrentValue.Object
	if data == nil {
		return
	}

	for key, dep := range data.Dependencies {
		if !dep.IsSchema() {
			continue
		}
		mark := stack.Mark()
		composed := stack.PushComposed(dep.Schema, pos, CompositionAll)
		if !pos.seenKeys[key] {
			stack.ResetToMark(mark)
			continue
		}
		// The dependency is triggered: apply its required-properties
		// constraint (the common shape of a schema-form dependency)
		// against the keys already seen on this object. A fuller
		// re-evaluation of the dependency schema's own property
		// constraints would need the instance values already matched to
		// each key, which this streaming design does not retain past the
		// key event that consumed them.
		for _, req := range dependencyRequired(dep.Schema) {
			if !pos.seenKeys[req] {
				composed.finalizeInvalid(ReasonKeyword)
				break
			}
		}
	}

	if pos.IsFinal {
		return
	}

	count := len(pos.seenKeys)
	if data.MinProperties != nil && count < *data.MinProperties {
		pos.finalizeInvalid(ReasonKeyword)
		return
	}

	for key, dep := range data.Dependencies {
		if dep.IsSchema() || !pos.seenKeys[key] {
			continue
		}
		for _, required := range dep.Required {
			if !pos.seenKeys[required] {
				pos.finalizeInvalid(ReasonKeyword)
				return
			}
		}
	}

	for _, required := range data.Required {
		if !pos.seenKeys[required] {
			pos.finalizeInvalid(ReasonKeyword)
			return
		}
	}
}
