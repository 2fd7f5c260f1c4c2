package schemastream

// compositionPush materialises the applicator sub-schemas for pos, per
// spec §4.4's table, grounded line-for-line on
// original_source/src/schema/jso_schema_validation_composition.c's
// jso_schema_validation_composition_push.
func compositionPush(stack *ValidationStack, pos *Position) Result {
	value := pos.CurrentValue

	if value.Ref != nil {
		result := value.Ref.Result
		if result == nil {
			if err := value.Ref.resolve(stack.RootSchema.doc); err != nil {
				stack.RootSchema.err = err
				return ResultError
			}
			result = value.Ref.Result
		}
		if stack.PushComposed(result, pos, CompositionRef) == nil {
			return ResultError
		}
		if value.Flags.Has(ValueFlagRefOnly) {
			return ResultValid
		}
	}

	for _, sub := range value.Common.TypeAny {
		if stack.PushComposed(sub, pos, CompositionTypeAny) == nil {
			return ResultError
		}
	}
	for _, sub := range value.Common.TypeList {
		if stack.PushComposed(sub, pos, CompositionTypeList) == nil {
			return ResultError
		}
	}
	for _, sub := range value.Common.AllOf {
		if stack.PushComposed(sub, pos, CompositionAll) == nil {
			return ResultError
		}
	}
	for _, sub := range value.Common.AnyOf {
		if stack.PushComposed(sub, pos, CompositionAny) == nil {
			return ResultError
		}
	}
	for _, sub := range value.Common.OneOf {
		if stack.PushComposed(sub, pos, CompositionOne) == nil {
			return ResultError
		}
	}
	if value.Common.Not != nil {
		if stack.PushComposed(value.Common.Not, pos, CompositionNot) == nil {
			return ResultError
		}
	}

	return ResultValid
}

// propagateResult propagates pos's outcome to its parent according to
// pos.CompositionType, per spec §4.5, grounded line-for-line on
// original_source/src/schema/jso_schema_validation_result.c's
// jso_schema_validation_result_propagate.
func propagateResult(pos *Position) {
	parent := pos.Parent
	if parent == nil || parent.IsFinal {
		return
	}

	switch pos.CompositionType {
	case CompositionRef:
		// A $ref's result always propagates, regardless of validity.
		if pos.Result != ResultValid {
			parent.finalizeInvalid(pos.InvalidReason)
		}
	case CompositionTypeAny, CompositionTypeList:
		if pos.Result != ResultValid {
			if pos.InvalidReason == ReasonType {
				// Type mismatches are tolerated: one branch of a type
				// union failing to match is not itself fatal.
				pos.resetError()
				return
			}
			parent.finalizeInvalid(pos.InvalidReason)
			return
		}
		parent.TypeValid = true
	case CompositionAll:
		if pos.Result != ResultValid {
			parent.finalizeInvalid(pos.InvalidReason)
		}
	case CompositionAny:
		if pos.Result == ResultValid {
			parent.AnyOfValid = true
		}
	case CompositionOne:
		if pos.Result == ResultValid {
			if parent.OneOfValid {
				parent.finalizeInvalid(ReasonComposition)
				return
			}
			parent.OneOfValid = true
		}
	case CompositionNot:
		if pos.Result == ResultValid {
			parent.finalizeInvalid(ReasonComposition)
		} else {
			pos.resetError()
		}
	default:
		// Basic (non-composed) child: invalid always fails the parent.
		if pos.Result != ResultValid {
			parent.finalizeInvalid(pos.InvalidReason)
		}
	}
}

// finaliseLayer runs the reverse-propagation pass for the current layer
// (children before parents, per spec §4.3's layer_reverse_iterator),
// additionally running the common value checks (enum/const/anyOf/oneOf/
// type_list finalisation, spec §4.10) against instance for every position
// not already final. This mirrors Value()'s combined check-then-propagate
// pass for scalars, generalised to object/array frames: a composed
// anyOf/oneOf/enum/const/type_list applied at an object or array schema
// (e.g. `{"type":"object","oneOf":[...]}`) can only be finalised once its
// children have already propagated their own results into it, which is
// why commonValueChecks must run in this same reverse order rather than
// in the forward pass that runs object/array keyword-specific checks.
func finaliseLayer(stack *ValidationStack, instance any) {
	for _, pos := range stack.CurrentLayerReverse() {
		if !pos.IsFinal && pos.Result == ResultValid {
			if pos.CompositionType != CompositionAny || pos.Parent == nil || !pos.Parent.AnyOfValid {
				commonValueChecks(pos, instance)
			}
		}
		propagateResult(pos)
	}
}

func objectCompatible(v *SchemaValue) bool {
	switch v.Kind {
	case KindObject, KindMixed, KindBooleanSchema:
		return true
	default:
		return false
	}
}

func arrayCompatible(v *SchemaValue) bool {
	switch v.Kind {
	case KindArray, KindMixed, KindBooleanSchema:
		return true
	default:
		return false
	}
}
