package schemastream

import "reflect"

// commonValueChecks runs the checks every kind shares before kind-specific
// validation, per spec §4.10. Grounded on
// original_source/src/schema/jso_schema_validation_value.c's common-value
// entry checks (enum/const/anyOf/oneOf/type_list finalisation), which run
// ahead of the per-kind dispatch in the original the same way this
// function runs ahead of runKindValidator below.
func commonValueChecks(pos *Position, instance any) {
	if pos.IsFinal {
		return
	}
	value := pos.CurrentValue

	if len(value.Common.AnyOf) > 0 {
		if !pos.AnyOfValid {
			pos.finalizeInvalid(ReasonComposition)
			return
		}
	}
	if len(value.Common.OneOf) > 0 {
		if !pos.OneOfValid {
			pos.finalizeInvalid(ReasonComposition)
			return
		}
	}
	if len(value.Common.TypeList) > 0 {
		if !pos.TypeValid {
			pos.finalizeInvalid(ReasonType)
			return
		}
	}
	if len(value.Common.Enum) > 0 {
		matched := false
		for _, candidate := range value.Common.Enum {
			if deepEqualJSON(candidate, instance) {
				matched = true
				break
			}
		}
		if !matched {
			pos.finalizeInvalid(ReasonKeyword)
			return
		}
	}
	if value.Common.Const != nil {
		if !deepEqualJSON(value.Common.Const.Value, instance) {
			pos.finalizeInvalid(ReasonKeyword)
			return
		}
	}
}

// deepEqualJSON compares two decoded JSON values (as produced by
// goccy/go-json: map[string]any, []any, float64, string, bool, nil) for
// structural equality, the "deep equality" spec §3.1(iv)/§4.10 calls for.
// reflect.DeepEqual handles this correctly for these concrete types; no
// library in the retrieved pack offers JSON-aware deep equality, so the
// standard library is used directly here.
func deepEqualJSON(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
