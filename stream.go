package schemastream

import i18n "github.com/kaptinlin/go-i18n"

// ValidationStream exposes the push-driven event API of spec §4.6: a
// driver (recursive descent over a materialised DOM, or an externally
// driven tokeniser) calls these methods in document order to validate an
// instance against the Schema's root value. Grounded on
// original_source/src/schema/jso_schema_validation_stream.c, matching its
// event sequencing with one deliberate simplification: array items are
// all handled uniformly through ArrayAppend rather than special-casing
// item 0 inside ArrayStart.
type ValidationStream struct {
	schema *Schema
	stack  *ValidationStack
}

// NewValidationStream implements spec §6.1's
// schema_validation_stream_init: capacity must be ≥ 1, and the root
// schema value is always pushed as the initial frame.
func NewValidationStream(schema *Schema, initialStackCapacity int) (*ValidationStream, error) {
	if initialStackCapacity < 1 {
		return nil, newCompileError(ErrStackAlloc, "", "initial_stack_capacity must be >= 1")
	}
	stack := NewValidationStack(schema, initialStackCapacity)
	if stack.PushBasic(schema.root, nil) == nil {
		return nil, ErrStackAlloc
	}
	return &ValidationStream{schema: schema, stack: stack}, nil
}

func (s *ValidationStream) Clear() { s.stack = NewValidationStack(s.schema, 1) }

// ExplainInvalid implements spec §7's "user-visible failure" rule for the
// Invalid case: the message describes the first unrecovered constraint
// failure, i.e. the root position's recorded InvalidReason. localizer may
// be nil, in which case the English fallback text is returned.
func (s *ValidationStream) ExplainInvalid(localizer *i18n.Localizer) string {
	root := s.stack.RootPosition()
	if root == nil || root.Result != ResultInvalid {
		return ""
	}
	return root.InvalidReason.Explain(localizer)
}

// FinalResult implements schema_validation_stream_final_result: the root
// position's final validation_result.
func (s *ValidationStream) FinalResult() Result {
	root := s.stack.RootPosition()
	if root == nil {
		return ResultError
	}
	return root.Result
}

func (s *ValidationStream) ObjectStart() error {
	result := s.stack.ForEachGrowing(func(pos *Position) Result {
		if pos.IsFinal {
			return ResultValid
		}
		value := pos.CurrentValue
		if !objectCompatible(value) {
			pos.finalizeInvalid(ReasonType)
			return ResultValid
		}
		return compositionPush(s.stack, pos)
	})
	if result == ResultError {
		return s.schema.err
	}
	return nil
}

func (s *ValidationStream) ObjectKey(key string) error {
	snapshot := s.stack.CurrentLayer()
	s.stack.PushSeparator()
	for _, pos := range snapshot {
		pos.Count++
		if pos.Result == ResultValid && pos.CurrentValue.Kind == KindObject {
			if err := objectKeyHandler(s.schema, s.stack, pos, key); err != nil {
				return err
			}
		}
		pos.ObjectKey = key
	}
	return nil
}

// ObjectUpdate is a documented no-op extension point, per spec §4.6 and
// §9; it must remain callable but carries no validation semantics.
func (s *ValidationStream) ObjectUpdate(obj map[string]any, key string, val any) error {
	return nil
}

// ObjectEnd implements spec §4.6's object_end. instance is the fully
// materialised object this layer just finished traversing: the spec's
// documented no-op contract (§4.6/§9) covers only the annotation-collection
// hook object_end would otherwise carry; running the common value checks
// (enum/const/anyOf/oneOf/type_list, spec §4.10) here is how this module
// generalises the scalar Value() event to container kinds (see
// finaliseLayer), since those checks can only run once the full instance
// is known.
func (s *ValidationStream) ObjectEnd(instance map[string]any) error {
	for _, pos := range s.stack.CurrentLayer() {
		if pos.IsFinal || pos.Result != ResultValid {
			continue
		}
		if pos.CurrentValue.Kind == KindObject {
			objectFinalChecks(s.schema, s.stack, pos)
		}
	}
	finaliseLayer(s.stack, instance)
	s.stack.LayerRemove()
	return nil
}

func (s *ValidationStream) ArrayStart() error {
	result := s.stack.ForEachGrowing(func(pos *Position) Result {
		if pos.IsFinal {
			return ResultValid
		}
		value := pos.CurrentValue
		if !arrayCompatible(value) {
			pos.finalizeInvalid(ReasonType)
			return ResultValid
		}
		return compositionPush(s.stack, pos)
	})
	if result == ResultError {
		return s.schema.err
	}
	return nil
}

func (s *ValidationStream) ArrayAppend(arr []any, item any) error {
	snapshot := s.stack.CurrentLayer()
	s.stack.PushSeparator()
	for _, pos := range snapshot {
		index := pos.Count
		pos.Count++
		if pos.Result == ResultValid && pos.CurrentValue.Kind == KindArray {
			if pos.seenItems == nil {
				pos.seenItems = make([]any, 0, 4)
			}
			pos.seenItems = append(pos.seenItems, item)
			if err := arrayAppendHandler(s.schema, s.stack, pos, index); err != nil {
				return err
			}
		}
	}
	return nil
}

// ArrayEnd implements spec §4.6's array_end; instance mirrors ObjectEnd's
// parameter, generalising the common value checks to array-kind frames.
func (s *ValidationStream) ArrayEnd(instance []any) error {
	for _, pos := range s.stack.CurrentLayer() {
		if pos.IsFinal || pos.Result != ResultValid {
			continue
		}
		if pos.CurrentValue.Kind == KindArray {
			arrayFinalChecks(s.schema, s.stack, pos)
		}
	}
	finaliseLayer(s.stack, instance)
	s.stack.LayerRemove()
	return nil
}

// Value validates a scalar leaf instance against every frame in the
// current layer, per spec §4.6/§4.10/§4.9.
func (s *ValidationStream) Value(instance any) error {
	result := s.stack.ForEachGrowing(func(pos *Position) Result {
		if pos.IsFinal {
			return ResultValid
		}
		return compositionPush(s.stack, pos)
	})
	if result == ResultError {
		return s.schema.err
	}
	for _, pos := range s.stack.CurrentLayerReverse() {
		if !pos.IsFinal && pos.Result == ResultValid {
			if pos.CompositionType != CompositionAny || pos.Parent == nil || !pos.Parent.AnyOfValid {
				commonValueChecks(pos, instance)
				if !pos.IsFinal {
					validateScalar(s.schema, pos, instance)
				}
			}
		}
		propagateResult(pos)
	}
	s.stack.LayerRemove()
	return nil
}

// evaluateSubschema runs sv against instance as a standalone, fully
// recursive validation on the same stack (used by propertyNames and
// contains, per spec §4.7/§4.8), returning its result without touching
// any position outside the layer it creates. This trades the spec's
// mark()/reset_to_mark() micro-optimisation for a push/pop pair scoped
// with push_separator, which stays within the same stack vocabulary
// while being simpler to get right.
func evaluateSubschema(schema *Schema, stack *ValidationStack, sv *SchemaValue, instance any) Result {
	stack.PushSeparator()
	pos := stack.PushBasic(sv, nil)
	sub := &ValidationStream{schema: schema, stack: stack}

	// driveValidate's final Value/ObjectEnd/ArrayEnd event removes the
	// layer pushed above.
	_ = driveValidate(sub, instance)

	return pos.Result
}
