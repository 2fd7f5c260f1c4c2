package schemastream

// PositionType tags what kind of frame a Position is, per spec §3.7.
type PositionType int

const (
	PositionBasic PositionType = iota
	PositionComposed
	PositionSentinel
)

// CompositionType tags how a Composed frame's result combines into its
// parent, per spec §3.7 and the composition table in §4.4. Grounded on
// original_source/src/schema/jso_schema_validation_composition.h's
// jso_schema_validation_composition_type enum.
type CompositionType int

const (
	CompositionNone CompositionType = iota
	CompositionRef
	CompositionAny
	CompositionAll
	CompositionOne
	CompositionNot
	CompositionTypeAny
	CompositionTypeList
)

// Result is the three-valued outcome of a validation frame, per spec
// §3.7's validation_result.
type Result int

const (
	ResultValid Result = iota
	ResultInvalid
	ResultError
)

// Position is a single validation frame, per spec §3.7.
type Position struct {
	CurrentValue *SchemaValue
	Parent       *Position

	PositionType    PositionType
	CompositionType CompositionType

	LayerStart int
	Depth      int

	Result        Result
	InvalidReason InvalidReason
	IsFinal       bool

	AnyOfValid bool
	OneOfValid bool
	TypeValid  bool

	Count     int
	ObjectKey string

	// seenKeys / seenItems / containsMatched are implementation-level
	// bookkeeping that let object_end/array_end finalise minProperties/
	// required/minItems/uniqueItems/contains from data accumulated
	// incrementally during traversal, without needing to re-materialise
	// the whole instance — the same streaming discipline the original
	// engine's per-event design enforces.
	seenKeys        map[string]bool
	seenItems       []any
	containsMatched bool
}

func (p *Position) finalizeInvalid(reason InvalidReason) {
	if p.IsFinal {
		return
	}
	p.Result = ResultInvalid
	p.InvalidReason = reason
	p.IsFinal = true
}

func (p *Position) resetError() {
	p.Result = ResultValid
	p.InvalidReason = ReasonNone
}

// ValidationStack is the array of Position frames partitioned into layers
// by sentinels, per spec §3.6. Grounded directly on
// original_source/src/schema/jso_schema_validation_stack.h/.c: the
// teacher has no equivalent (it validates by plain recursion), so this is
// ported from the C original per spec §9's "prefer indices over pointers"
// note.
type ValidationStack struct {
	positions     []*Position
	lastSeparator *int
	mark_         int
	depth         int
	RootSchema    *Schema
}

func NewValidationStack(root *Schema, capacity int) *ValidationStack {
	return &ValidationStack{
		positions: make([]*Position, 0, capacity),
		RootSchema: root,
	}
}

func (s *ValidationStack) Size() int { return len(s.positions) }

func (s *ValidationStack) Depth() int { return s.depth }

func (s *ValidationStack) layerStart() int {
	if s.lastSeparator == nil {
		return 0
	}
	return *s.lastSeparator + 1
}

func (s *ValidationStack) pushFrame(value *SchemaValue, parent *Position, ptype PositionType, ctype CompositionType) *Position {
	pos := &Position{
		CurrentValue:    value,
		Parent:          parent,
		PositionType:    ptype,
		CompositionType: ctype,
		LayerStart:      s.layerStart(),
		Depth:           s.depth,
		Result:          ResultValid,
	}
	s.positions = append(s.positions, pos)
	return pos
}

// PushBasic implements spec §4.3's push_basic.
func (s *ValidationStack) PushBasic(value *SchemaValue, parent *Position) *Position {
	return s.pushFrame(value, parent, PositionBasic, CompositionNone)
}

// PushComposed implements spec §4.3's push_composed.
func (s *ValidationStack) PushComposed(value *SchemaValue, parent *Position, ctype CompositionType) *Position {
	return s.pushFrame(value, parent, PositionComposed, ctype)
}

// PushSeparator implements spec §4.3's push_separator.
func (s *ValidationStack) PushSeparator() *Position {
	idx := len(s.positions)
	pos := &Position{PositionType: PositionSentinel, LayerStart: idx, Depth: s.depth}
	s.positions = append(s.positions, pos)
	s.lastSeparator = &idx
	s.depth++
	return pos
}

// LayerRemove implements spec §4.3's layer_remove: truncate back to the
// current last_separator, decrement depth, restore the prior sentinel.
func (s *ValidationStack) LayerRemove() {
	start := s.layerStart()
	// Find the sentinel that bounds this layer (if any) so we can also
	// pop it and restore the previous one.
	sentinelIdx := start - 1
	if sentinelIdx < 0 {
		// The base layer has no sentinel; it is kept so that
		// RootPosition still reports the overall result.
		return
	}
	s.positions = s.positions[:sentinelIdx]
	s.depth--
	s.lastSeparator = findPriorSentinel(s.positions, sentinelIdx)
}

func findPriorSentinel(positions []*Position, before int) *int {
	for i := before - 1; i >= 0; i-- {
		if positions[i].PositionType == PositionSentinel {
			idx := i
			return &idx
		}
	}
	return nil
}

// ForEachGrowing walks the top layer forward from its start, rereading
// len(s.positions) on every step so that positions fn pushes (composed
// applicator children) are visited in the same pass, per
// original_source/src/schema/jso_schema_validation_stack.c's
// layer_iterator_next (which rereads stack->size the same way). Plain
// range over CurrentLayer() would snapshot the layer once and miss
// nested applicators (a $ref or oneOf branch that itself carries
// allOf/anyOf/$ref); this is the forward pass compositionPush needs.
func (s *ValidationStack) ForEachGrowing(fn func(pos *Position) Result) Result {
	start := s.layerStart()
	for i := start; i < len(s.positions); i++ {
		pos := s.positions[i]
		if pos.PositionType == PositionSentinel {
			break
		}
		if r := fn(pos); r == ResultError {
			return ResultError
		}
	}
	return ResultValid
}

// CurrentLayer returns the non-sentinel positions in the top layer, in
// insertion order, per spec §4.3's layer_iterator.
func (s *ValidationStack) CurrentLayer() []*Position {
	start := s.layerStart()
	out := make([]*Position, 0, len(s.positions)-start)
	for i := start; i < len(s.positions); i++ {
		if s.positions[i].PositionType != PositionSentinel {
			out = append(out, s.positions[i])
		}
	}
	return out
}

// CurrentLayerReverse returns the same set as CurrentLayer but in reverse
// order, per spec §4.3's layer_reverse_iterator (children propagate to
// parents before the parent's own finalisation).
func (s *ValidationStack) CurrentLayerReverse() []*Position {
	layer := s.CurrentLayer()
	for i, j := 0, len(layer)-1; i < j; i, j = i+1, j-1 {
		layer[i], layer[j] = layer[j], layer[i]
	}
	return layer
}

// LayerResetPositions re-initialises result/count/validity flags of all
// positions in the top layer, per spec §4.3's layer_reset_positions. The
// contains check in arrayFinalChecks evaluates each candidate through
// evaluateSubschema instead and does not call this.
func (s *ValidationStack) LayerResetPositions() {
	for _, pos := range s.CurrentLayer() {
		pos.Count = 0
		pos.Result = ResultValid
		pos.InvalidReason = ReasonNone
		pos.IsFinal = false
		pos.AnyOfValid = false
		pos.OneOfValid = false
		pos.TypeValid = false
	}
}

// Mark/ResetToMark implement spec §4.3's mark()/reset_to_mark(), used by
// the "dependencies" pre-value hook to unwind a speculative push when the
// dependency key turns out to be absent from the instance.
func (s *ValidationStack) Mark() int { return len(s.positions) }

func (s *ValidationStack) ResetToMark(mark int) {
	s.positions = s.positions[:mark]
}

// RootPosition returns position 0, whose final validation_result is the
// overall outcome per spec §6.1's schema_validation_stream_final_result.
func (s *ValidationStack) RootPosition() *Position {
	if len(s.positions) == 0 {
		return nil
	}
	return s.positions[0]
}
