package schemastream

import (
	"errors"
	"fmt"
	"strings"

	i18n "github.com/kaptinlin/go-i18n"
)

// Compile-time errors. These are returned by Compiler.Compile and friends;
// they are fatal and always abort compilation of the schema in question.
var (
	ErrRootDataType      = errors.New("schemastream: root schema value must be an object (or, in draft 6, a boolean)")
	ErrVersion           = errors.New("schemastream: unrecognised or missing $schema version")
	ErrID                = errors.New("schemastream: invalid $id/id value")
	ErrKeywordRequired   = errors.New("schemastream: required companion keyword missing")
	ErrKeywordAlloc      = errors.New("schemastream: failed to materialise keyword")
	ErrKeywordPrep       = errors.New("schemastream: failed to prepare keyword value")
	ErrKeywordType       = errors.New("schemastream: keyword value has the wrong JSON type")
	ErrTypeInvalid       = errors.New("schemastream: type value is not a recognised schema type")
	ErrTypeUnknown       = errors.New("schemastream: type value is not a string or array of strings")
	ErrValueAlloc        = errors.New("schemastream: failed to allocate schema value")
	ErrValueDataAlloc    = errors.New("schemastream: failed to allocate kind-specific schema data")
	ErrValueDataType     = errors.New("schemastream: schema value has an unsupported JSON type")
	ErrValueDataDeps     = errors.New("schemastream: keyword has an unsatisfied dependency (e.g. NotEmpty applicator array)")
	ErrReferenceAlloc    = errors.New("schemastream: failed to allocate $ref reference")
	ErrReferenceExternal = errors.New("schemastream: $ref to a different base URI is not supported")
	ErrReferenceResolve  = errors.New("schemastream: $ref could not be resolved against the document")
	ErrStackAlloc        = errors.New("schemastream: validation stack could not grow")
	// ErrBatchCompile is returned by Compiler.CompileMany (SPEC_FULL.md
	// §12) when one document in the batch fails to compile.
	ErrBatchCompile = errors.New("schemastream: batch schema compilation failed")
)

// Validation-time errors. Unlike the compile-time family above, most
// validation failures surface as an Invalid Result rather than a Go error;
// these sentinels are reserved for the ValidationError case (§7 of the
// design), which is fatal and short-circuits the event stream.
var (
	ErrValidationType        = errors.New("schemastream: instance has the wrong type for the schema")
	ErrValidationKeyword     = errors.New("schemastream: instance failed a keyword constraint")
	ErrValidationComposition = errors.New("schemastream: instance failed an applicator composition rule")
	ErrValidationInternal    = errors.New("schemastream: internal validator invariant violated")
)

// InvalidReason classifies why a Position's validation_result is Invalid,
// mirroring spec §3.7's validation_invalid_reason.
type InvalidReason int

const (
	ReasonNone InvalidReason = iota
	ReasonType
	ReasonKeyword
	ReasonComposition
)

func (r InvalidReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonType:
		return "type"
	case ReasonKeyword:
		return "keyword"
	case ReasonComposition:
		return "composition"
	default:
		return "unknown"
	}
}

// CompileError wraps one of the sentinel Err* values above with the
// location (JSON Pointer into the schema document) and a human-readable
// message, following the teacher's EvaluationError shape but scoped to
// compile-time failures.
type CompileError struct {
	Err     error
	Code    string
	Pointer string
	Message string
	Params  map[string]any
}

func (e *CompileError) Error() string {
	msg := replacePlaceholders(e.Message, e.Params)
	if e.Pointer != "" {
		return e.Pointer + ": " + msg
	}
	return msg
}

func (e *CompileError) Unwrap() error { return e.Err }

// Localize renders the error through localizer, falling back to Error()
// when no localizer is supplied, mirroring the teacher's
// EvaluationError.Localize (result.go) and its go-i18n wiring (i18n.go).
func (e *CompileError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	msg := localizer.Get(e.Code, i18n.Vars(e.Params))
	if e.Pointer != "" {
		return e.Pointer + ": " + msg
	}
	return msg
}

func newCompileError(err error, pointer, message string) *CompileError {
	return &CompileError{Err: err, Code: compileErrorCode(err), Pointer: pointer, Message: message}
}

// newCompileErrorP attaches templating params (substituted into Message
// via {name} placeholders, and passed through to the localizer catalog),
// per spec §6.3's "formatted human-readable message".
func newCompileErrorP(err error, pointer, message string, params map[string]any) *CompileError {
	return &CompileError{Err: err, Code: compileErrorCode(err), Pointer: pointer, Message: message, Params: params}
}

// compileErrorCode maps a sentinel Err* value to the i18n catalog key
// used by locales/*.json, per spec §6.3's error "type".
func compileErrorCode(err error) string {
	switch err {
	case ErrRootDataType:
		return "root_data_type"
	case ErrVersion:
		return "version"
	case ErrID:
		return "id"
	case ErrKeywordRequired:
		return "keyword_required"
	case ErrKeywordAlloc:
		return "keyword_alloc"
	case ErrKeywordPrep:
		return "keyword_prep"
	case ErrKeywordType:
		return "keyword_type"
	case ErrTypeInvalid:
		return "type_invalid"
	case ErrTypeUnknown:
		return "type_unknown"
	case ErrValueAlloc:
		return "value_alloc"
	case ErrValueDataAlloc:
		return "value_data_alloc"
	case ErrValueDataType:
		return "value_data_type"
	case ErrValueDataDeps:
		return "value_data_deps"
	case ErrReferenceAlloc:
		return "reference_alloc"
	case ErrReferenceExternal:
		return "reference_external"
	case ErrReferenceResolve:
		return "reference_resolve"
	case ErrStackAlloc:
		return "stack_alloc"
	case ErrBatchCompile:
		return "batch_compile"
	default:
		return "unknown"
	}
}

// code maps a validation-time InvalidReason to the i18n catalog key
// used for the top-level "first unrecovered constraint failure" message
// spec §7 describes.
func (r InvalidReason) code() string {
	switch r {
	case ReasonType:
		return "validation_type"
	case ReasonKeyword:
		return "validation_keyword"
	case ReasonComposition:
		return "validation_composition"
	default:
		return "validation_none"
	}
}

// Explain renders a human-readable (optionally localized) description of
// why a Position ended up Invalid, per spec §7's "the message describes
// the first unrecovered constraint failure". localizer may be nil.
func (r InvalidReason) Explain(localizer *i18n.Localizer) string {
	code := r.code()
	fallback := map[string]string{
		"validation_type":        "instance has the wrong type for the schema",
		"validation_keyword":     "instance failed a keyword constraint",
		"validation_composition": "instance failed an applicator composition rule",
		"validation_none":        "",
	}[code]
	if localizer == nil {
		return fallback
	}
	return localizer.Get(code)
}

func replacePlaceholders(template string, params map[string]any) string {
	if len(params) == 0 {
		return template
	}
	out := template
	for key, value := range params {
		placeholder := "{" + key + "}"
		out = strings.ReplaceAll(out, placeholder, fmt.Sprint(value))
	}
	return out
}
