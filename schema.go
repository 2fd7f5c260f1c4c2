package schemastream

// Version identifies which JSON Schema draft a Schema was compiled under,
// per spec §3.5.
type Version int

const (
	VersionNone Version = iota
	VersionDraft04
	VersionDraft06
)

const (
	schemaURIDraft04 = "http://json-schema.org/draft-04/schema#"
	schemaURIDraft06 = "http://json-schema.org/draft-06/schema#"
)

// Schema is the top-level compiled handle, per spec §3.5. Its lifecycle —
// alloc, init, parse, repeated validate, free — is collapsed here into
// idiomatic Go construction (Compiler.Compile/CompileValue) plus garbage
// collection for "free"; Clear is kept as an explicit operation because
// callers that pool Schema values benefit from it, mirroring the teacher's
// Schema/Compiler method surface (NewCompiler().Compile(...),
// schema.Validate(...)).
type Schema struct {
	root     *SchemaValue
	doc      any
	version  Version
	err      error
	compiler *Compiler

	uriDerefCache map[string]*SchemaValue
}

// Root exposes the compiled root value, mainly for tests and tooling that
// want to inspect the IR directly.
func (s *Schema) Root() *SchemaValue { return s.root }

func (s *Schema) Version() Version { return s.version }

// Err returns the last fatal error recorded against this Schema, or nil.
func (s *Schema) Err() error { return s.err }

// Clear empties the Schema without discarding the container, per spec
// §6.1's schema_clear.
func (s *Schema) Clear() {
	s.root = nil
	s.doc = nil
	s.version = VersionNone
	s.err = nil
	s.uriDerefCache = make(map[string]*SchemaValue)
}

// Validate recursively drives the streaming event API over instance (a
// fully materialised DOM), per spec §4.6's top-level schema_validate
// convenience entry point.
func (s *Schema) Validate(instance any) (Result, error) {
	stream, err := NewValidationStream(s, 16)
	if err != nil {
		return ResultError, err
	}
	if err := driveValidate(stream, instance); err != nil {
		return ResultError, err
	}
	return stream.FinalResult(), nil
}

// driveValidate implements the recursive-descent driver spec §2 step 7
// and §4.6 describe: walk instance, emitting object/array/value events in
// document order.
func driveValidate(stream *ValidationStream, instance any) error {
	switch v := instance.(type) {
	case map[string]any:
		if err := stream.ObjectStart(); err != nil {
			return err
		}
		for k, val := range v {
			if err := stream.ObjectKey(k); err != nil {
				return err
			}
			if err := driveValidate(stream, val); err != nil {
				return err
			}
			if err := stream.ObjectUpdate(v, k, val); err != nil {
				return err
			}
		}
		if err := stream.ObjectEnd(v); err != nil {
			return err
		}
		return nil
	case []any:
		if err := stream.ArrayStart(); err != nil {
			return err
		}
		for _, item := range v {
			if err := stream.ArrayAppend(v, item); err != nil {
				return err
			}
			if err := driveValidate(stream, item); err != nil {
				return err
			}
		}
		if err := stream.ArrayEnd(v); err != nil {
			return err
		}
		return nil
	default:
		return stream.Value(v)
	}
}
