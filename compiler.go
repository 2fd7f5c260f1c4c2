package schemastream

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
)

// Compiler turns a parsed JSON Schema document into a compiled Schema,
// per spec §4.1. It is mutex-guarded and exposes chainable Set*/With*
// configuration methods, following the teacher's Compiler in compiler.go
// (sync.RWMutex-guarded, fluent builder style).
type Compiler struct {
	mu sync.RWMutex

	defaultVersion Version
	defaultBaseURI string

	regexCompile func(pattern string) (*CompiledRegexp, error)
	jsonDecode   func(data []byte, v any) error
	jsonEncode   func(v any) ([]byte, error)
}

// NewCompiler builds a Compiler with the teacher's ambient defaults:
// goccy/go-json for encode/decode, and the standard library's regexp
// package as the regex engine spec §1 scopes out as an external
// collaborator (no third-party regex engine appears anywhere in the
// retrieved pack; see DESIGN.md).
func NewCompiler() *Compiler {
	return &Compiler{
		defaultVersion: VersionNone,
		regexCompile:   compileStdlibRegexp,
		jsonDecode:     json.Unmarshal,
		jsonEncode:     json.Marshal,
	}
}

func compileStdlibRegexp(pattern string) (*CompiledRegexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &CompiledRegexp{source: pattern, match: re.MatchString}, nil
}

// SetDefaultVersion configures the draft assumed when a document has no
// $schema, per spec §3.5.
func (c *Compiler) SetDefaultVersion(v Version) *Compiler {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultVersion = v
	return c
}

// WithDefaultBaseURI sets the base URI new root schemas inherit absent a
// local $id.
func (c *Compiler) WithDefaultBaseURI(uri string) *Compiler {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultBaseURI = uri
	return c
}

// WithEncoderJSON/WithDecoderJSON let callers swap the JSON codec,
// mirroring the teacher's configurable jsonEncoder/jsonDecoder hooks.
func (c *Compiler) WithEncoderJSON(encode func(v any) ([]byte, error)) *Compiler {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jsonEncode = encode
	return c
}

func (c *Compiler) WithDecoderJSON(decode func(data []byte, v any) error) *Compiler {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jsonDecode = decode
	return c
}

// WithRegexCompiler swaps the regex engine implementing the
// "compile(pattern) → code" collaborator spec §1 calls out.
func (c *Compiler) WithRegexCompiler(compile func(string) (*CompiledRegexp, error)) *Compiler {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regexCompile = compile
	return c
}

// Compile implements spec §6.1's schema_parse/schema_parse_ex: parse raw
// JSON bytes into a Schema using the Compiler's configured default
// version.
func (c *Compiler) Compile(data []byte) (*Schema, error) {
	var doc any
	if err := c.decode(data, &doc); err != nil {
		return nil, newCompileError(ErrValueDataType, "", "document is not valid JSON: "+err.Error())
	}
	return c.CompileValue(doc)
}

func (c *Compiler) decode(data []byte, v any) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.jsonDecode(data, v)
}

// CompileValue compiles an already-decoded document (map[string]any or
// bool), per spec §4.1's root rule and version selection.
func (c *Compiler) CompileValue(doc any) (*Schema, error) {
	schema := &Schema{
		compiler:      c,
		doc:           doc,
		uriDerefCache: make(map[string]*SchemaValue),
	}

	version, err := c.selectVersion(doc)
	if err != nil {
		schema.err = err
		return nil, err
	}
	schema.version = version

	root, err := c.compileValue(doc, nil, schema, c.defaultBaseURI)
	if err != nil {
		schema.err = err
		return nil, err
	}
	schema.root = root
	return schema, nil
}

// selectVersion implements spec §4.1's "Version selection" / §6.2's
// accepted $schema values.
func (c *Compiler) selectVersion(doc any) (Version, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		if _, isBool := doc.(bool); isBool {
			return VersionDraft06, nil
		}
		return VersionNone, newCompileError(ErrRootDataType, "", "root schema value must be an object or (draft 6) a boolean")
	}

	raw, present := obj["$schema"]
	if !present {
		c.mu.RLock()
		def := c.defaultVersion
		c.mu.RUnlock()
		if def == VersionNone {
			return VersionNone, newCompileError(ErrVersion, "/$schema", "$schema is absent and no default version was configured")
		}
		return def, nil
	}
	uri, ok := raw.(string)
	if !ok {
		return VersionNone, newCompileError(ErrVersion, "/$schema", "$schema must be a string")
	}
	switch uri {
	case schemaURIDraft04:
		return VersionDraft04, nil
	case schemaURIDraft06:
		return VersionDraft06, nil
	case "http://json-schema.org/schema#":
		return VersionNone, newCompileError(ErrVersion, "/$schema", "the generic \"latest\" $schema URI is not supported; specify draft-04 or draft-06 explicitly")
	default:
		return VersionNone, newCompileError(ErrVersion, "/$schema", fmt.Sprintf("unrecognised or unsupported $schema %q (drafts 07, 2019-09 and 2020-12 are detected and rejected)", uri))
	}
}

// compileValue is the recursive construction procedure of spec §4.1,
// keyed on the value's `type` keyword. Grounded on the teacher's
// compiler.go dispatch plus original_source/src/jso_schema.c's
// jso_schema_value_parse.
func (c *Compiler) compileValue(raw any, parent *SchemaValue, schema *Schema, baseURI string) (*SchemaValue, error) {
	if b, ok := raw.(bool); ok {
		v := newSchemaValue(KindBooleanSchema, parent)
		if b {
			v.Flags |= ValueFlagBooleanSchemaTrue
		}
		v.markNotEmpty()
		v.BaseURI = NewSchemaUri(baseURI)
		return v, nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, newCompileError(ErrValueDataType, "", "schema value must be an object or (draft 6) a boolean")
	}

	localBase := baseURI
	if idRaw, present := firstPresent(obj, "$id", "id"); present {
		idStr, ok := idRaw.(string)
		if !ok {
			return nil, newCompileError(ErrID, "", "$id must be a string")
		}
		var u SchemaUri
		if err := u.Set(NewSchemaUri(baseURI), idStr); err != nil {
			return nil, err
		}
		localBase = u.Full
	}

	typeRaw, hasType := obj["type"]
	var v *SchemaValue
	var err error
	switch {
	case !hasType:
		v, err = c.compileMixed(obj, parent, schema, localBase)
	default:
		switch t := typeRaw.(type) {
		case string:
			v, err = c.compileTyped(obj, parent, schema, localBase, t)
		case []any:
			v, err = c.compileTypeList(obj, parent, schema, localBase, t)
		default:
			return nil, newCompileError(ErrTypeUnknown, "/type", "type must be a string or array of strings")
		}
	}
	if err != nil {
		return nil, err
	}

	v.BaseURI = NewSchemaUri(localBase)
	if err := c.compileCommon(obj, v, parent, schema, localBase); err != nil {
		return nil, err
	}
	if err := c.compileReference(obj, v, parent, schema); err != nil {
		return nil, err
	}
	if isRefOnly(obj) {
		v.Flags |= ValueFlagRefOnly
	}
	return v, nil
}

func firstPresent(obj map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// isRefOnly implements spec §4.1's RefOnly rule: the schema object's only
// significant key is $ref (metadata keywords like $id/title/description
// are tolerated alongside it).
func isRefOnly(obj map[string]any) bool {
	if _, ok := obj["$ref"]; !ok {
		return false
	}
	metadata := map[string]bool{"$ref": true, "$id": true, "id": true, "title": true, "description": true, "$schema": true, "default": true}
	for k := range obj {
		if !metadata[k] {
			return false
		}
	}
	return true
}

// compileMixed implements spec §4.1's "Absent → compile as Mixed" branch:
// attempt all seven concrete types, retain only non-empty results under
// the synthetic type_any keyword.
func (c *Compiler) compileMixed(obj map[string]any, parent *SchemaValue, schema *Schema, baseURI string) (*SchemaValue, error) {
	v := newSchemaValue(KindMixed, parent)
	candidates := []string{"null", "boolean", "integer", "number", "string", "array", "object"}
	for _, kind := range candidates {
		sub, err := c.compileTyped(obj, parent, schema, baseURI, kind)
		if err != nil {
			continue
		}
		if sub.isEmpty() {
			continue
		}
		v.Common.TypeAny = append(v.Common.TypeAny, sub)
	}
	if len(v.Common.TypeAny) > 0 {
		v.markNotEmpty()
	}
	return v, nil
}

// compileTypeList implements spec §4.1's array-type-list branch:
// validate uniqueness, compile each type to a sub-schema sharing the
// parent data, collect under the synthetic type_list keyword.
func (c *Compiler) compileTypeList(obj map[string]any, parent *SchemaValue, schema *Schema, baseURI string, types []any) (*SchemaValue, error) {
	v := newSchemaValue(KindMixed, parent)
	seen := make(map[string]bool, len(types))
	for _, raw := range types {
		name, ok := raw.(string)
		if !ok {
			return nil, newCompileError(ErrTypeInvalid, "/type", "type array entries must be strings")
		}
		if seen[name] {
			return nil, newCompileError(ErrTypeInvalid, "/type", "duplicate type "+name+" in type array")
		}
		seen[name] = true
		sub, err := c.compileTyped(obj, parent, schema, baseURI, name)
		if err != nil {
			return nil, err
		}
		v.Common.TypeList = append(v.Common.TypeList, sub)
	}
	v.markNotEmpty()
	return v, nil
}

// compileTyped dispatches to the per-kind compiler named by typeName, per
// spec §4.1's "A string → dispatch to the per-kind compiler."
func (c *Compiler) compileTyped(obj map[string]any, parent *SchemaValue, schema *Schema, baseURI, typeName string) (*SchemaValue, error) {
	switch typeName {
	case "null":
		return c.compileNull(obj, parent)
	case "boolean":
		return c.compileBoolean(obj, parent)
	case "integer":
		return c.compileInteger(obj, parent, schema.version)
	case "number":
		return c.compileNumber(obj, parent, schema.version)
	case "string":
		return c.compileString(obj, parent)
	case "array":
		return c.compileArray(obj, parent, schema, baseURI)
	case "object":
		return c.compileObject(obj, parent, schema, baseURI)
	default:
		return nil, newCompileError(ErrTypeInvalid, "/type", "unrecognised type "+typeName)
	}
}

// compileCommon extracts the keywords every SchemaValue carries
// regardless of Kind, per spec §4.1's per-kind-compiler preamble.
func (c *Compiler) compileCommon(obj map[string]any, v *SchemaValue, parent *SchemaValue, schema *Schema, baseURI string) error {
	if raw, ok := obj["title"]; ok {
		if s, ok := raw.(string); ok {
			v.Common.Title = s
		}
	}
	if raw, ok := obj["description"]; ok {
		if s, ok := raw.(string); ok {
			v.Common.Description = s
		}
	}
	if raw, ok := obj["default"]; ok {
		v.Common.Default = &DefaultValue{Value: raw}
	}
	if raw, ok := obj["const"]; ok {
		if schema.version != VersionDraft06 {
			return newCompileError(ErrKeywordType, "/const", "const requires draft 6")
		}
		v.Common.Const = &ConstValue{Value: raw}
		v.markNotEmpty()
	}
	if raw, ok := obj["enum"]; ok {
		arr, ok := raw.([]any)
		if !ok || len(arr) == 0 {
			return newCompileError(ErrValueDataDeps, "/enum", "enum must be a non-empty array")
		}
		v.Common.Enum = arr
		v.markNotEmpty()
	}

	for _, kw := range []struct {
		key string
		dst *[]*SchemaValue
	}{
		{"allOf", &v.Common.AllOf},
		{"anyOf", &v.Common.AnyOf},
		{"oneOf", &v.Common.OneOf},
	} {
		raw, ok := obj[kw.key]
		if !ok {
			continue
		}
		arr, ok := raw.([]any)
		if !ok || len(arr) == 0 {
			return newCompileError(ErrValueDataDeps, "/"+kw.key, kw.key+" must be a non-empty array")
		}
		for _, item := range arr {
			sub, err := c.compileValue(item, v, schema, baseURI)
			if err != nil {
				return err
			}
			*kw.dst = append(*kw.dst, sub)
		}
		v.markNotEmpty()
	}

	if raw, ok := obj["not"]; ok {
		sub, err := c.compileValue(raw, v, schema, baseURI)
		if err != nil {
			return err
		}
		v.Common.Not = sub
		v.markNotEmpty()
	}

	if raw, ok := obj["definitions"]; ok {
		defs, ok := raw.(map[string]any)
		if !ok {
			return newCompileError(ErrKeywordType, "/definitions", "definitions must be an object")
		}
		v.Common.Definitions = make(map[string]*SchemaValue, len(defs))
		keys := make([]string, 0, len(defs))
		for k := range defs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sub, err := c.compileValue(defs[k], v, schema, baseURI)
			if err != nil {
				return err
			}
			v.Common.Definitions[k] = sub
		}
	}

	return nil
}

// compileReference implements spec §4.1's reference-handling rule: when
// $ref is set, create a Reference and, once schema.root is in place (that
// is, while compiling a $ref target), attempt best-effort immediate
// resolution without failing compilation on a lookup miss. A $ref met
// while the root document itself is compiled is left unresolved here.
func (c *Compiler) compileReference(obj map[string]any, v *SchemaValue, parent *SchemaValue, schema *Schema) error {
	raw, ok := obj["$ref"]
	if !ok {
		return nil
	}
	refStr, ok := raw.(string)
	if !ok {
		return newCompileError(ErrKeywordType, "/$ref", "$ref must be a string")
	}
	var refURI SchemaUri
	if err := refURI.Set(v.BaseURI, refStr); err != nil {
		return err
	}
	ref := &Reference{
		URI:    refURI,
		Parent: parent,
		Schema: schema,
	}
	v.Ref = ref
	v.markNotEmpty()

	if schema.root != nil {
		// Best-effort: resolution failures here are not fatal (spec
		// §4.1); the validator resolves lazily via composition_push.
		_ = ref.resolve(schema.doc)
	}
	return nil
}
