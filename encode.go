// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import (
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// EncodeOptions configures a single Encode call.
type EncodeOptions struct {
	Strictness    *Strictness
	Hooks         *Hooks
	Compact       bool         // omit indentation/newlines
	SortKeys      bool         // emit object members in sorted textual-key order
	EscapeUnicode EscapePolicy // nil: force-escape only what the output codec requires
	Encoding      Encoding     // "" renders text only; EncodeBytes transcodes through this
}

type encoder struct {
	strict   *Strictness
	hooks    *Hooks
	compact  bool
	sortKeys bool
	seen     map[uintptr]bool
	escape   EscapePolicy
	encoding Encoding
}

// JSONEquivalenter is implemented by user-defined types that want to
// substitute another value for their own encoding, the Go analogue of the
// source's duck-typed json_equivalent() capability (§4.4). A method that
// returns the receiver itself is an encode error rather than an infinite
// loop.
type JSONEquivalenter interface {
	JSONEquivalent() interface{}
}

// encodeClass is the coarse classification the hook pipeline (§4.4)
// dispatches on, generalizing the source's _classify_for_encoding from
// Python's duck-typed dict/sequence/bytes detection to Go's value tree plus
// reflect.Kind.
type encodeClass int

const (
	classOther encodeClass = iota
	classNull
	classUndefined
	classBool
	classNumber
	classString
	classDict
	classSequence
	classBytes
)

// classifyForEncode classifies both value-tree values and arbitrary Go
// values reachable via reflection, used to decide whether a hook's
// substitution changed the value's class (triggering a restart) and to pick
// which per-class hook (encode_dict/encode_sequence/encode_bytes) applies.
func classifyForEncode(obj interface{}) encodeClass {
	switch obj.(type) {
	case nil, Null:
		return classNull
	case Undefined:
		return classUndefined
	case Bool:
		return classBool
	case Int, Float, Decimal:
		return classNumber
	case String:
		return classString
	case Object:
		return classDict
	case Array:
		return classSequence
	}

	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Invalid:
		return classNull
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return classNull
		}
		return classifyForEncode(rv.Elem().Interface())
	case reflect.Bool:
		return classBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return classNumber
	case reflect.String:
		return classString
	case reflect.Map, reflect.Struct:
		return classDict
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return classBytes
		}
		return classSequence
	}
	return classOther
}

// identical reports whether a and b are the same value for the purpose of
// the json_equivalent "must not return itself" guard (§4.4): pointer
// identity for reference kinds, ordinary equality otherwise. Uncomparable
// mismatches (e.g. two different-shaped structs) are never identical.
func identical(a, b interface{}) (same bool) {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		return va.Pointer() == vb.Pointer()
	case reflect.Ptr:
		return va.Pointer() == vb.Pointer()
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// forceEscape reports whether r must be rendered as a \uXXXX escape rather
// than verbatim: either the caller's escape policy says so, or the target
// output codec can't carry it (§4.4).
func (e *encoder) forceEscape(r rune) bool {
	if e.escape != nil && e.escape(r) {
		return true
	}
	return codecForcesEscape(e.encoding, r)
}

// enterContainer and leaveContainer guard against self-referential value
// trees (§3 invariant: "the encoder must detect self-references ... and
// fail rather than loop"). A container is identified by its backing
// pointer; re-entering one already on the active encode path is an error
// rather than infinite recursion.
func (e *encoder) enterContainer(ptr uintptr) error {
	if ptr == 0 {
		return nil
	}
	if e.seen == nil {
		e.seen = map[uintptr]bool{}
	}
	if e.seen[ptr] {
		return &EncodeError{Msg: "cannot encode an infinite (self-referential) sequence"}
	}
	e.seen[ptr] = true
	return nil
}

func (e *encoder) leaveContainer(ptr uintptr) {
	if ptr != 0 {
		delete(e.seen, ptr)
	}
}

// Encode renders v (a value-tree value, or any Go value reachable via
// reflection) as a JSON/ECMAScript-superset document. Grounded on the
// source's top-level encode(): build a flat chunk list via encodeHelper,
// then join, appending a trailing newline for pretty (non-compact) output
// at nesting level zero.
func Encode(v interface{}, opts *EncodeOptions) (string, error) {
	if opts == nil {
		opts = &EncodeOptions{}
	}
	strict := opts.Strictness
	if strict == nil {
		strict = NewNonStrict()
	}
	e := &encoder{
		strict:   strict,
		hooks:    opts.Hooks,
		compact:  opts.Compact,
		sortKeys: opts.SortKeys,
		escape:   opts.EscapeUnicode,
		encoding: opts.Encoding,
	}

	var chunks []string
	if err := e.encodeHelper(&chunks, "", v, 0); err != nil {
		return "", err
	}
	if !e.compact {
		chunks = append(chunks, "\n")
	}
	return strings.Join(chunks, ""), nil
}

// EncodeBytes renders v the same way Encode does, then transcodes the
// result through opts.Encoding (§6.2: "a byte sequence produced by
// encoding that string through the chosen codec"). Before encoding, the
// codec's ability to carry at least JSON's syntax characters is checked;
// an insufficient codec (one that can't even carry braces and digits)
// fails fast with "output encoding insufficient" rather than silently
// losing data partway through a large document.
func EncodeBytes(v interface{}, opts *EncodeOptions) ([]byte, error) {
	if opts == nil {
		opts = &EncodeOptions{}
	}
	if opts.Encoding != "" {
		if err := verifyCodecCarriesSyntax(opts.Encoding); err != nil {
			return nil, err
		}
	}
	s, err := Encode(v, opts)
	if err != nil {
		return nil, err
	}
	return encodeToCodec(s, opts.Encoding, ErrorStrict)
}

// encodeHelper classifies obj and appends its rendering to chunklist. It is
// the public entry point into the per-value pipeline; each call gets its
// own fresh one-restart budget (§9: "cap at one restart per value").
func (e *encoder) encodeHelper(chunklist *[]string, path string, obj interface{}, nest int) error {
	return e.encodeValueAt(chunklist, path, obj, nest, 1)
}

// encodeValueAt mirrors the source's encode_helper: run the encode_value
// hook first (restarting classification once, while budget allows, if it
// reclassifies the value, §4.5), then the json_equivalent substitution
// (§4.4, guarded against identity), then dispatch null/undefined/bool/
// number/string directly, falling through to encodeComposite for anything
// dict-, sequence-, or bytes-shaped (or otherwise unclassified).
func (e *encoder) encodeValueAt(chunklist *[]string, path string, obj interface{}, nest, budget int) error {
	if e.hooks != nil {
		beforeClass := classifyForEncode(obj)
		transformed, ran, err := e.hooks.CallEncodeHook("encode_value", obj)
		if err != nil {
			return err
		}
		if ran {
			if budget > 0 && classifyForEncode(transformed) != beforeClass {
				return e.encodeValueAt(chunklist, path, transformed, nest, budget-1)
			}
			obj = transformed
		}
	}

	if je, ok := obj.(JSONEquivalenter); ok {
		equiv := je.JSONEquivalent()
		if identical(equiv, obj) {
			return &EncodeError{Path: path, Value: obj, Msg: "JSONEquivalent method must not return itself"}
		}
		nextBudget := 0
		if budget > 0 {
			nextBudget = budget - 1
		}
		return e.encodeValueAt(chunklist, path, equiv, nest, nextBudget)
	}

	switch v := obj.(type) {
	case Null, nil:
		*chunklist = append(*chunklist, "null")
		return nil
	case Undefined:
		if !e.strict.Allows(UndefinedValues) {
			return &EncodeError{Path: path, Value: v, Msg: "strict JSON does not permit \"undefined\" values"}
		}
		*chunklist = append(*chunklist, "undefined")
		return nil
	case Bool:
		if v {
			*chunklist = append(*chunklist, "true")
		} else {
			*chunklist = append(*chunklist, "false")
		}
		return nil
	case Int, Float, Decimal:
		s, err := encodeNumber(v, e.strict)
		if err != nil {
			if ee, ok := err.(*EncodeError); ok {
				ee.Path = path
			}
			return err
		}
		*chunklist = append(*chunklist, s)
		return nil
	case String:
		s, err := encodeString(v, e.forceEscape)
		if err != nil {
			if ee, ok := err.(*EncodeError); ok {
				ee.Path = path
			}
			return err
		}
		*chunklist = append(*chunklist, s)
		return nil
	}

	return e.encodeComposite(chunklist, path, obj, nest, budget)
}

// entry is one already-rendered object member: chunks holds the joined
// "key : value" text, key the raw textual key (for sorting).
type entry struct {
	key    string
	chunks string
}

// encodeComposite renders an Object/Array, or an arbitrary Go
// map/slice/struct/primitive via reflection, grounded on the source's
// encode_composite and the teacher's encodeVal two-tier dispatch
// (concrete-type switch in encodeValueAt above, reflect.Kind() fallback
// here). budget is the remaining hook-restart allowance threaded down from
// encodeValueAt, consumed by the per-class hooks below the same way
// encode_value consumes it.
func (e *encoder) encodeComposite(chunklist *[]string, path string, obj interface{}, nest, budget int) error {
	if _, ok := obj.(Object); ok {
		return e.runDictHook(chunklist, path, obj, nest, budget)
	}
	if _, ok := obj.(Array); ok {
		return e.runSequenceHook(chunklist, path, obj, nest, budget)
	}

	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Invalid:
		*chunklist = append(*chunklist, "null")
		return nil
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			*chunklist = append(*chunklist, "null")
			return nil
		}
		return e.encodeValueAt(chunklist, path, rv.Elem().Interface(), nest, budget)
	case reflect.Bool:
		return e.encodeValueAt(chunklist, path, Bool(rv.Bool()), nest, budget)
	case reflect.String:
		return e.encodeValueAt(chunklist, path, String(rv.String()), nest, budget)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.encodeValueAt(chunklist, path, Int{V: big.NewInt(rv.Int())}, nest, budget)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return e.encodeValueAt(chunklist, path, Int{V: new(big.Int).SetUint64(rv.Uint())}, nest, budget)
	case reflect.Float32, reflect.Float64:
		return e.encodeValueAt(chunklist, path, Float(rv.Float()), nest, budget)
	case reflect.Map, reflect.Struct:
		return e.runDictHook(chunklist, path, obj, nest, budget)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return e.runBytesHook(chunklist, path, obj, nest, budget)
		}
		return e.runSequenceHook(chunklist, path, obj, nest, budget)
	}
	return e.encodeOther(chunklist, path, obj, nest, budget)
}

// runCompositeHook invokes the named per-class hook (encode_dict/
// encode_sequence/encode_bytes, §4.4) on the raw dict-/sequence-/
// bytes-shaped value before it is converted to Object/Array. If the hook
// substitutes a value whose class differs, that is a reclassification: hand
// it back to the general dispatcher (consuming a restart) exactly as the
// source's encode_composite falls back to self.encode(). Otherwise returns
// the (possibly substituted) value for the caller to convert itself.
func (e *encoder) runCompositeHook(chunklist *[]string, path, hookName string, obj interface{}, nest, budget int) (result interface{}, handled bool, err error) {
	if e.hooks == nil {
		return obj, false, nil
	}
	transformed, ran, herr := e.hooks.CallEncodeHook(hookName, obj)
	if herr != nil {
		return nil, true, herr
	}
	if !ran {
		return obj, false, nil
	}
	if budget > 0 && classifyForEncode(transformed) != classifyForEncode(obj) {
		return nil, true, e.encodeValueAt(chunklist, path, transformed, nest, budget-1)
	}
	return transformed, false, nil
}

// runDictHook handles both a literal Object value and a raw Go map/struct,
// running the encode_dict hook (§4.4) on the undivided value first.
func (e *encoder) runDictHook(chunklist *[]string, path string, obj interface{}, nest, budget int) error {
	result, handled, err := e.runCompositeHook(chunklist, path, "encode_dict", obj, nest, budget)
	if handled {
		return err
	}
	if o, ok := result.(Object); ok {
		return e.encodeObject(chunklist, path, o, nest)
	}

	rv := reflect.ValueOf(result)
	switch rv.Kind() {
	case reflect.Map:
		if err := e.enterContainer(rv.Pointer()); err != nil {
			return err
		}
		defer e.leaveContainer(rv.Pointer())
		o, err := mapToObject(rv)
		if err != nil {
			return &EncodeError{Path: path, Value: result, Msg: err.Error()}
		}
		return e.encodeObject(chunklist, path, o, nest)
	case reflect.Struct:
		o, err := structToObject(rv)
		if err != nil {
			return &EncodeError{Path: path, Value: result, Msg: err.Error()}
		}
		return e.encodeObject(chunklist, path, o, nest)
	}
	return &EncodeError{Path: path, Value: result, Msg: "cannot encode value of this type"}
}

// runSequenceHook handles both a literal Array value and a raw Go
// slice/array, running the encode_sequence hook (§4.4) first.
func (e *encoder) runSequenceHook(chunklist *[]string, path string, obj interface{}, nest, budget int) error {
	result, handled, err := e.runCompositeHook(chunklist, path, "encode_sequence", obj, nest, budget)
	if handled {
		return err
	}
	if a, ok := result.(Array); ok {
		return e.encodeArray(chunklist, path, a, nest)
	}

	rv := reflect.ValueOf(result)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return &EncodeError{Path: path, Value: result, Msg: "cannot encode value of this type"}
	}
	if rv.Kind() == reflect.Slice {
		if err := e.enterContainer(rv.Pointer()); err != nil {
			return err
		}
		defer e.leaveContainer(rv.Pointer())
	}
	arr := make(Array, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		arr[i] = rv.Index(i).Interface()
	}
	return e.encodeArray(chunklist, path, arr, nest)
}

// runBytesHook handles a raw Go byte slice/array, running the encode_bytes
// hook (§4.4) first. With no hook installed (or one that declines via
// Skip), bytes render the way the source's unhooked bytes/bytearray fall
// through to its generic sequence path: as an array of byte values, not as
// a string (that conversion would silently assume a text encoding the
// caller never specified).
func (e *encoder) runBytesHook(chunklist *[]string, path string, obj interface{}, nest, budget int) error {
	result, handled, err := e.runCompositeHook(chunklist, path, "encode_bytes", obj, nest, budget)
	if handled {
		return err
	}

	rv := reflect.ValueOf(result)
	if (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Type().Elem().Kind() != reflect.Uint8 {
		return e.encodeValueAt(chunklist, path, result, nest, budget)
	}
	arr := make(Array, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		arr[i] = Int{V: big.NewInt(int64(rv.Index(i).Uint()))}
	}
	return e.encodeArray(chunklist, path, arr, nest)
}

// encodeOther is the last resort for a value with no built-in
// classification (channels, functions, complex numbers, unsafe pointers):
// run the encode_default hook (§4.4) if installed, or fail.
func (e *encoder) encodeOther(chunklist *[]string, path string, obj interface{}, nest, budget int) error {
	if e.hooks != nil {
		transformed, ran, err := e.hooks.CallEncodeHook("encode_default", obj)
		if err != nil {
			return err
		}
		if ran {
			nextBudget := 0
			if budget > 0 {
				nextBudget = budget - 1
			}
			return e.encodeValueAt(chunklist, path, transformed, nest, nextBudget)
		}
	}
	return &EncodeError{Path: path, Value: obj, Msg: "cannot encode value of this type"}
}

func (e *encoder) encodeArray(chunklist *[]string, path string, arr Array, nest int) error {
	if len(arr) == 0 {
		*chunklist = append(*chunklist, "[]")
		return nil
	}
	ptr := reflect.ValueOf(arr).Pointer()
	if err := e.enterContainer(ptr); err != nil {
		return err
	}
	defer e.leaveContainer(ptr)
	indent0, indent := e.indents(nest)
	var items []string
	for i, v := range arr {
		var item []string
		if err := e.encodeHelper(&item, catpath(path, strconv.Itoa(i)), v, nest+1); err != nil {
			return err
		}
		items = append(items, strings.Join(item, ""))
	}
	sep := ","
	if !e.compact {
		sep = ",\n" + indent
	}
	var b strings.Builder
	b.WriteString("[")
	if !e.compact {
		b.WriteString(" ")
	}
	b.WriteString(strings.Join(items, sep))
	if !e.compact {
		if len(items) > 1 {
			b.WriteString("\n" + indent0)
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("]")
	*chunklist = append(*chunklist, b.String())
	return nil
}

func (e *encoder) encodeObject(chunklist *[]string, path string, obj Object, nest int) error {
	if len(obj) == 0 {
		*chunklist = append(*chunklist, "{}")
		return nil
	}
	ptr := reflect.ValueOf(obj).Pointer()
	if err := e.enterContainer(ptr); err != nil {
		return err
	}
	defer e.leaveContainer(ptr)
	indent0, indent := e.indents(nest)
	dictcolon := " : "
	if e.compact {
		dictcolon = ":"
	}

	entries := make([]entry, 0, len(obj))
	for _, p := range obj {
		key := p.Key
		if e.hooks != nil {
			transformed, ran, err := e.hooks.CallEncodeHook("encode_dict_key", key)
			if err != nil {
				return err
			}
			if ran {
				key = transformed
			}
		}
		switch key.(type) {
		case String:
		case Int, Float, Decimal:
			if !e.strict.Allows(NonstringKeys) {
				return &EncodeError{Path: path, Value: key, Msg: "object properties must be strings in strict JSON"}
			}
		default:
			return &EncodeError{Path: path, Value: key, Msg: "object properties can only be strings or numbers"}
		}

		var keyChunks []string
		if err := e.encodeHelper(&keyChunks, path, key, nest+1); err != nil {
			return err
		}
		keyText := strings.Join(keyChunks, "")

		var valChunks []string
		if err := e.encodeHelper(&valChunks, catpath(path, keyText), p.Val, nest+2); err != nil {
			return err
		}
		entries = append(entries, entry{key: keyText, chunks: keyText + dictcolon + strings.Join(valChunks, "")})
	}

	if e.sortKeys {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	}

	sep := ","
	if !e.compact {
		sep = ",\n" + indent
	}
	var b strings.Builder
	b.WriteString("{")
	if !e.compact {
		b.WriteString(" ")
	}
	for i, en := range entries {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(en.chunks)
	}
	if !e.compact {
		if len(entries) > 1 {
			b.WriteString("\n" + indent0)
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("}")
	*chunklist = append(*chunklist, b.String())
	return nil
}

func (e *encoder) indents(nest int) (indent0, indent string) {
	if e.compact {
		return "", ""
	}
	return strings.Repeat("  ", nest), strings.Repeat("  ", nest+1)
}

// mapToObject converts an arbitrary Go map into an Object, generalizing the
// teacher's Map (map[string]interface{}) acceptance to any map whose key
// kind is encodable.
func mapToObject(rv reflect.Value) (Object, error) {
	obj := make(Object, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		var key interface{}
		switch k := iter.Key(); k.Kind() {
		case reflect.String:
			key = String(k.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			key = Int{V: big.NewInt(k.Int())}
		default:
			return nil, &EncodeError{Value: iter.Key().Interface(), Msg: "map key type is not string or integer"}
		}
		obj = append(obj, Pair{Key: key, Val: iter.Value().Interface()})
	}
	return obj, nil
}

// structToObject converts a struct into an Object using "json" struct
// tags, the same name-override/omitempty/unexported-skip shape as the
// teacher's encodeStruct, generalized from the "bson" tag to "json".
func structToObject(rv reflect.Value) (Object, error) {
	t := rv.Type()
	obj := make(Object, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		name := sf.Name
		fv := indirectValue(rv.Field(i))

		if tag := sf.Tag.Get("json"); tag != "" {
			tok := strings.Split(tag, ",")
			if tok[0] == "-" {
				continue
			}
			if tok[0] != "" {
				name = tok[0]
			}
			if len(tok) == 2 && tok[1] == "omitempty" && isEmptyValue(fv) {
				continue
			}
		}
		obj = append(obj, Pair{Key: String(name), Val: fv.Interface()})
	}
	return obj, nil
}

func indirectValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

func catpath(path, name string) string {
	if path == "" {
		return name
	}
	return strings.Join([]string{path, name}, ".")
}
