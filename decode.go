// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import "unicode"

// DecodeOptions configures a single Decode call. Strictness defaults to a
// non-strict preset (the library's historical default) unless Strictness
// is supplied explicitly.
type DecodeOptions struct {
	Strictness *Strictness
	Hooks      *Hooks
	Encoding   Encoding // "" triggers auto-detection
	ErrorPolicy
}

type decoder struct {
	runes  []rune
	strict *Strictness
	hooks  *Hooks
}

// errf builds a DecodeError located at rune offset i, computing line/column
// the way a hand-rolled scanner would: count newlines up to i.
func (d *decoder) errf(i int, msg string) *DecodeError {
	line, col := 1, 1
	for _, r := range d.runes[:min(i, len(d.runes))] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	frag := ""
	end := i + 20
	if end > len(d.runes) {
		end = len(d.runes)
	}
	if i < len(d.runes) {
		frag = string(d.runes[i:end])
	}
	return &DecodeError{Msg: msg, Offset: i, Line: line, Col: col, Fragment: frag}
}

// Decode parses a JSON/ECMAScript-superset document from raw bytes,
// auto-detecting or using the supplied transfer encoding, and returns the
// resulting value tree. Grounded on the source's top-level decode(): strip
// Unicode format control characters if allowed, parse one value, then
// require nothing but trailing whitespace/comments to remain.
func Decode(data []byte, opts *DecodeOptions) (interface{}, error) {
	if opts == nil {
		opts = &DecodeOptions{}
	}
	strict := opts.Strictness
	if strict == nil {
		strict = NewNonStrict()
	}

	runes, _, err := DecodeBytes(data, opts.Encoding, opts.ErrorPolicy)
	if err != nil {
		return nil, err
	}

	d := &decoder{runes: runes, strict: strict, hooks: opts.Hooks}

	if strict.Allows(UnicodeFormatControl) {
		d.runes = stripFormatControlChars(d.runes)
	}

	onlyComposite := !strict.Allows(AnyTypeAtStart)
	v, i, err := d.decodeValue(0, onlyComposite)
	if err != nil {
		return nil, err
	}
	i = d.skipWS(i)
	if i < len(d.runes) {
		return nil, d.errf(i, "unexpected or extra text")
	}
	return v, nil
}

// stripFormatControlChars removes Unicode "Cf" format control characters
// (e.g. zero-width joiners, byte-order marks embedded mid-stream), the
// behavior named unicode_format_control_chars in §4.1.
func stripFormatControlChars(runes []rune) []rune {
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if unicode.Is(unicode.Cf, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (d *decoder) isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n':
		return true
	}
	if d.strict.Allows(UnicodeWhitespace) {
		return unicode.IsSpace(r)
	}
	return false
}

// skipComment skips a // or /* */ comment starting at i, returning the
// index just past it. Reports via ok whether a comment was actually found.
func (d *decoder) skipComment(i int) (int, bool, error) {
	runes := d.runes
	if i+1 >= len(runes) || runes[i] != '/' || (runes[i+1] != '/' && runes[i+1] != '*') {
		return i, false, nil
	}
	if !d.strict.Allows(Comments) {
		return i, false, d.errf(i, "comments are not allowed in strict JSON")
	}
	multiline := runes[i+1] == '*'
	start := i
	i += 2
	for i < len(runes) {
		if multiline {
			if runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/' {
				return i + 2, true, nil
			}
			if runes[i] == '/' && i+1 < len(runes) && runes[i+1] == '*' {
				return i, true, d.errf(start, "multiline /* */ comments may not nest")
			}
		} else if isLineTerminator(runes[i]) {
			return i, true, nil
		}
		i++
	}
	if !multiline {
		return len(runes), true, nil
	}
	return i, true, d.errf(start, "comment was never terminated")
}

// skipWS skips whitespace and (if allowed) comments, the same loop shape as
// the source's skipws_any.
func (d *decoder) skipWS(i int) int {
	runes := d.runes
	for i < len(runes) {
		if runes[i] == '/' {
			next, found, err := d.skipComment(i)
			if err == nil && found {
				i = next
				continue
			}
		}
		if i < len(runes) && d.isWhitespace(runes[i]) {
			i++
			continue
		}
		break
	}
	return i
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

// decodeValue parses one value (scalar or composite) at i, the source's
// decodeobj. onlyComposite restricts the top-level call to object/array
// per the any_type_at_start behavior.
func (d *decoder) decodeValue(i int, onlyComposite bool) (interface{}, int, error) {
	runes := d.runes
	i = d.skipWS(i)
	if i >= len(runes) {
		return nil, i, d.errf(i, "unexpected end of input")
	}
	c := runes[i]

	switch {
	case c == '[' || c == '{':
		return d.decodeComposite(i)
	case onlyComposite:
		return nil, i, d.errf(i, "document must start with an object or array type only")
	case c == '"' || c == '\'':
		s, j, err := d.decodeString(i)
		return s, j, err
	case isDigit(c) || c == '.' || c == '+' || c == '-':
		return d.decodeNumber(i)
	case isIdentStart(c):
		j := i
		for j < len(runes) && isIdentPart(runes[j]) {
			j++
		}
		kw := string(runes[i:j])
		switch kw {
		case "null":
			return Null{}, j, nil
		case "true":
			return Bool(true), j, nil
		case "false":
			return Bool(false), j, nil
		case "undefined":
			if d.strict.Allows(UndefinedValues) {
				return Undefined{}, j, nil
			}
			return nil, i, d.errf(i, "strict JSON does not allow undefined elements")
		case "NaN", "Infinity":
			return d.decodeNumber(i)
		default:
			return nil, i, d.errf(i, "unknown keyword or identifier: "+kw)
		}
	default:
		return nil, i, d.errf(i, "can not decode value")
	}
}

// decodeKey parses an object member's key: a string literal always, or —
// when nonstring_keys is allowed — a number or a bare ECMAScript identifier
// (treated as a string), per §4.3 "non-strict additionally accepts a number
// or a bare identifier".
func (d *decoder) decodeKey(i int) (interface{}, int, error) {
	runes := d.runes
	if i >= len(runes) {
		return nil, i, d.errf(i, "unexpected end of input")
	}
	c := runes[i]
	if c == '"' || c == '\'' {
		return d.decodeString(i)
	}
	if isIdentStart(c) && d.strict.Allows(NonstringKeys) {
		j := i
		for j < len(runes) && isIdentPart(runes[j]) {
			j++
		}
		return String(runes[i:j]), j, nil
	}
	if (isDigit(c) || c == '.' || c == '+' || c == '-') && d.strict.Allows(NonstringKeys) {
		return d.decodeNumber(i)
	}
	return d.decodeValue(i, false)
}

// decodeComposite parses an array or object starting at i and then runs it
// through the decode_array/decode_object hook if installed (§4.3: "After a
// composite is closed, the value is passed through decode_object or
// decode_array hook if installed").
func (d *decoder) decodeComposite(i int) (interface{}, int, error) {
	v, j, err := d.decodeCompositeRaw(i)
	if err != nil {
		return v, j, err
	}
	hookName := "decode_array"
	if _, ok := v.(Object); ok {
		hookName = "decode_object"
	}
	v2, herr := d.hooks.CallDecodeHook(hookName, v)
	if herr != nil {
		return nil, j, herr
	}
	return v2, j, nil
}

// decodeCompositeRaw does the actual parsing, mirroring the source's
// decode_composite: empty-composite fast path, elision handling for
// arrays, trailing-comma policy, and nonstring-key admission for objects.
func (d *decoder) decodeCompositeRaw(i int) (interface{}, int, error) {
	runes := d.runes
	start := i
	opener := runes[i]
	isObject := opener == '{'
	closer := ']'
	if isObject {
		closer = '}'
	}
	i++
	i = d.skipWS(i)

	if i < len(runes) && runes[i] == closer {
		i++
		if isObject {
			return Object{}, i, nil
		}
		return Array{}, i, nil
	}

	var arr Array
	var obj Object
	sawValue := false

	for i < len(runes) {
		i = d.skipWS(i)
		if i < len(runes) && (runes[i] == ',' || runes[i] == closer) {
			c := runes[i]
			i++
			if c == ',' {
				if !sawValue {
					if isObject {
						return nil, i, d.errf(i, "can not omit elements of an object")
					}
					if !d.strict.Allows(OmittedArrayElements) {
						return nil, i, d.errf(i, "strict JSON does not permit omitted array elements")
					}
					if d.strict.Allows(UndefinedValues) {
						arr = append(arr, Undefined{})
					} else {
						arr = append(arr, Null{})
					}
				}
				sawValue = false
				continue
			}
			if !sawValue && !d.strict.Allows(TrailingCommaInLiteral) {
				what := "array (list)"
				if isObject {
					what = "object (dictionary)"
				}
				return nil, i, d.errf(i, "strict JSON does not allow a final comma in an "+what+" literal")
			}
			if isObject {
				return obj, i, nil
			}
			return arr, i, nil
		}

		if isObject {
			key, j, err := d.decodeKey(i)
			if err != nil {
				return nil, i, err
			}
			if sawValue {
				return nil, i, d.errf(i, "values must be separated by a comma")
			}
			sawValue = true
			i = d.skipWS(j)

			switch key.(type) {
			case String:
			case Int, Float, Decimal:
				if !d.strict.Allows(NonstringKeys) {
					return nil, start, d.errf(start, "strict JSON only permits string literals as object properties")
				}
			default:
				return nil, start, d.errf(start, "object properties must be either string literals or numbers")
			}
			if i >= len(runes) || runes[i] != ':' {
				return nil, start, d.errf(start, "object property has no value, expected \":\"")
			}
			i++
			i = d.skipWS(i)
			val, j2, err := d.decodeValue(i, false)
			if err != nil {
				return nil, start, err
			}
			i = d.skipWS(j2)
			obj = append(obj, Pair{Key: key, Val: val})
		} else {
			val, j, err := d.decodeValue(i, false)
			if err != nil {
				return nil, i, err
			}
			if sawValue {
				return nil, i, d.errf(i, "values must be separated by a comma")
			}
			sawValue = true
			i = d.skipWS(j)
			arr = append(arr, val)
		}
	}

	if isObject {
		return nil, start, d.errf(start, "object literal (dictionary) is not terminated")
	}
	return nil, start, d.errf(start, "array literal (list) is not terminated")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
