// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import "fmt"

// Behavior names a single named toggle in the strictness controller (§4.1).
// Each one independently allows or prevents one deviation from strict JSON.
type Behavior string

const (
	AnyTypeAtStart          Behavior = "any_type_at_start"
	AllNumericSigns         Behavior = "all_numeric_signs"
	Comments                Behavior = "comments"
	ControlCharInString     Behavior = "control_char_in_string"
	HexNumbers              Behavior = "hex_numbers"
	InitialDecimalPoint     Behavior = "initial_decimal_point"
	JSStringEscapes         Behavior = "js_string_escapes"
	NonNumbers              Behavior = "non_numbers"
	NonescapeCharacters     Behavior = "nonescape_characters"
	NonstringKeys           Behavior = "nonstring_keys"
	OctalNumbers            Behavior = "octal_numbers"
	OmittedArrayElements    Behavior = "omitted_array_elements"
	SingleQuotedStrings     Behavior = "single_quoted_strings"
	TrailingCommaInLiteral  Behavior = "trailing_comma_in_literal"
	UndefinedValues         Behavior = "undefined_values"
	UnicodeFormatControl    Behavior = "unicode_format_control_chars"
	UnicodeWhitespace       Behavior = "unicode_whitespace"
)

// allBehaviors lists every named toggle, used to validate allow/prevent
// arguments and to build the strict/non-strict presets.
var allBehaviors = []Behavior{
	AnyTypeAtStart, AllNumericSigns, Comments, ControlCharInString,
	HexNumbers, InitialDecimalPoint, JSStringEscapes, NonNumbers,
	NonescapeCharacters, NonstringKeys, OctalNumbers, OmittedArrayElements,
	SingleQuotedStrings, TrailingCommaInLiteral, UndefinedValues,
	UnicodeFormatControl, UnicodeWhitespace,
}

// strictDefaults and nonStrictDefaults are the two starting presets (§4.1):
// all behaviors off for strict, all on for non-strict, except octal_numbers
// which defaults off regardless of the strict flag and must be opted into
// explicitly with Allow.
var strictDefaults = map[Behavior]bool{}

var nonStrictDefaults = map[Behavior]bool{
	AllNumericSigns:        true,
	Comments:               true,
	ControlCharInString:    true,
	HexNumbers:             true,
	InitialDecimalPoint:    true,
	JSStringEscapes:        true,
	NonNumbers:             true,
	NonescapeCharacters:    true,
	NonstringKeys:          true,
	OmittedArrayElements:   true,
	SingleQuotedStrings:    true,
	TrailingCommaInLiteral: true,
	UndefinedValues:        true,
	UnicodeFormatControl:   true,
	UnicodeWhitespace:      true,
}

// Strictness is a mutable set of named behavior toggles. It generalizes the
// teacher's per-field struct-tag parsing (one small set of named booleans
// parsed out of a single string) to a registry of named booleans governing
// an entire decode or encode call.
type Strictness struct {
	strict bool
	set    map[Behavior]bool
}

// NewStrict returns a controller starting from the strict JSON preset: every
// deviation behavior is disallowed.
func NewStrict() *Strictness {
	return &Strictness{strict: true, set: map[Behavior]bool{}}
}

// NewNonStrict returns a controller starting from the library's historical
// non-strict preset (§4.1): every deviation allowed except octal_numbers.
func NewNonStrict() *Strictness {
	return &Strictness{strict: false, set: map[Behavior]bool{}}
}

func isKnownBehavior(b Behavior) bool {
	for _, x := range allBehaviors {
		if x == b {
			return true
		}
	}
	return false
}

// Allow turns on one or more behaviors, overriding the preset.
func (s *Strictness) Allow(behaviors ...Behavior) error {
	for _, b := range behaviors {
		if !isKnownBehavior(b) {
			return fmt.Errorf("demjson: unknown behavior %q", b)
		}
		s.set[b] = true
	}
	return nil
}

// Prevent turns off one or more behaviors, overriding the preset.
func (s *Strictness) Prevent(behaviors ...Behavior) error {
	for _, b := range behaviors {
		if !isKnownBehavior(b) {
			return fmt.Errorf("demjson: unknown behavior %q", b)
		}
		s.set[b] = false
	}
	return nil
}

// Allows reports whether b is currently permitted: an explicit Allow/Prevent
// override wins; otherwise the starting preset (strict or non-strict)
// decides. any_type_at_start is pinned on regardless of the strict flag or
// any override (RFC 7158 permits a bare scalar as the top-level value; the
// source sets this unconditionally rather than `= not strict` like every
// other row). octal_numbers defaults off in both presets per §4.1, but an
// explicit Allow still turns it on.
func (s *Strictness) Allows(b Behavior) bool {
	if b == AnyTypeAtStart {
		return true
	}
	if v, ok := s.set[b]; ok {
		return v
	}
	if b == OctalNumbers {
		return false
	}
	if s.strict {
		return strictDefaults[b]
	}
	return nonStrictDefaults[b]
}

// Clone returns an independent copy, so a caller can derive one decode call's
// strictness from another without mutating the original.
func (s *Strictness) Clone() *Strictness {
	cp := &Strictness{strict: s.strict, set: make(map[Behavior]bool, len(s.set))}
	for k, v := range s.set {
		cp.set[k] = v
	}
	return cp
}
