// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import (
	"math/big"

	"github.com/woodsbury/decimal128"
)

// Kind identifies which arm of the value tree a Value occupies.
type Kind int

const (
	KindNull Kind = iota
	KindUndefined
	KindBool
	KindInt
	KindFloat
	KindDecimal
	KindString
	KindArray
	KindObject
)

// Null is the JSON null value.
type Null struct{}

// Undefined is the ECMAScript undefined value. It is only producible by the
// decoder when non-strict mode allows it (the undefined_values behavior, or
// as an elided array element).
type Undefined struct{}

// Bool is a JSON boolean.
type Bool bool

// Int is an arbitrary-precision integer. The decoder produces one whenever
// a numeric literal has no decimal point and no negative exponent, except
// that a negative zero becomes a Float.
type Int struct {
	V *big.Int
}

// NewInt wraps an int64 as an Int value.
func NewInt(v int64) Int {
	return Int{V: big.NewInt(v)}
}

// Float is an IEEE-754 double. NaN, +Infinity, and -Infinity are
// distinguished Float values recognized by inspection (math.IsNaN,
// math.IsInf), not by identity, per spec's §9 design note. Negative zero is
// preserved: a decoded "-0" produces Float(math.Copysign(0, -1)).
type Float float64

// Decimal is a high-precision decimal, used when a numeric literal's digit
// count or magnitude exceeds what a Float can represent without loss, and
// its promotion hasn't overflowed into ±Infinity. Backed by
// github.com/woodsbury/decimal128, which carries 34 significant digits.
type Decimal struct {
	V decimal128.Decimal
}

// String is a JSON string: a sequence of Unicode scalar values. Unpaired
// surrogates are never present in a decoded String; encoding one fails.
type String string

// Array is an ordered sequence of values.
type Array []interface{}

// Pair is one member of an Object.
type Pair struct {
	Key interface{} // String in strict mode; String, Int, Float, or Decimal when nonstring_keys is allowed.
	Val interface{}
}

// Object is an ordered mapping from key to value. Order is insertion order,
// the same way the teacher's Slice preserves BSON document member order;
// encoding may re-sort by textual key form when the sort option is enabled.
type Object []Pair

// Get looks up the first pair whose key is a String equal to name; pairs
// with non-string keys are never matched. Returns nil, false if absent.
func (o Object) Get(name string) (interface{}, bool) {
	for _, p := range o {
		if s, ok := p.Key.(String); ok && string(s) == name {
			return p.Val, true
		}
	}
	return nil, false
}

// Set replaces the value for an existing string key, or appends a new pair.
func (o *Object) Set(name string, val interface{}) {
	for i, p := range *o {
		if s, ok := p.Key.(String); ok && string(s) == name {
			(*o)[i].Val = val
			return
		}
	}
	*o = append(*o, Pair{Key: String(name), Val: val})
}

// classify returns the value's Kind for values already in the value tree.
// Arbitrary Go values (plain maps, slices, structs, primitives) are not
// classified here; the encoder's classification step (encode.go) handles
// those via reflection, the same two-tier approach the teacher's encodeVal
// uses (concrete type switch, then reflect.Kind fallback).
func classify(v interface{}) (Kind, bool) {
	switch v.(type) {
	case Null:
		return KindNull, true
	case Undefined:
		return KindUndefined, true
	case Bool:
		return KindBool, true
	case Int:
		return KindInt, true
	case Float:
		return KindFloat, true
	case Decimal:
		return KindDecimal, true
	case String:
		return KindString, true
	case Array:
		return KindArray, true
	case Object:
		return KindObject, true
	}
	return 0, false
}

// IsNaN reports whether f is the NaN sentinel.
func (f Float) IsNaN() bool {
	return float64(f) != float64(f)
}

// IsInf reports whether f is +Infinity (sign > 0), -Infinity (sign < 0), or
// either (sign == 0).
func (f Float) IsInf(sign int) bool {
	x := float64(f)
	if sign >= 0 && x > 1.7976931348623157e+308 {
		return true
	}
	if sign <= 0 && x < -1.7976931348623157e+308 {
		return true
	}
	return false
}
