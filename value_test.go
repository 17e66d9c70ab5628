// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import (
	"math"
	"testing"
)

func TestObjectGetSet(t *testing.T) {
	var obj Object
	obj.Set("a", NewInt(1))
	obj.Set("b", NewInt(2))
	obj.Set("a", NewInt(3)) // overwrite, not append

	if len(obj) != 2 {
		t.Fatalf("len(obj) = %d, want 2", len(obj))
	}
	v, ok := obj.Get("a")
	if !ok {
		t.Fatal("Get(\"a\") = false, want true")
	}
	n, ok := v.(Int)
	if !ok || n.V.Int64() != 3 {
		t.Fatalf("obj[\"a\"] = %#v, want Int(3)", v)
	}
	if _, ok := obj.Get("missing"); ok {
		t.Fatal("Get(\"missing\") = true, want false")
	}
}

func TestFloatSentinels(t *testing.T) {
	if !Float(math.NaN()).IsNaN() {
		t.Fatal("Float(NaN).IsNaN() = false")
	}
	if Float(1.0).IsNaN() {
		t.Fatal("Float(1.0).IsNaN() = true")
	}
	if !Float(math.Inf(1)).IsInf(1) {
		t.Fatal("Float(+Inf).IsInf(1) = false")
	}
	if !Float(math.Inf(-1)).IsInf(-1) {
		t.Fatal("Float(-Inf).IsInf(-1) = false")
	}
	if Float(math.Inf(1)).IsInf(-1) {
		t.Fatal("Float(+Inf).IsInf(-1) = true")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		v    interface{}
		kind Kind
	}{
		{Null{}, KindNull},
		{Undefined{}, KindUndefined},
		{Bool(true), KindBool},
		{NewInt(1), KindInt},
		{Float(1.5), KindFloat},
		{String("x"), KindString},
		{Array{}, KindArray},
		{Object{}, KindObject},
	}
	for _, c := range cases {
		kind, ok := classify(c.v)
		if !ok || kind != c.kind {
			t.Errorf("classify(%#v) = (%v, %v), want (%v, true)", c.v, kind, ok, c.kind)
		}
	}
	if _, ok := classify(42); ok {
		t.Error("classify(42) should not be classified (plain Go values go through reflection)")
	}
}
