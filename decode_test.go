// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import (
	"math"
	"math/big"
	"reflect"
	"testing"
)

func mustDecode(t *testing.T, src string, opts ...Option) interface{} {
	t.Helper()
	v, err := DecodeString(src, opts...)
	if err != nil {
		t.Fatalf("DecodeString(%q): %v", src, err)
	}
	return v
}

func TestDecodeBasicArray(t *testing.T) {
	v := mustDecode(t, "[1, 2, 3]", Strict())
	arr, ok := v.(Array)
	if !ok || len(arr) != 3 {
		t.Fatalf("got %#v, want a 3-element Array", v)
	}
	for i, want := range []int64{1, 2, 3} {
		n, ok := arr[i].(Int)
		if !ok || n.V.Cmp(big.NewInt(want)) != 0 {
			t.Errorf("arr[%d] = %#v, want Int(%d)", i, arr[i], want)
		}
	}
}

func TestDecodeStrictRejectsNonStrictExtras(t *testing.T) {
	cases := []string{
		"{ 'a': NaN, }",
		"[,,,]",
		"0x2A",
		"// comment\n1",
		"undefined",
	}
	for _, src := range cases {
		if _, err := DecodeString(src, Strict()); err == nil {
			t.Errorf("DecodeString(%q, Strict()) succeeded, want decode-error", src)
		}
	}
}

func TestDecodeNonStrictTrailingComma(t *testing.T) {
	v := mustDecode(t, "{ 'a': NaN, }")
	obj, ok := v.(Object)
	if !ok || len(obj) != 1 {
		t.Fatalf("got %#v, want a 1-member Object", v)
	}
	f, ok := obj[0].Val.(Float)
	if !ok || !f.IsNaN() {
		t.Fatalf("obj[0].Val = %#v, want NaN", obj[0].Val)
	}
}

func TestDecodeHexNumbers(t *testing.T) {
	v := mustDecode(t, "0x2A", Allow(HexNumbers))
	n, ok := v.(Int)
	if !ok || n.V.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("got %#v, want Int(42)", v)
	}
	if _, err := DecodeString("0x2A", Strict()); err == nil {
		t.Fatal("expected decode-error for 0x2A without hex_numbers")
	}
}

func TestDecodeSurrogatePair(t *testing.T) {
	v := mustDecode(t, "\"\\uD834\\uDD1E\"", Strict())
	s, ok := v.(String)
	if !ok {
		t.Fatalf("got %#v, want String", v)
	}
	runes := []rune(string(s))
	if len(runes) != 1 || runes[0] != 0x1D11E {
		t.Fatalf("got %U, want single rune U+1D11E", runes)
	}
}

func TestDecodeLoneSurrogateIsError(t *testing.T) {
	if _, err := DecodeString(`"\uD834"`, Strict()); err == nil {
		t.Fatal("expected decode-error for an unpaired high surrogate")
	}
	if _, err := DecodeString(`"\uDD1E"`, Strict()); err == nil {
		t.Fatal("expected decode-error for an unpaired low surrogate")
	}
}

func TestDecodeHighPrecisionDecimal(t *testing.T) {
	src := "1234567890.12345678901234567890"
	v := mustDecode(t, src, Strict())
	dec, ok := v.(Decimal)
	if !ok {
		t.Fatalf("got %T, want Decimal for a 30-significant-digit literal", v)
	}
	if dec.V.String() == "" {
		t.Fatal("Decimal.String() returned empty string")
	}
}

func TestDecodeHundredDigitInteger(t *testing.T) {
	src := "1" + repeatDigit("0", 99)
	v := mustDecode(t, src, Strict())
	n, ok := v.(Int)
	if !ok {
		t.Fatalf("got %T, want Int for a 100-digit integer literal", v)
	}
	if n.V.String() != src {
		t.Fatalf("got %q, want %q (no loss, no scientific notation)", n.V.String(), src)
	}
}

func repeatDigit(d string, n int) string {
	b := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		b = append(b, d[0])
	}
	return string(b)
}

func TestDecodeNegativeZero(t *testing.T) {
	v := mustDecode(t, "-0", Strict())
	f, ok := v.(Float)
	if !ok || !math.Signbit(float64(f)) {
		t.Fatalf("got %#v, want Float(-0.0)", v)
	}
}

func TestDecodeEmptyInputIsError(t *testing.T) {
	if _, err := DecodeString("", Strict()); err == nil {
		t.Fatal("expected decode-error for empty input")
	}
}

func TestDecodeEmptyComposites(t *testing.T) {
	if v := mustDecode(t, "[]", Strict()); !reflect.DeepEqual(v, Array{}) {
		t.Errorf("[] decoded to %#v, want empty Array", v)
	}
	if v := mustDecode(t, "{}", Strict()); !reflect.DeepEqual(v, Object{}) {
		t.Errorf("{} decoded to %#v, want empty Object", v)
	}
}

func TestDecodeOmittedArrayElements(t *testing.T) {
	v := mustDecode(t, "[,,,]", Allow(OmittedArrayElements, UndefinedValues))
	arr, ok := v.(Array)
	if !ok || len(arr) != 3 {
		t.Fatalf("got %#v, want a 3-element Array of elisions", v)
	}
	for i, el := range arr {
		if _, ok := el.(Undefined); !ok {
			t.Errorf("arr[%d] = %#v, want Undefined", i, el)
		}
	}
	if _, err := DecodeString("[,,,]", Strict()); err == nil {
		t.Fatal("expected decode-error for elisions in strict mode")
	}
}

func TestDecodeBareIdentifierKey(t *testing.T) {
	v := mustDecode(t, "{a:1, b:2}", Allow(NonstringKeys))
	obj, ok := v.(Object)
	if !ok || len(obj) != 2 {
		t.Fatalf("got %#v, want a 2-member Object", v)
	}
	if key, ok := obj[0].Key.(String); !ok || string(key) != "a" {
		t.Errorf("obj[0].Key = %#v, want String(\"a\")", obj[0].Key)
	}
	if _, err := DecodeString("{a:1}", Strict()); err == nil {
		t.Fatal("expected decode-error for a bare identifier key in strict mode")
	}
}

func TestDecodeComments(t *testing.T) {
	src := "// leading comment\n[1, /* inline */ 2]"
	v := mustDecode(t, src, Allow(Comments))
	arr, ok := v.(Array)
	if !ok || len(arr) != 2 {
		t.Fatalf("got %#v, want a 2-element Array", v)
	}
	if _, err := DecodeString(src, Strict()); err == nil {
		t.Fatal("expected decode-error for comments in strict mode")
	}
}

func TestDecodeTrailingTextIsError(t *testing.T) {
	if _, err := DecodeString("[1] garbage", Strict()); err == nil {
		t.Fatal("expected decode-error for trailing non-whitespace text")
	}
}

func TestDetectUTF32BEWithBOM(t *testing.T) {
	data := []byte{
		0x00, 0x00, 0xFE, 0xFF,
		0x00, 0x00, 0x00, 0x22,
		0x00, 0x00, 0x00, 0x68,
		0x00, 0x00, 0x00, 0x69,
		0x00, 0x00, 0x00, 0x22,
	}
	v, err := DecodeBytesJSON(data)
	if err != nil {
		t.Fatalf("DecodeBytesJSON: %v", err)
	}
	s, ok := v.(String)
	if !ok || string(s) != "hi" {
		t.Fatalf("got %#v, want String(\"hi\")", v)
	}
}
