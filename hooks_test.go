// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import (
	"errors"
	"testing"
)

func TestHooksEncodeValueSubstitution(t *testing.T) {
	h := NewHooks()
	h.SetEncodeHook("encode_value", func(v interface{}) (interface{}, error) {
		if n, ok := v.(Int); ok && n.V.Int64() == 7 {
			return String("seven"), nil
		}
		return Skip(), nil
	})

	s, err := EncodeValue(NewInt(7), Strict(), Compact(), WithHooks(h))
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if s != `"seven"` {
		t.Fatalf("got %q, want the hook's substitution to take effect", s)
	}

	s2, err := EncodeValue(NewInt(8), Strict(), Compact(), WithHooks(h))
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if s2 != "8" {
		t.Fatalf("got %q, want Skip() to leave the value untouched", s2)
	}
}

func TestHooksEncodeErrorIsWrapped(t *testing.T) {
	h := NewHooks()
	boom := errors.New("boom")
	h.SetEncodeHook("encode_value", func(v interface{}) (interface{}, error) {
		return nil, boom
	})

	_, err := EncodeValue(NewInt(1), Strict(), WithHooks(h))
	if err == nil {
		t.Fatal("expected a wrapped hook error")
	}
	var he *HookError
	if !errors.As(err, &he) {
		t.Fatalf("got %T, want *HookError", err)
	}
	if he.Hook != "encode_value" {
		t.Fatalf("HookError.Hook = %q, want %q", he.Hook, "encode_value")
	}
	if !errors.Is(err, boom) {
		t.Fatal("HookError must unwrap to the original cause")
	}
}

func TestHooksDecodeObjectPostProcess(t *testing.T) {
	h := NewHooks()
	calls := 0
	h.SetDecodeHook("decode_object", func(v interface{}) (interface{}, error) {
		calls++
		return v, nil
	})

	if _, err := DecodeString(`{"a":{"b":1}}`, Strict(), WithHooks(h)); err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	if calls != 2 {
		t.Fatalf("decode_object hook ran %d times, want 2 (outer and inner object)", calls)
	}
}

func TestHooksEncodeDictSubstitution(t *testing.T) {
	h := NewHooks()
	h.SetEncodeHook("encode_dict", func(v interface{}) (interface{}, error) {
		obj, ok := v.(Object)
		if !ok {
			return Skip(), nil
		}
		return append(obj, Pair{Key: String("added"), Val: Bool(true)}), nil
	})

	s, err := EncodeValue(Object{{Key: String("a"), Val: NewInt(1)}}, Strict(), Compact(), WithHooks(h))
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if s != `{"a":1,"added":true}` {
		t.Fatalf("got %q, want encode_dict's substitution reflected in the output", s)
	}
}

func TestHooksEncodeSequenceSubstitution(t *testing.T) {
	h := NewHooks()
	h.SetEncodeHook("encode_sequence", func(v interface{}) (interface{}, error) {
		arr, ok := v.(Array)
		if !ok {
			return Skip(), nil
		}
		return append(arr, NewInt(99)), nil
	})

	s, err := EncodeValue(Array{NewInt(1), NewInt(2)}, Strict(), Compact(), WithHooks(h))
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if s != `[1,2,99]` {
		t.Fatalf("got %q, want encode_sequence's substitution reflected in the output", s)
	}
}

func TestHooksEncodeBytesSubstitution(t *testing.T) {
	h := NewHooks()
	h.SetEncodeHook("encode_bytes", func(v interface{}) (interface{}, error) {
		b, ok := v.([]byte)
		if !ok {
			return Skip(), nil
		}
		return String(string(b)), nil
	})

	s, err := EncodeValue([]byte("hi"), Strict(), Compact(), WithHooks(h))
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if s != `"hi"` {
		t.Fatalf("got %q, want encode_bytes's substitution (string) reflected in the output", s)
	}
}

func TestHooksEncodeBytesUnhookedIsByteArray(t *testing.T) {
	s, err := EncodeValue([]byte{1, 2, 3}, Strict(), Compact())
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if s != `[1,2,3]` {
		t.Fatalf("got %q, want unhooked bytes to render as an array of integers", s)
	}
}

func TestHooksEncodeDefault(t *testing.T) {
	h := NewHooks()
	h.SetEncodeHook("encode_default", func(v interface{}) (interface{}, error) {
		return String("fallback"), nil
	})

	s, err := EncodeValue(make(chan int), Strict(), Compact(), WithHooks(h))
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if s != `"fallback"` {
		t.Fatalf("got %q, want encode_default's substitution for an otherwise-unencodable value", s)
	}
}

func TestHooksEncodeDefaultAbsentFails(t *testing.T) {
	_, err := EncodeValue(make(chan int), Strict())
	if err == nil {
		t.Fatal("expected an EncodeError for a channel value with no encode_default hook installed")
	}
}

type equivalentValue struct{ n int }

func (ev equivalentValue) JSONEquivalent() interface{} { return NewInt(int64(ev.n)) }

func TestJSONEquivalentSubstitution(t *testing.T) {
	s, err := EncodeValue(equivalentValue{n: 42}, Strict(), Compact())
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if s != "42" {
		t.Fatalf("got %q, want JSONEquivalent's substitution to take effect", s)
	}
}

type selfEquivalentValue struct{}

func (selfEquivalentValue) JSONEquivalent() interface{} { return selfEquivalentValue{} }

func TestJSONEquivalentSelfReturnIsError(t *testing.T) {
	_, err := EncodeValue(selfEquivalentValue{}, Strict())
	if err == nil {
		t.Fatal("expected an EncodeError when JSONEquivalent returns the receiver itself")
	}
}

func TestHooksAbsentIsNoOp(t *testing.T) {
	s, err := EncodeValue(NewInt(1), Strict(), Compact())
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if s != "1" {
		t.Fatalf("got %q, want %q", s, "1")
	}
}
