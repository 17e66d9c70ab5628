// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

// This file holds convenience entry points generalizing the source's
// decode(txt, strict=False, allow_xxxx=True, prevent_xxxx=True, **kw) and
// encode(obj, strict=False, compactly=True, **kw) keyword-argument surface
// into Go functional options, so callers don't have to build a
// DecodeOptions/EncodeOptions struct by hand for the common case.

// Option configures decoding or encoding behavior. Build one with Allow,
// Prevent, WithHooks, Compact, SortKeys, or WithEncoding and pass any
// number of them to DecodeString/EncodeValue.
type Option func(*callOptions)

type callOptions struct {
	strict   *Strictness
	hooks    *Hooks
	compact  bool
	sortKeys bool
	encoding Encoding
	escape   EscapePolicy
}

func newCallOptions(strictByDefault bool) *callOptions {
	s := NewNonStrict()
	if strictByDefault {
		s = NewStrict()
	}
	return &callOptions{strict: s}
}

// Strict starts from the strict JSON preset instead of the library's
// historical non-strict default.
func Strict() Option {
	return func(o *callOptions) { o.strict = NewStrict() }
}

// Allow turns on named deviation behaviors, the same shape as the source's
// allow_xxxx=True keyword arguments.
func Allow(behaviors ...Behavior) Option {
	return func(o *callOptions) { _ = o.strict.Allow(behaviors...) }
}

// Prevent turns off named deviation behaviors, the prevent_xxxx=True
// keyword arguments.
func Prevent(behaviors ...Behavior) Option {
	return func(o *callOptions) { _ = o.strict.Prevent(behaviors...) }
}

// WithHooks installs a hook registry for this call.
func WithHooks(h *Hooks) Option {
	return func(o *callOptions) { o.hooks = h }
}

// Compact disables pretty-printing on encode.
func Compact() Option {
	return func(o *callOptions) { o.compact = true }
}

// SortKeys enables deterministic object-member ordering on encode.
func SortKeys() Option {
	return func(o *callOptions) { o.sortKeys = true }
}

// WithEncoding pins the transfer encoding for decode instead of
// auto-detecting it, or (on encode) selects the output codec for
// EncodeValueBytes.
func WithEncoding(enc Encoding) Option {
	return func(o *callOptions) { o.encoding = enc }
}

// EscapeUnicode installs an escape policy governing which non-ASCII
// scalars the encoder forces into \uXXXX form (§4.4, §6.2). Pass
// AlwaysEscapeUnicode for escape_unicode=true; omitting this option is
// escape_unicode=false (escape only what the output codec can't carry).
func EscapeUnicode(policy EscapePolicy) Option {
	return func(o *callOptions) { o.escape = policy }
}

// DecodeString is a convenience wrapper around Decode for already-decoded
// Go strings, skipping transfer-encoding detection.
func DecodeString(s string, opts ...Option) (interface{}, error) {
	o := buildDecodeOptions(opts)
	if o.Encoding == "" {
		o.Encoding = EncodingUTF8
	}
	return Decode([]byte(s), o)
}

// DecodeBytesJSON decodes raw bytes, auto-detecting or using a pinned
// transfer encoding (WithEncoding).
func DecodeBytesJSON(data []byte, opts ...Option) (interface{}, error) {
	return Decode(data, buildDecodeOptions(opts))
}

func buildDecodeOptions(opts []Option) *DecodeOptions {
	c := newCallOptions(false)
	for _, opt := range opts {
		opt(c)
	}
	return &DecodeOptions{Strictness: c.strict, Hooks: c.hooks, Encoding: c.encoding}
}

// EncodeValue is a convenience wrapper around Encode taking functional
// options instead of an EncodeOptions struct.
func EncodeValue(v interface{}, opts ...Option) (string, error) {
	return Encode(v, buildEncodeOptions(opts))
}

// EncodeValueBytes is a convenience wrapper around EncodeBytes taking
// functional options instead of an EncodeOptions struct; WithEncoding
// selects the output codec.
func EncodeValueBytes(v interface{}, opts ...Option) ([]byte, error) {
	return EncodeBytes(v, buildEncodeOptions(opts))
}

func buildEncodeOptions(opts []Option) *EncodeOptions {
	c := newCallOptions(false)
	for _, opt := range opts {
		opt(c)
	}
	return &EncodeOptions{
		Strictness:    c.strict,
		Hooks:         c.hooks,
		Compact:       c.compact,
		SortKeys:      c.sortKeys,
		EscapeUnicode: c.escape,
		Encoding:      c.encoding,
	}
}
