// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import "fmt"

// skipHook is the sentinel a hook callback returns to mean "do the default
// thing instead" (§4.5). Returning it from an EncodeHook leaves the value
// unclassified-by-hook, and it falls through to the normal classification
// dispatch. The encoder restarts classification exactly once after a hook
// reclassifies a value, matching the "one-restart" rule in §4.5.
var skipHook = &struct{ name string }{"skip"}

// Skip, when returned by a hook, tells the dispatcher to fall back to the
// library's default handling instead of using the hook's result.
func Skip() interface{} { return skipHook }

func isSkip(v interface{}) bool {
	return v == skipHook
}

// EncodeHook classifies or transforms an arbitrary value before the
// encoder's default classification runs. Returning Skip() declines to
// handle this value. Hooks are named the same way the teacher's Doc
// interface methods (Encode/MustEncode) are dispatched by type: here,
// dispatch is by hook name rather than by satisfied interface, generalizing
// "call whichever capability is present" to "call whichever named hook is
// installed."
type EncodeHook func(v interface{}) (interface{}, error)

// DecodeHook is invoked after a composite value is parsed (decode_array for
// an Array, decode_object for an Object), letting a caller post-process the
// decoded value tree before it is attached to its parent. Scalar values are
// not passed through decode hooks.
type DecodeHook func(v interface{}) (interface{}, error)

// Hooks is a named registry of encode/decode hook callbacks, the "has_hook /
// call_hook" dispatch table (§4.5) generalized into a first-class Go type
// instead of per-name instance attributes.
type Hooks struct {
	encode map[string]EncodeHook
	decode map[string]DecodeHook
}

// NewHooks returns an empty hook registry.
func NewHooks() *Hooks {
	return &Hooks{
		encode: make(map[string]EncodeHook),
		decode: make(map[string]DecodeHook),
	}
}

// SetEncodeHook installs or replaces the named encode hook.
func (h *Hooks) SetEncodeHook(name string, fn EncodeHook) {
	h.encode[name] = fn
}

// SetDecodeHook installs or replaces the named decode hook.
func (h *Hooks) SetDecodeHook(name string, fn DecodeHook) {
	h.decode[name] = fn
}

// HasHook reports whether an encode hook with the given name is installed.
func (h *Hooks) HasHook(name string) bool {
	if h == nil {
		return false
	}
	_, ok := h.encode[name]
	return ok
}

// CallEncodeHook runs the named encode hook, wrapping any returned error in
// a HookError that records the hook name and triggering value. A missing
// hook is a no-op that returns (v, false, nil): the second result tells the
// caller whether any hook actually ran (mirrors the teacher's pattern of a
// boolean "found" return alongside a value, as in Object.Get here in
// value.go).
func (h *Hooks) CallEncodeHook(name string, v interface{}) (interface{}, bool, error) {
	if h == nil {
		return v, false, nil
	}
	fn, ok := h.encode[name]
	if !ok {
		return v, false, nil
	}
	out, err := fn(v)
	if err != nil {
		return nil, true, &HookError{Hook: name, Value: v, Err: err}
	}
	if isSkip(out) {
		return v, false, nil
	}
	return out, true, nil
}

// CallDecodeHook runs the named decode hook, same contract as
// CallEncodeHook but for post-parse values.
func (h *Hooks) CallDecodeHook(name string, v interface{}) (interface{}, error) {
	if h == nil {
		return v, nil
	}
	fn, ok := h.decode[name]
	if !ok {
		return v, nil
	}
	out, err := fn(v)
	if err != nil {
		return nil, &HookError{Hook: name, Value: v, Err: fmt.Errorf("%w", err)}
	}
	if isSkip(out) {
		return v, nil
	}
	return out, nil
}
