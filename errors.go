// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import "fmt"

// DecodeError reports a lexical or syntactic problem found while decoding.
// Offset and Line/Col locate it in the input; Fragment is a short excerpt of
// the offending text, generalizing the teacher's catpath-built path strings
// into a fixed, inspectable location.
type DecodeError struct {
	Msg      string
	Offset   int
	Line     int
	Col      int
	Fragment string
}

func (e *DecodeError) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("demjson: %s at line %d, column %d (near %q)", e.Msg, e.Line, e.Col, e.Fragment)
	}
	return fmt.Sprintf("demjson: %s at line %d, column %d", e.Msg, e.Line, e.Col)
}

// EncodeError reports a value the encoder could not classify or emit, the
// same "%v, cannot encode %T." shape as the teacher's encodeVal error, now a
// typed field (Path, Value) instead of a pre-joined string.
type EncodeError struct {
	Path  string
	Value interface{}
	Msg   string
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("demjson: cannot encode %T: %s", e.Value, e.Msg)
	}
	return fmt.Sprintf("demjson: %s, cannot encode %T: %s", e.Path, e.Value, e.Msg)
}

// HookError wraps an error returned by a user-installed hook callback,
// recording the hook's name and the value that triggered it. A panic inside
// a hook is not recovered and propagates to the caller.
type HookError struct {
	Hook  string
	Value interface{}
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("demjson: hook %q failed on %T: %v", e.Hook, e.Value, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// EncodingError reports a problem transcoding raw input/output bytes: an
// unrecognized or unsupported codec name, or (under the strict errors
// policy) an invalid byte sequence that the chosen codec's errors policy
// refused to paper over.
type EncodingError struct {
	Codec string
	Msg   string
}

func (e *EncodingError) Error() string {
	if e.Codec == "" {
		return fmt.Sprintf("demjson: %s", e.Msg)
	}
	return fmt.Sprintf("demjson: codec %s: %s", e.Codec, e.Msg)
}
