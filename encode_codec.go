// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import "unicode/utf16"

// EscapePolicy decides, for a single non-ASCII scalar value, whether the
// string emitter should force a \uXXXX (or surrogate-pair) escape instead
// of writing the scalar verbatim. Installed via the EscapeUnicode option
// (§6.2); nil means "never force beyond what the output codec itself
// requires" (§4.4's "never escape beyond the forced cases" default).
type EscapePolicy func(r rune) bool

// AlwaysEscapeUnicode is the EscapePolicy for escape_unicode=true: every
// scalar outside printable ASCII is escaped.
func AlwaysEscapeUnicode(r rune) bool { return r > 0x7E }

// codecForcesEscape implements the per-output-codec forcing rules of §4.4:
// an ASCII-family codec can't carry anything above U+007F, and ISO-8859-1
// can't carry anything above U+00FF, so the escape policy is forced
// regardless of what the caller's policy says for scalars outside that
// codec's range. UTF-x codecs force nothing.
func codecForcesEscape(enc Encoding, r rune) bool {
	switch enc {
	case EncodingASCII:
		return r >= 0x80
	case EncodingISO88591:
		return r >= 0x100
	default:
		return false
	}
}

// jsonSyntaxChars are the characters any output codec must be able to carry
// verbatim for the codec to be usable at all (§6.2: "the codec's ability to
// carry at least the JSON syntax characters is verified").
const jsonSyntaxChars = `{}[]",:truefalsenull-+.0123456789eE \t\n\r`

// verifyCodecCarriesSyntax reports an error if enc cannot represent every
// character in jsonSyntaxChars, i.e. the output encoding is unusable for
// JSON at all.
func verifyCodecCarriesSyntax(enc Encoding) error {
	for _, r := range jsonSyntaxChars {
		if codecForcesEscape(enc, r) {
			return &EncodingError{Codec: string(enc), Msg: "output encoding insufficient to carry JSON syntax"}
		}
	}
	return nil
}

// encodeToCodec transcodes a fully-rendered JSON/ECMAScript text into raw
// bytes under the named output encoding, the encode-side counterpart to
// DecodeBytes. UTF-32 reuses the internally implemented codec of utf32.go
// (§4.2 "usable when the host environment lacks one"); the rest are thin
// wrappers over stdlib unicode/utf8, unicode/utf16, and single-byte packing
// for ASCII/ISO-8859-1.
func encodeToCodec(s string, enc Encoding, policy ErrorPolicy) ([]byte, error) {
	runes := []rune(s)
	switch enc {
	case "", EncodingUTF8:
		return []byte(s), nil
	case EncodingUTF16LE, EncodingUTF16BE:
		units := utf16.Encode(runes)
		out := make([]byte, 0, len(units)*2)
		for _, u := range units {
			if enc == EncodingUTF16LE {
				out = append(out, byte(u), byte(u>>8))
			} else {
				out = append(out, byte(u>>8), byte(u))
			}
		}
		return out, nil
	case EncodingUTF32LE, EncodingUTF32BE:
		return encodeUTF32(runes, enc == EncodingUTF32BE, false, policy)
	case EncodingASCII:
		out := make([]byte, 0, len(runes))
		for _, r := range runes {
			if r >= 0x80 {
				return nil, &EncodingError{Codec: string(enc), Msg: "code point outside ASCII range"}
			}
			out = append(out, byte(r))
		}
		return out, nil
	case EncodingISO88591:
		out := make([]byte, 0, len(runes))
		for _, r := range runes {
			if r >= 0x100 {
				return nil, &EncodingError{Codec: string(enc), Msg: "code point outside ISO-8859-1 range"}
			}
			out = append(out, byte(r))
		}
		return out, nil
	}
	return nil, &EncodingError{Codec: string(enc), Msg: "unsupported output encoding"}
}
