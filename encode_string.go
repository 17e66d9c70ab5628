// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import (
	"strings"
	"unicode"
)

// revEscapes is the safe reverse-escape table used when emitting a string,
// transcribed from the source's _rev_escapes: only escapes that are always
// legal to use on output, regardless of strictness mode.
var revEscapes = map[rune]string{
	'\n': `\n`, '\t': `\t`, '\b': `\b`, '\f': `\f`, '\r': `\r`,
	'"': `\"`, '\\': `\\`,
}

func isPlainASCII(r rune) bool {
	return r >= 0x20 && r < 0x7F && r != '"' && r != '\\'
}

// encodeString renders a String value as a quoted JSON string literal,
// using the chunked-builder idiom the component-design notes (§4.4, §9)
// require to avoid quadratic string concatenation: a strings.Builder
// accumulates runs of plain ASCII in one WriteString call instead of one
// rune at a time. force reports, for any scalar outside the always-escaped
// cases, whether the escape policy (user predicate or output-codec
// limitation) demands a \uXXXX escape instead of the scalar verbatim
// (§4.4 escape policy). Numeric escapes use uppercase hex digits.
//
// A Go string can carry a surrogate code point only as its three-byte
// generalized UTF-8 form (0xED followed by 0xA0-0xBF), which []rune
// conversion would silently turn into U+FFFD. The raw bytes are therefore
// scanned for that form first, and emission fails per §3's invariant if
// one is present.
func encodeString(s String, force EscapePolicy) (string, error) {
	for k := 0; k+1 < len(s); k++ {
		if s[k] == 0xED && s[k+1] >= 0xA0 && s[k+1] <= 0xBF {
			return "", &EncodeError{Value: s, Msg: "string contains an unpaired surrogate and cannot be encoded"}
		}
	}

	var b strings.Builder
	b.WriteByte('"')

	runes := []rune(string(s))
	i, imax := 0, len(runes)
	for i < imax {
		c := runes[i]
		if isPlainASCII(c) {
			j := i
			i++
			for i < imax && isPlainASCII(runes[i]) {
				i++
			}
			b.WriteString(string(runes[j:i]))
			continue
		}
		if esc, ok := revEscapes[c]; ok {
			b.WriteString(esc)
			i++
			continue
		}
		if c <= 0x1F {
			b.WriteString(`\u` + strings.ToUpper(padHex(int64(c), 4)))
			i++
			continue
		}
		if c >= 0xD800 && c <= 0xDFFF {
			return "", &EncodeError{Value: s, Msg: "string contains an unpaired surrogate and cannot be encoded"}
		}

		doEsc := unicode.Is(unicode.Cc, c) || unicode.Is(unicode.Cf, c) || c == 0x2028 || c == 0x2029
		if !doEsc && force != nil {
			doEsc = force(c)
		}
		if c > 0xFFFF {
			if doEsc {
				hi, lo := splitSurrogates(c)
				b.WriteString(`\u` + strings.ToUpper(padHex(int64(hi), 4)))
				b.WriteString(`\u` + strings.ToUpper(padHex(int64(lo), 4)))
			} else {
				b.WriteRune(c)
			}
			i++
			continue
		}
		if doEsc {
			b.WriteString(`\u` + strings.ToUpper(padHex(int64(c), 4)))
		} else {
			b.WriteRune(c)
		}
		i++
	}

	b.WriteByte('"')
	return b.String(), nil
}

// splitSurrogates is the inverse of combineSurrogates, used when a non-BMP
// scalar must be escaped as a \uXXXX\uXXXX surrogate pair.
func splitSurrogates(r rune) (hi, lo rune) {
	v := r - 0x10000
	hi = 0xD800 + (v >> 10)
	lo = 0xDC00 + (v & 0x3FF)
	return
}
