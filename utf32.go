// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrorPolicy selects how a codec reacts to an invalid or unrepresentable
// code point (§4.2).
type ErrorPolicy int

const (
	ErrorStrict ErrorPolicy = iota
	ErrorIgnore
	ErrorReplace
	ErrorBackslashReplace
	ErrorXMLCharRefReplace
)

var (
	bomUTF32BE = [4]byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = [4]byte{0xFF, 0xFE, 0x00, 0x00}
)

const replacementChar = 0xFFFD

// decodeUTF32 decodes a UTF-32 byte string into a slice of Unicode scalar
// values, the same fixed-width-field reading idiom as the teacher's
// readInt32/readInt64 (binary.Read over a byte window), generalized from an
// 4-byte little-endian integer field to a stream of 4-byte code units whose
// endianness may itself need to be discovered.
//
// bigEndian selects the byte order to use once any leading BOM has been
// stripped by the caller (see DetectEncoding).
func decodeUTF32(b []byte, bigEndian bool, policy ErrorPolicy) ([]rune, error) {
	if len(b)%4 != 0 {
		if policy == ErrorStrict {
			return nil, &EncodingError{Codec: "utf-32", Msg: "data length not a multiple of 4 bytes"}
		}
		b = b[:len(b)-(len(b)%4)]
	}

	order := binary.ByteOrder(binary.BigEndian)
	if !bigEndian {
		order = binary.LittleEndian
	}

	var out []rune
	for i := 0; i < len(b); i += 4 {
		n := order.Uint32(b[i : i+4])
		switch {
		case n > 0x10FFFF || (n >= 0xD800 && n <= 0xDFFF):
			switch policy {
			case ErrorStrict:
				return nil, &EncodingError{Codec: "utf-32", Msg: "invalid code point"}
			case ErrorReplace:
				out = append(out, replacementChar)
			case ErrorBackslashReplace:
				out = append(out, escapeRunes(n)...)
			case ErrorXMLCharRefReplace:
				out = append(out, []rune("&#")...)
				out = append(out, []rune(itoa(int(n)))...)
				out = append(out, ';')
			case ErrorIgnore:
				// nothing
			}
		default:
			out = append(out, rune(n))
		}
	}
	return out, nil
}

// encodeUTF32 is the inverse of decodeUTF32, optionally prefixing a BOM.
func encodeUTF32(runes []rune, bigEndian bool, includeBOM bool, policy ErrorPolicy) ([]byte, error) {
	out := make([]byte, 0, 4*(len(runes)+1))
	if includeBOM {
		if bigEndian {
			out = append(out, bomUTF32BE[:]...)
		} else {
			out = append(out, bomUTF32LE[:]...)
		}
	}

	buf := make([]byte, 4)
	order := binary.ByteOrder(binary.BigEndian)
	if !bigEndian {
		order = binary.LittleEndian
	}

	for i, r := range runes {
		n := uint32(r)
		if n >= 0xD800 && n <= 0xDFFF {
			switch policy {
			case ErrorIgnore:
				continue
			case ErrorReplace:
				n = replacementChar
			default:
				return nil, &EncodingError{Codec: "utf-32", Msg: "surrogate code point at rune " + itoa(i)}
			}
		}
		order.PutUint32(buf, n)
		out = append(out, buf...)
	}
	return out, nil
}

// appendByPolicy resolves one invalid or unrepresentable code point u
// according to policy and appends the result to *out, the same five-way
// switch decodeUTF32 applies, factored out so the UTF-8 and UTF-16 decoders
// below can honor the same errors parameter instead of always substituting
// U+FFFD the way encoding/unicode's stdlib converters do.
func appendByPolicy(out *[]rune, policy ErrorPolicy, codec string, u uint32) error {
	switch policy {
	case ErrorStrict:
		return &EncodingError{Codec: codec, Msg: "invalid code point"}
	case ErrorReplace:
		*out = append(*out, replacementChar)
	case ErrorBackslashReplace:
		*out = append(*out, escapeRunes(u)...)
	case ErrorXMLCharRefReplace:
		*out = append(*out, []rune("&#")...)
		*out = append(*out, []rune(itoa(int(u)))...)
		*out = append(*out, ';')
	case ErrorIgnore:
		// nothing
	}
	return nil
}

// decodeUTF8 decodes a UTF-8 byte string into Unicode scalar values,
// honoring policy on invalid byte sequences the way decodeUTF32 honors it
// on out-of-range or surrogate code units: []rune(string(b)) alone would
// always silently substitute U+FFFD, regardless of what the caller asked
// for.
func decodeUTF8(b []byte, policy ErrorPolicy) ([]rune, error) {
	var out []rune
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			if err := appendByPolicy(&out, policy, "utf-8", uint32(b[i])); err != nil {
				return nil, err
			}
			i++
			continue
		}
		out = append(out, r)
		i += size
	}
	return out, nil
}

// decodeUTF16 pairs surrogate code units into scalar values and applies
// policy to any unpaired high or low surrogate, rather than relying on
// unicode/utf16.Decode, which always substitutes U+FFFD for a lone
// surrogate no matter what errors policy the caller chose.
func decodeUTF16(units []uint16, policy ErrorPolicy) ([]rune, error) {
	var out []rune
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u < 0xD800 || u > 0xDFFF:
			out = append(out, rune(u))
		case u <= 0xDBFF && i+1 < len(units) && units[i+1] >= 0xDC00 && units[i+1] <= 0xDFFF:
			out = append(out, utf16.DecodeRune(rune(u), rune(units[i+1])))
			i++
		default:
			if err := appendByPolicy(&out, policy, "utf-16", uint32(u)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func escapeRunes(n uint32) []rune {
	if n > 0xFFFF {
		return []rune("\\U" + padHex(int64(n), 8))
	}
	return []rune("\\u" + padHex(int64(n), 4))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

const hexDigits = "0123456789abcdef"

func padHex(n int64, width int) string {
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = hexDigits[n&0xF]
		n >>= 4
	}
	return string(buf)
}
