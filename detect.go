// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

// Encoding names a concrete transfer encoding that DecodeBytes knows how to
// transcode to UTF-8 runes.
type Encoding string

const (
	EncodingUTF8     Encoding = "utf-8"
	EncodingUTF16LE  Encoding = "utf-16le"
	EncodingUTF16BE  Encoding = "utf-16be"
	EncodingUTF32LE  Encoding = "utf-32le"
	EncodingUTF32BE  Encoding = "utf-32be"
	EncodingASCII    Encoding = "ascii"
	EncodingISO88591 Encoding = "iso-8859-1"
)

var (
	bomUTF16LE = [2]byte{0xFF, 0xFE}
	bomUTF16BE = [2]byte{0xFE, 0xFF}
)

// DetectEncoding guesses the Unicode transfer encoding of a raw byte string
// per RFC 4627 §3: look for a byte-order mark first, and failing that,
// examine the pattern of zero bytes among the first four (and last) bytes,
// since a conforming JSON document's first and last bytes are always ASCII.
// Grounded directly on the Python source's auto_detect_encoding.
func DetectEncoding(b []byte) (Encoding, []byte, error) {
	if len(b) == 0 {
		return EncodingUTF8, b, nil
	}

	if len(b) >= 4 {
		if [4]byte(b[:4]) == bomUTF32LE {
			return EncodingUTF32LE, b[4:], nil
		}
		if [4]byte(b[:4]) == bomUTF32BE {
			return EncodingUTF32BE, b[4:], nil
		}
	}
	if len(b) >= 2 {
		if [2]byte(b[:2]) == bomUTF16LE {
			return EncodingUTF16LE, b[2:], nil
		}
		if [2]byte(b[:2]) == bomUTF16BE {
			return EncodingUTF16BE, b[2:], nil
		}
	}

	var a, c, d, z byte
	hasA, hasC, hasD := len(b) >= 1, len(b) >= 3, len(b) >= 4
	if hasA {
		a = b[0]
	}
	bb := byte(0)
	hasB := len(b) >= 2
	if hasB {
		bb = b[1]
	}
	if hasC {
		c = b[2]
	}
	if hasD {
		d = b[3]
	}
	z = b[len(b)-1]

	switch {
	case hasD && a == 0 && bb == 0 && c == 0 && d != 0:
		return EncodingUTF32BE, b, nil
	case hasD && a != 0 && bb == 0 && c == 0 && d == 0 && z == 0:
		return EncodingUTF32LE, b, nil
	case hasB && a == 0 && bb != 0:
		return EncodingUTF16BE, b, nil
	case hasB && a != 0 && bb == 0 && z == 0:
		return EncodingUTF16LE, b, nil
	case a >= '\t' && a <= 127:
		return EncodingUTF8, b, nil
	}
	return "", nil, &EncodingError{Msg: "cannot determine the Unicode encoding for this document"}
}

// DecodeBytes transcodes a raw JSON byte string, with or without a BOM, into
// a slice of Unicode scalar values ready for the lexer. If enc is "" it is
// auto-detected first. gibberishCheck runs a cheap sanity pass afterward: if
// a very high fraction of decoded runes are control characters outside
// normal whitespace, auto-detection likely picked the wrong encoding (§4.2
// "gibberish" postcheck), and an EncodingError is returned instead of
// silently parsing nonsense.
func DecodeBytes(b []byte, enc Encoding, policy ErrorPolicy) ([]rune, Encoding, error) {
	rest := b
	if enc == "" {
		var err error
		enc, rest, err = DetectEncoding(b)
		if err != nil {
			return nil, "", err
		}
	}

	var runes []rune
	switch enc {
	case EncodingUTF8:
		var err error
		runes, err = decodeUTF8(rest, policy)
		if err != nil {
			return nil, enc, err
		}
	case EncodingUTF16LE, EncodingUTF16BE:
		if len(rest)%2 != 0 {
			return nil, enc, &EncodingError{Codec: string(enc), Msg: "data length not a multiple of 2 bytes"}
		}
		units := make([]uint16, len(rest)/2)
		for i := range units {
			if enc == EncodingUTF16LE {
				units[i] = uint16(rest[2*i]) | uint16(rest[2*i+1])<<8
			} else {
				units[i] = uint16(rest[2*i])<<8 | uint16(rest[2*i+1])
			}
		}
		var err error
		runes, err = decodeUTF16(units, policy)
		if err != nil {
			return nil, enc, err
		}
	case EncodingUTF32LE, EncodingUTF32BE:
		var err error
		runes, err = decodeUTF32(rest, enc == EncodingUTF32BE, policy)
		if err != nil {
			return nil, enc, err
		}
	case EncodingASCII, EncodingISO88591:
		runes = make([]rune, 0, len(rest))
		for _, c := range rest {
			if enc == EncodingASCII && c >= 0x80 {
				if err := appendByPolicy(&runes, policy, string(enc), uint32(c)); err != nil {
					return nil, enc, err
				}
				continue
			}
			runes = append(runes, rune(c))
		}
	default:
		return nil, enc, &EncodingError{Codec: string(enc), Msg: "unsupported encoding"}
	}

	if err := gibberishCheck(runes); err != nil {
		return nil, enc, err
	}
	return runes, enc, nil
}

// gibberishCheck is a cheap sanity pass: documents are overwhelmingly
// printable/whitespace. A large fraction of control characters means
// auto-detection likely chose the wrong encoding.
func gibberishCheck(runes []rune) error {
	if len(runes) < 8 {
		return nil
	}
	bad := 0
	for _, r := range runes {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			bad++
		}
	}
	if bad*4 > len(runes) {
		return &EncodingError{Msg: "decoded text does not look like JSON; wrong encoding guessed"}
	}
	return nil
}
