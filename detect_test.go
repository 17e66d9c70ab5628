// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectEncodingUTF8Default(t *testing.T) {
	enc, rest, err := DetectEncoding([]byte(`{"a":1}`))
	require.NoError(t, err)
	require.Equal(t, EncodingUTF8, enc)
	require.Equal(t, []byte(`{"a":1}`), rest)
}

func TestDetectEncodingUTF32BOM(t *testing.T) {
	data := append([]byte{0x00, 0x00, 0xFE, 0xFF}, []byte(`"hi"`)...)
	enc, rest, err := DetectEncoding(data)
	require.NoError(t, err)
	require.Equal(t, EncodingUTF32BE, enc)
	require.NotContains(t, string(rest), "\x00\x00\xfe\xff")
}

func TestDetectEncodingUTF32HeuristicNoBOM(t *testing.T) {
	// RFC 4627 §3: a conforming document's first ASCII char, zero-padded
	// to 4 bytes big-endian, with no BOM present.
	data := []byte{0x00, 0x00, 0x00, '{', 0x00, 0x00, 0x00, '}'}
	enc, _, err := DetectEncoding(data)
	require.NoError(t, err)
	require.Equal(t, EncodingUTF32BE, enc)
}

func TestDetectEncodingGibberishRejected(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = 0x01
	}
	_, _, err := DecodeBytes(data, EncodingUTF8, ErrorStrict)
	require.Error(t, err)
}

func TestDecodeBytesUTF8InvalidStrict(t *testing.T) {
	_, _, err := DecodeBytes([]byte{'"', 0xFF, '"'}, EncodingUTF8, ErrorStrict)
	require.Error(t, err)
}

func TestDecodeBytesUTF8InvalidReplace(t *testing.T) {
	runes, _, err := DecodeBytes([]byte{'a', 0xFF, 'b'}, EncodingUTF8, ErrorReplace)
	require.NoError(t, err)
	require.Equal(t, []rune{'a', replacementChar, 'b'}, runes)
}

func TestDecodeBytesUTF16LoneSurrogateStrict(t *testing.T) {
	// 0xD800 is a lone high surrogate with no following low surrogate.
	data := []byte{0xD8, 0x00, 0x00, 'x'}
	_, _, err := DecodeBytes(data, EncodingUTF16BE, ErrorStrict)
	require.Error(t, err)
}

func TestDecodeBytesUTF16LoneSurrogateReplace(t *testing.T) {
	data := []byte{0xD8, 0x00, 0x00, 'x'}
	runes, _, err := DecodeBytes(data, EncodingUTF16BE, ErrorReplace)
	require.NoError(t, err)
	require.Equal(t, []rune{replacementChar, 'x'}, runes)
}

func TestDecodeBytesUTF16SurrogatePairStillPairs(t *testing.T) {
	// U+1D11E (musical symbol G clef) as a UTF-16BE surrogate pair.
	data := []byte{0xD8, 0x34, 0xDD, 0x1E}
	runes, _, err := DecodeBytes(data, EncodingUTF16BE, ErrorStrict)
	require.NoError(t, err)
	require.Equal(t, []rune{0x1D11E}, runes)
}

func TestUTF32RoundTrip(t *testing.T) {
	runes := []rune("hello, 世界")
	for _, be := range []bool{true, false} {
		encoded, err := encodeUTF32(runes, be, true, ErrorStrict)
		require.NoError(t, err)
		decoded, err := decodeUTF32(stripBOM(encoded, be), be, ErrorStrict)
		require.NoError(t, err)
		require.Equal(t, runes, decoded)
	}
}

func stripBOM(b []byte, bigEndian bool) []byte {
	if bigEndian {
		return b[len(bomUTF32BE):]
	}
	return b[len(bomUTF32LE):]
}

func TestCodecLookupAliases(t *testing.T) {
	for _, name := range []string{"utf8", "UTF-8", "utf-8"} {
		enc, ok := LookupCodec(name)
		require.True(t, ok, name)
		require.Equal(t, EncodingUTF8, enc)
	}
	_, ok := LookupCodec("not-a-real-codec")
	require.False(t, ok)
}
