// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import "strings"

// codecInfo names the recognized spellings for one transfer encoding, the
// same "list of accepted aliases, fall through to a canonical CodecInfo"
// shape as the source's utf32.lookup, collapsed into a small Go table
// instead of a chain of string-equality branches.
type codecInfo struct {
	canonical Encoding
	aliases   []string
}

var codecTable = []codecInfo{
	{EncodingUTF8, []string{"utf8", "utf-8"}},
	{EncodingUTF16LE, []string{"utf16le", "utf-16le", "utf-16-le"}},
	{EncodingUTF16BE, []string{"utf16be", "utf-16be", "utf-16-be"}},
	{EncodingUTF32LE, []string{"utf32le", "utf-32le", "utf-32-le", "ucs4le", "ucs-4le", "ucs-4-le"}},
	{EncodingUTF32BE, []string{"utf32be", "utf-32be", "utf-32-be", "ucs4be", "ucs-4be", "ucs-4-be"}},
	{EncodingASCII, []string{"ascii", "us-ascii"}},
	{EncodingISO88591, []string{"iso-8859-1", "iso8859-1", "latin1", "latin-1"}},
}

// LookupCodec resolves a user-supplied encoding name (case-insensitive, one
// of the spellings listed in codecTable) to one of the canonical Encoding
// constants this package implements. Returns false if the name isn't
// recognized.
func LookupCodec(name string) (Encoding, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, ci := range codecTable {
		for _, alias := range ci.aliases {
			if alias == name {
				return ci.canonical, true
			}
		}
	}
	return "", false
}
