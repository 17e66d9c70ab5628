/*
Package demjson decodes and encodes JSON, and the looser superset of JSON
accepted by ECMAScript object literals.

Value tree

Decoding produces, and encoding accepts, a small tagged value tree:

	Null          the JSON null value
	Undefined     the ECMAScript undefined value (non-strict mode only)
	Bool          a JSON boolean
	Int           an arbitrary-precision integer (math/big.Int)
	Float         an IEEE-754 double, including NaN and ±Infinity
	Decimal       a 34-significant-digit decimal, used when a numeric
	              literal would lose precision as a Float
	String        a sequence of Unicode scalar values
	Array         an ordered sequence of values
	Object        an ordered mapping of key to value

Plain Go values (maps, slices, structs, and primitive kinds) may also be
passed to Encode directly; they are converted to the value tree via
reflection the same way a struct's exported fields, renamed and filtered by
"json" struct tags, become Object members.

Strictness

Strict JSON (RFC 8259) and the library's looser ECMAScript-superset mode
differ by a set of independently named behaviors — hex/octal numeric
literals, single-quoted strings, trailing commas, comments, and so on. See
Strictness, NewStrict, and NewNonStrict.

Unicode transcoding

Decode accepts raw bytes in UTF-8, UTF-16, or UTF-32, auto-detecting the
encoding per RFC 4627 §3 when none is specified. Auto-detection recognizes
UTF-16 and UTF-32 byte-order marks; a UTF-8 byte-order mark is not
recognized and the document is rejected. See DetectEncoding and
DecodeBytes.

Hooks

Encode and Decode callers may install named hook callbacks to intercept
value classification during encoding, or post-process parsed values during
decoding. See Hooks.
*/
package demjson
