// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import (
	"math"
	"strconv"
)

// encodeNumber renders an Int/Float/Decimal value as a JSON numeric
// literal, grounded on the source's encode_number: int/long/Decimal emit
// via their native string form, and a Float's NaN/+Infinity/-Infinity
// sentinels emit their symbolic ECMAScript spelling instead of a numeric
// literal.
func encodeNumber(v interface{}, strict *Strictness) (string, error) {
	switch n := v.(type) {
	case Int:
		return n.V.String(), nil
	case Decimal:
		return n.V.String(), nil
	case Float:
		f := float64(n)
		switch {
		case math.IsNaN(f):
			if !strict.Allows(NonNumbers) {
				return "", &EncodeError{Value: v, Msg: "NaN is not allowed in strict JSON"}
			}
			return "NaN", nil
		case math.IsInf(f, 1):
			if !strict.Allows(NonNumbers) {
				return "", &EncodeError{Value: v, Msg: "Infinity is not allowed in strict JSON"}
			}
			return "Infinity", nil
		case math.IsInf(f, -1):
			if !strict.Allows(NonNumbers) {
				return "", &EncodeError{Value: v, Msg: "-Infinity is not allowed in strict JSON"}
			}
			return "-Infinity", nil
		case f == 0 && math.Signbit(f):
			return "-0", nil
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	return "", &EncodeError{Value: v, Msg: "not a recognized number type"}
}
