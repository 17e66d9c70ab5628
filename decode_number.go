// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import (
	"math"
	"math/big"
	"strconv"

	"github.com/woodsbury/decimal128"
)

// float64SigDigits and float64MaxExp bound when a decimal literal must be
// promoted to Decimal instead of collapsing to a lossy Float: beyond 17
// significant digits, or an exponent magnitude float64 cannot represent,
// a plain float64 parse would silently lose precision (§4.3 promotion
// rules, §8 "30 significant digits" scenario). These mirror the source's
// float_sigdigits/float_maxexp, computed there at runtime and fixed here to
// float64's well-known IEEE-754 bounds.
const (
	float64SigDigits = 17
	float64MaxExp    = 308
)

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOctalDigit(r rune) bool { return r >= '0' && r <= '7' }

// decodeNumber lexes a numeric literal starting at runes[i], returning the
// parsed value and the index just past it. Grounded directly on the
// source's decode_number: sign handling, NaN/Infinity keywords, 0x hex
// literals, octal-looking literals, then the general decimal/float grammar
// with promotion to Int/Decimal/Float.
func (d *decoder) decodeNumber(i int) (interface{}, int, error) {
	runes := d.runes
	imax := len(runes)
	start := i

	if !d.strict.Allows(AllNumericSigns) {
		if runes[i] == '+' || (runes[i] == '-' && i+1 < imax && (runes[i+1] == '+' || runes[i+1] == '-')) {
			return nil, i, d.errf(i, "numbers in strict JSON may only have a single \"-\" as a sign prefix")
		}
	}

	sign := 1
	j := i
	for j < imax && (runes[j] == '+' || runes[j] == '-') {
		if runes[j] == '-' {
			sign = -sign
		}
		j++
	}

	if hasPrefix(runes, j, "NaN") {
		if d.strict.Allows(NonNumbers) {
			return Float(math.NaN()), j + 3, nil
		}
		return nil, i, d.errf(i, "NaN literals are not allowed in strict JSON")
	}
	if hasPrefix(runes, j, "Infinity") {
		if d.strict.Allows(NonNumbers) {
			if sign < 0 {
				return Float(math.Inf(-1)), j + 8, nil
			}
			return Float(math.Inf(1)), j + 8, nil
		}
		return nil, i, d.errf(i, "Infinity literals are not allowed in strict JSON")
	}
	if j+1 < imax && runes[j] == '0' && (runes[j+1] == 'x' || runes[j+1] == 'X') {
		if !d.strict.Allows(HexNumbers) {
			return nil, i, d.errf(start, "hexadecimal literals are not allowed in strict JSON")
		}
		k := j + 2
		for k < imax && isHexDigit(runes[k]) {
			k++
		}
		n := new(big.Int)
		n.SetString(string(runes[j+2:k]), 16)
		if sign < 0 {
			n.Neg(n)
		}
		return Int{V: n}, k, nil
	}

	k := j
	couldBeOctal := k+1 < imax && runes[k] == '0'
	decpt, ept := -1, -1
	sigdigits := 0
	for k < imax && (isDigit(runes[k]) || runes[k] == '.' || runes[k] == '+' || runes[k] == '-' || runes[k] == 'e' || runes[k] == 'E') {
		c := runes[k]
		if !isOctalDigit(c) {
			couldBeOctal = false
		}
		switch {
		case c == '.':
			if decpt != -1 || ept != -1 {
				goto doneScan
			}
			decpt = k - j
		case c == 'e' || c == 'E':
			if ept != -1 {
				goto doneScan
			}
			ept = k - j
		case c == '+' || c == '-':
			if ept == -1 {
				goto doneScan
			}
		default:
			if ept == -1 {
				sigdigits++
			}
		}
		k++
	}
doneScan:
	number := string(runes[j:k])

	if couldBeOctal && d.strict.Allows(OctalNumbers) {
		n := new(big.Int)
		n.SetString(number, 8)
		if sign < 0 {
			n.Neg(n)
		}
		return Int{V: n}, k, nil
	}

	if len(number) > 0 && number[0] == '.' && !d.strict.Allows(InitialDecimalPoint) {
		return nil, i, d.errf(start, "numbers in strict JSON must have at least one digit before the decimal point")
	}
	if len(number) > 1 && number[0] == '0' && isDigit(rune(number[1])) {
		if d.strict.Allows(OctalNumbers) {
			return nil, i, d.errf(start, "initial zero digit is only allowed for octal integers")
		}
		return nil, i, d.errf(start, "initial zero digit must not be followed by other digits")
	}
	if decpt != -1 {
		if decpt+1 >= len(number) || !isDigit(rune(number[decpt+1])) {
			return nil, i, d.errf(start, "decimal point must be followed by at least one digit")
		}
	}

	exponent := 0
	if ept != -1 {
		if ept+1 >= len(number) {
			return nil, i, d.errf(start, "exponent in number is truncated")
		}
		exp, err := strconv.Atoi(number[ept+1:])
		if err != nil {
			return nil, i, d.errf(start, "not a valid exponent in number")
		}
		exponent = exp
	}

	if decpt == -1 && exponent >= 0 {
		mantissa := number
		if ept != -1 {
			mantissa = number[:ept]
		}
		n := new(big.Int)
		if _, ok := n.SetString(mantissa, 10); !ok {
			return nil, i, d.errf(start, "not a valid JSON numeric literal")
		}
		if sign < 0 {
			n.Neg(n)
		}
		if exponent > 0 {
			n.Mul(n, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exponent)), nil))
		}
		if n.Sign() == 0 && sign < 0 {
			return Float(math.Copysign(0, -1)), k, nil
		}
		return Int{V: n}, k, nil
	}

	if exponent > float64MaxExp || -exponent > float64MaxExp || sigdigits > float64SigDigits {
		dec, err := decimal128.Parse(number)
		if err != nil {
			if sign < 0 {
				return Float(math.Inf(-1)), k, nil
			}
			return Float(math.Inf(1)), k, nil
		}
		if sign < 0 {
			dec = dec.Neg()
		}
		return Decimal{V: dec}, k, nil
	}

	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return nil, i, d.errf(start, "not a valid JSON numeric literal")
	}
	return Float(f * float64(sign)), k, nil
}

func hasPrefix(runes []rune, at int, s string) bool {
	if at+len(s) > len(runes) {
		return false
	}
	for i, r := range s {
		if runes[at+i] != r {
			return false
		}
	}
	return true
}
