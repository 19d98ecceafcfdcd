package expreval

import (
	"math"
	"strconv"
)

// appendFloat appends the JavaScript rendering of f: shortest round-trip
// decimal, switching to exponent notation when the decimal exponent is at
// least 21 or below -6. Negative zero renders as "0".
func appendFloat(dst []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, "NaN"...)
	case math.IsInf(f, 1):
		return append(dst, "Infinity"...)
	case math.IsInf(f, -1):
		return append(dst, "-Infinity"...)
	case f == 0:
		return append(dst, '0')
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return appendFloatExp(dst, f)
	}

	return strconv.AppendFloat(dst, f, 'f', -1, 64)
}

// appendFloatExp appends exponent notation in the JavaScript shape:
// "1e+21", "1.5e-7". Go pads the exponent to two digits; JavaScript does
// not.
func appendFloatExp(dst []byte, f float64) []byte {
	s := strconv.FormatFloat(f, 'e', -1, 64)

	e := 0
	for e < len(s) && s[e] != 'e' {
		e++
	}

	dst = append(dst, s[:e+1]...)

	exp := s[e+1:]
	sign := exp[0] // always '+' or '-'
	exp = exp[1:]

	for len(exp) > 1 && exp[0] == '0' {
		exp = exp[1:]
	}

	dst = append(dst, sign)

	return append(dst, exp...)
}

// appendError appends the stable error-text rendering.
func appendError(dst []byte, v Value) []byte {
	switch {
	case v.flag&flagNotFunc != 0:
		dst = append(dst, "TypeError: "...)
		dst = append(dst, v.str...)
		dst = append(dst, " is not a function"...)
	case v.flag&flagSyntax != 0:
		dst = append(dst, "SyntaxError"...)
		if v.flag&flagUnsupported != 0 {
			dst = append(dst, ": Unsupported keyword '"...)
			dst = append(dst, v.str...)
			dst = append(dst, '\'')
		}
	case v.flag&flagUndefined != 0:
		if v.flag&flagChain != 0 {
			dst = append(dst, "TypeError: Cannot read properties of undefined (reading '"...)
			dst = append(dst, v.str...)
			dst = append(dst, "')"...)
		} else {
			dst = append(dst, "ReferenceError: Can't find variable: '"...)
			dst = append(dst, v.str...)
			dst = append(dst, '\'')
		}
	case v.flag&flagOOM != 0:
		dst = append(dst, "MemoryError: Out of memory"...)
	default:
		dst = append(dst, v.str...)
	}

	return dst
}

// appendValue appends the stable text rendering of any value.
func appendValue(dst []byte, v Value) []byte {
	switch v.kind {
	case kindUndefined:
		return append(dst, "undefined"...)
	case kindNull:
		return append(dst, "null"...)
	case kindError:
		return appendError(dst, v)
	case kindFloat:
		return appendFloat(dst, math.Float64frombits(v.num))
	case kindInt:
		return strconv.AppendInt(dst, int64(v.num), 10)
	case kindUint:
		return strconv.AppendUint(dst, v.num, 10)
	case kindString, kindJSON:
		return append(dst, v.str...)
	case kindBool:
		if v.num != 0 {
			return append(dst, "true"...)
		}

		return append(dst, "false"...)
	case kindFunc:
		return append(dst, "[Function]"...)
	case kindObject:
		return append(dst, "[Object]"...)
	default: // kindArray
		for i, item := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}

			dst = appendValue(dst, item)
		}

		return dst
	}
}

// Append appends the text rendering of the value to dst and returns the
// extended buffer. Strings append their bytes; every other kind appends
// the same form that [Value.String] returns.
func (v Value) Append(dst []byte) []byte {
	return appendValue(dst, v)
}

// String renders the value as a string: literals as themselves, numbers in
// shortest round-trip decimal, arrays comma-joined, functions and objects
// as bracketed placeholders, and errors in their stable error-text form.
func (v Value) String() string {
	if v.kind == kindString {
		return string(v.str)
	}

	return string(appendValue(nil, v))
}

// StringLen returns the length in bytes of the value's text rendering
// without building it, except for non-string kinds which render into a
// scratch buffer.
func (v Value) StringLen() int {
	if v.kind == kindString {
		return len(v.str)
	}

	return len(appendValue(nil, v))
}

// Compare compares the value's text rendering to s, returning a negative,
// zero, or positive result in the manner of [strings.Compare].
func (v Value) Compare(s string) int {
	b := v.str
	if v.kind != kindString {
		b = appendValue(nil, v)
	}

	n := min(len(b), len(s))
	for i := 0; i < n; i++ {
		if b[i] != s[i] {
			if b[i] < s[i] {
				return -1
			}

			return 1
		}
	}

	switch {
	case len(b) < len(s):
		return -1
	case len(b) > len(s):
		return 1
	default:
		return 0
	}
}

// Equals reports whether the value's text rendering equals s.
func (v Value) Equals(s string) bool {
	if v.kind == kindString {
		return string(v.str) == s
	}

	return v.Compare(s) == 0
}

// toStr renders a value into arena-owned bytes for concatenation and
// computed member access. String values are returned as-is. A false result
// means the arena copy failed.
func toStr(ctx *evalContext, v Value) ([]byte, bool) {
	if v.kind == kindString {
		return v.str, true
	}

	tmp := appendValue(nil, v)

	mem := ctx.sess.arena.alloc(len(tmp))
	if mem == nil {
		return nil, false
	}

	copy(mem, tmp)

	return mem[:len(tmp)], true
}
