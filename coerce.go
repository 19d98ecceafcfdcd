package expreval

import (
	"errors"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// The safe-integer envelope. Floats beyond it cannot represent every
// integer, so conversions floor/ceil first and clamp against the nearest
// representable 64-bit bounds.
const (
	maxSafeInteger = 9007199254740991.0
	maxUint64Float = 18446744073709549568.0
	maxInt64Float  = 9223372036854774784.0
	minInt64Float  = -9223372036854774784.0
)

func boolToF64(t bool) float64 {
	if t {
		return 1
	}

	return 0
}

func boolToI64(t bool) int64 {
	if t {
		return 1
	}

	return 0
}

func boolToU64(t bool) uint64 {
	if t {
		return 1
	}

	return 0
}

func f64ToBool(f float64) bool {
	return f < 0 || f > 0
}

func f64ToI64(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}

	if f < -maxSafeInteger || f > maxSafeInteger {
		if f < 0 {
			f = math.Ceil(f)
			if f < minInt64Float {
				return math.MinInt64
			}
		} else {
			f = math.Floor(f)
			if f > maxInt64Float {
				return math.MaxInt64
			}
		}
	}

	return int64(f)
}

func f64ToU64(f float64) uint64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}

	if f > maxSafeInteger {
		f = math.Floor(f)
		if f > maxUint64Float {
			return math.MaxUint64
		}
	}

	return uint64(f)
}

func i64ToU64(i int64) uint64 {
	if i < 0 {
		return 0
	}

	return uint64(i)
}

func u64ToI64(u uint64) int64 {
	if u > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(u)
}

func isDigitOrDot(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}

// hasUnderscore guards against Go's digit separators, which the grammar
// does not allow.
func hasUnderscore(b []byte) bool {
	for i := 0; i < len(b); i++ {
		if b[i] == '_' {
			return true
		}
	}

	return false
}

// strToF64 parses a string in a numeric context. It accepts decimal syntax
// with an optional leading sign and the exact tokens Infinity, +Infinity,
// and -Infinity. Anything else, including the empty string, is NaN.
func strToF64(b []byte) float64 {
	if len(b) == 0 {
		return math.NaN()
	}

	lead := isDigitOrDot(b[0]) ||
		(len(b) > 1 && (b[0] == '-' || b[0] == '+') && isDigitOrDot(b[1]))
	if lead {
		if hasUnderscore(b) {
			return math.NaN()
		}

		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return math.NaN()
		}

		return f
	}

	switch string(b) {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	return math.NaN()
}

// strToI64 parses a string as a decimal integer, falling back to the float
// path (with truncation) when the integer form does not consume the whole
// input. Out-of-range decimal input saturates.
func strToI64(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}

	i, err := strconv.ParseInt(string(b), 10, 64)
	if err == nil || numErrIsRange(err) {
		return i
	}

	return f64ToI64(strToF64(b))
}

func strToU64(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}

	u, err := strconv.ParseUint(string(b), 10, 64)
	if err == nil || numErrIsRange(err) {
		return u
	}

	return f64ToU64(strToF64(b))
}

// numErrIsRange reports whether a strconv error is a pure range overflow,
// meaning the digits were syntactically valid and the result saturated.
func numErrIsRange(err error) bool {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return errors.Is(ne.Err, strconv.ErrRange)
	}

	return false
}

// toF64 converts any value to a float64 per the coercion table.
func toF64(a Value) float64 {
	switch a.kind {
	case kindFloat:
		return math.Float64frombits(a.num)
	case kindUndefined:
		return math.NaN()
	case kindNull:
		return 0
	case kindBool:
		return boolToF64(a.num != 0)
	case kindInt:
		return float64(int64(a.num))
	case kindUint:
		return float64(a.num)
	case kindString:
		return strToF64(a.str)
	case kindArray:
		switch len(a.arr) {
		case 0:
			return 0
		case 1:
			return toF64(a.arr[0])
		default:
			return math.NaN()
		}
	case kindJSON:
		res := gjson.ParseBytes(a.str)
		if res.IsArray() {
			var (
				first gjson.Result
				count int
			)

			res.ForEach(func(_, v gjson.Result) bool {
				count++
				first = v

				return count < 2
			})

			if count == 0 {
				return 0
			}

			if count == 1 {
				return toF64(makeJSONResult(nil, a.str, first))
			}
		}

		return math.NaN()
	default:
		return math.NaN()
	}
}

func toI64(a Value) int64 {
	switch a.kind {
	case kindInt:
		return int64(a.num)
	case kindNull:
		return 0
	case kindBool:
		return boolToI64(a.num != 0)
	case kindFloat:
		return f64ToI64(math.Float64frombits(a.num))
	case kindUint:
		return u64ToI64(a.num)
	case kindString:
		return strToI64(a.str)
	default:
		return f64ToI64(toF64(a))
	}
}

func toU64(a Value) uint64 {
	switch a.kind {
	case kindUint:
		return a.num
	case kindBool:
		return boolToU64(a.num != 0)
	case kindFloat:
		return f64ToU64(math.Float64frombits(a.num))
	case kindInt:
		return i64ToU64(int64(a.num))
	case kindString:
		return strToU64(a.str)
	default:
		return f64ToU64(toF64(a))
	}
}

func toBool(a Value) bool {
	switch a.kind {
	case kindBool:
		return a.num != 0
	case kindUndefined, kindNull:
		return false
	case kindFloat:
		return f64ToBool(math.Float64frombits(a.num))
	case kindInt:
		return int64(a.num) != 0
	case kindUint:
		return a.num != 0
	case kindString:
		return len(a.str) > 0
	default:
		return true
	}
}

// Literal parsing for atoms. Unlike the string coercions above, literal
// parsing is strict: the whole range must be consumed and digit separators
// are rejected.

func parseUintLit(b []byte, base int) (uint64, bool) {
	if len(b) == 0 || hasUnderscore(b) {
		return 0, false
	}

	u, err := strconv.ParseUint(string(b), base, 64)

	return u, err == nil
}

func parseIntLit(b []byte, base int) (int64, bool) {
	if len(b) == 0 || hasUnderscore(b) {
		return 0, false
	}

	i, err := strconv.ParseInt(string(b), base, 64)

	return i, err == nil
}

func parseFloatLit(b []byte) (float64, bool) {
	if len(b) == 0 || hasUnderscore(b) {
		return 0, false
	}

	// Reject forms ParseFloat accepts but the grammar does not: hex
	// floats and the named constants (those arrive as identifiers).
	for i := 0; i < len(b); i++ {
		c := b[i]
		if isDigitOrDot(c) || c == 'e' || c == 'E' || c == '+' || c == '-' {
			continue
		}

		return 0, false
	}

	f, err := strconv.ParseFloat(string(b), 64)

	return f, err == nil
}
