package expreval

import "math"

// Operator kernel. Same-kind operands take a fast path; mixed kinds follow
// the coercion table. Every entry point assumes error operands were already
// propagated by the caller.

func opCoalesce(a, b Value) Value {
	switch a.kind {
	case kindUndefined, kindNull:
		return b
	default:
		return a
	}
}

func opOr(a, b Value) Value {
	return NewBool(toBool(a) || toBool(b))
}

func opAnd(a, b Value) Value {
	return NewBool(toBool(a) && toBool(b))
}

// Bitwise operators yield a number: integer kinds stay integral, anything
// mixed converts through int64 and packs the result as a float.

func opBitAnd(a, b Value) Value {
	if a.kind == b.kind {
		switch a.kind {
		case kindInt:
			return NewInt64(int64(a.num) & int64(b.num))
		case kindUint:
			return NewUint64(a.num & b.num)
		}
	}

	return NewFloat64(float64(toI64(a) & toI64(b)))
}

func opBitXor(a, b Value) Value {
	if a.kind == b.kind {
		switch a.kind {
		case kindInt:
			return NewInt64(int64(a.num) ^ int64(b.num))
		case kindUint:
			return NewUint64(a.num ^ b.num)
		}
	}

	return NewFloat64(float64(toI64(a) ^ toI64(b)))
}

func opBitOr(a, b Value) Value {
	if a.kind == b.kind {
		switch a.kind {
		case kindInt:
			return NewInt64(int64(a.num) | int64(b.num))
		case kindUint:
			return NewUint64(a.num | b.num)
		}
	}

	return NewFloat64(float64(toI64(a) | toI64(b)))
}

func stringLess(a, b []byte) bool {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] < b[i] {
			return true
		}

		if a[i] > b[i] {
			return false
		}
	}

	return len(a) < len(b)
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}

	return c
}

func stringLessFold(a, b []byte) bool {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ach, bch := lowerByte(a[i]), lowerByte(b[i])
		if ach < bch {
			return true
		}

		if ach > bch {
			return false
		}
	}

	return len(a) < len(b)
}

func opLess(ctx *evalContext, a, b Value) Value {
	if a.kind == b.kind {
		switch a.kind {
		case kindFloat:
			return NewBool(math.Float64frombits(a.num) < math.Float64frombits(b.num))
		case kindInt:
			return NewBool(int64(a.num) < int64(b.num))
		case kindUint:
			return NewBool(a.num < b.num)
		case kindString:
			if ctx != nil && ctx.env != nil && ctx.env.NoCase {
				return NewBool(stringLessFold(a.str, b.str))
			}

			return NewBool(stringLess(a.str, b.str))
		}
	}

	return NewBool(toF64(a) < toF64(b))
}

func opLessEq(ctx *evalContext, a, b Value) Value {
	t := opLess(ctx, a, b)
	if t.num != 0 {
		return t
	}

	t = opLess(ctx, b, a)

	return NewBool(t.num == 0)
}

func opGreater(ctx *evalContext, a, b Value) Value {
	return opLess(ctx, b, a)
}

func opGreaterEq(ctx *evalContext, a, b Value) Value {
	t := opGreater(ctx, a, b)
	if t.num != 0 {
		return t
	}

	t = opGreater(ctx, b, a)

	return NewBool(t.num == 0)
}

// opEq compares same-kind values as "neither is less"; cross-kind operands
// compare as floats.
func opEq(ctx *evalContext, a, b Value) Value {
	if a.kind != b.kind {
		return NewBool(toF64(a) == toF64(b))
	}

	t := opLess(ctx, a, b)
	if t.num != 0 {
		return NewBool(false)
	}

	t = opLess(ctx, b, a)

	return NewBool(t.num == 0)
}

func opNeq(ctx *evalContext, a, b Value) Value {
	t := opEq(ctx, a, b)
	return NewBool(t.num == 0)
}

func opStrictEq(ctx *evalContext, a, b Value) Value {
	if a.kind == b.kind {
		return opEq(ctx, a, b)
	}

	return NewBool(false)
}

func opStrictNeq(ctx *evalContext, a, b Value) Value {
	t := opStrictEq(ctx, a, b)
	return NewBool(t.num == 0)
}

func opMul(a, b Value) Value {
	if a.kind == b.kind {
		switch a.kind {
		case kindFloat:
			return NewFloat64(math.Float64frombits(a.num) * math.Float64frombits(b.num))
		case kindInt:
			return NewInt64(int64(a.num) * int64(b.num))
		case kindUint:
			return NewUint64(a.num * b.num)
		}
	}

	return NewFloat64(toF64(a) * toF64(b))
}

// opDiv divides. Integer division by zero yields NaN (float kind) rather
// than trapping.
func opDiv(a, b Value) Value {
	if a.kind == b.kind {
		switch a.kind {
		case kindFloat:
			return NewFloat64(math.Float64frombits(a.num) / math.Float64frombits(b.num))
		case kindInt:
			if int64(b.num) == 0 {
				return NewFloat64(math.NaN())
			}

			return NewInt64(int64(a.num) / int64(b.num))
		case kindUint:
			if b.num == 0 {
				return NewFloat64(math.NaN())
			}

			return NewUint64(a.num / b.num)
		}
	}

	return NewFloat64(toF64(a) / toF64(b))
}

func opMod(a, b Value) Value {
	if a.kind == b.kind {
		switch a.kind {
		case kindInt:
			if int64(b.num) == 0 {
				return NewFloat64(math.NaN())
			}

			return NewInt64(int64(a.num) % int64(b.num))
		case kindUint:
			if b.num == 0 {
				return NewFloat64(math.NaN())
			}

			return NewUint64(a.num % b.num)
		}
	}

	return NewFloat64(math.Mod(toF64(a), toF64(b)))
}

// stringConcat joins two byte ranges into a new arena buffer.
func stringConcat(ctx *evalContext, a, b []byte) Value {
	mem := ctx.sess.arena.alloc(len(a) + len(b))
	if mem == nil {
		return errOOM()
	}

	n := copy(mem, a)
	copy(mem[n:], b)

	return NewStringBytes(mem[:len(a)+len(b)])
}

// opAdd adds numbers, concatenates strings, and otherwise stringifies both
// sides and concatenates.
func opAdd(ctx *evalContext, a, b Value) Value {
	if a.kind == b.kind {
		switch a.kind {
		case kindFloat:
			return NewFloat64(math.Float64frombits(a.num) + math.Float64frombits(b.num))
		case kindInt:
			return NewInt64(int64(a.num) + int64(b.num))
		case kindUint:
			return NewUint64(a.num + b.num)
		case kindString:
			return stringConcat(ctx, a.str, b.str)
		case kindBool, kindUndefined, kindNull:
			return NewFloat64(toF64(a) + toF64(b))
		}
	} else if isNumeric(a) && isNumeric(b) {
		return NewFloat64(toF64(a) + toF64(b))
	}

	astr, ok := toStr(ctx, a)
	if !ok {
		return errOOM()
	}

	bstr, ok := toStr(ctx, b)
	if !ok {
		return errOOM()
	}

	return stringConcat(ctx, astr, bstr)
}

func opSub(a, b Value) Value {
	if a.kind == b.kind {
		switch a.kind {
		case kindFloat:
			return NewFloat64(math.Float64frombits(a.num) - math.Float64frombits(b.num))
		case kindInt:
			return NewInt64(int64(a.num) - int64(b.num))
		case kindUint:
			return NewUint64(a.num - b.num)
		}
	}

	return NewFloat64(toF64(a) - toF64(b))
}
