package expreval

import (
	"bytes"
	"math"

	"github.com/tidwall/gjson"
)

// Type is the coarse, host-facing type of a [Value], as reported by
// [Value.Type]. The three numeric variants collapse into [TypeNumber];
// JSON fragments, arrays, and errors report as [TypeObject].
type Type int

// Host-facing value types.
const (
	TypeUndefined Type = iota
	TypeNull
	TypeString
	TypeNumber
	TypeBoolean
	TypeFunction
	TypeObject
)

// kind is the internal discriminant of a Value. It is finer grained than
// Type: numbers keep their float/int/uint variant and errors, arrays, and
// raw JSON are distinct kinds.
type kind uint8

const (
	kindUndefined kind = iota
	kindNull
	kindError
	kindFloat
	kindInt
	kindUint
	kindString
	kindBool
	kindFunc
	kindJSON
	kindObject
	kindArray
)

// flag carries error discriminants and value markers. At most one of the
// error flags is set on an error value.
type flag uint16

const (
	flagChain       flag = 1 << iota // undefined ident was chained
	flagSyntax                       // syntax error
	flagOOM                          // out of memory error
	flagUndefined                    // undefined identifier error
	flagNotFunc                      // call target is not a function
	flagMessage                      // custom message error
	flagGlobal                       // the global receiver marker (kindObject)
	flagUnsupported                  // unsupported keyword (with flagSyntax)
)

// Func is a callable host value. The receiver is the value the function was
// accessed through (for "a.f()", the value of a); a call with no such value,
// such as a call on a top-level identifier, receives undefined. Arguments
// arrive as a single array value; use [Value.Len] and [Value.At].
type Func func(this Value, args Value) Value

// RefFunc resolves an identifier against a receiver. The receiver is the
// global marker (see [Value.IsGlobal]) for top-level identifiers, or the
// current value for chained member access.
type RefFunc func(this, ident Value) Value

// Value is a dynamically-typed evaluation result.
//
// Values are small and trivially copyable. String payloads are byte ranges
// that borrow from the evaluated expression, from host-supplied JSON, or
// from the arena of the [Session] that produced them; they are valid until
// that session's Cleanup.
type Value struct {
	obj  any
	fn   Func
	str  []byte
	arr  []Value
	num  uint64
	tag  uint32
	kind kind
	flag flag
}

// Constructors.

// NewUndefined returns the undefined value.
func NewUndefined() Value { return Value{} }

// NewNull returns the null value, which is distinct from undefined.
func NewNull() Value { return Value{kind: kindNull} }

// NewBool returns a boolean value.
func NewBool(t bool) Value {
	var n uint64
	if t {
		n = 1
	}

	return Value{kind: kindBool, num: n}
}

// NewFloat64 returns a float-variant number value.
func NewFloat64(f float64) Value {
	return Value{kind: kindFloat, num: math.Float64bits(f)}
}

// NewInt64 returns an int-variant number value.
func NewInt64(i int64) Value {
	return Value{kind: kindInt, num: uint64(i)}
}

// NewUint64 returns a uint-variant number value.
func NewUint64(u uint64) Value {
	return Value{kind: kindUint, num: u}
}

// NewString returns a string value that copies s.
func NewString(s string) Value {
	return Value{kind: kindString, str: []byte(s)}
}

// NewStringBytes returns a string value that borrows b. The caller must
// keep b alive and unmodified for as long as the value is used.
func NewStringBytes(b []byte) Value {
	return Value{kind: kindString, str: b}
}

// NewFunction returns a callable value.
func NewFunction(fn Func) Value {
	return Value{kind: kindFunc, fn: fn}
}

// NewObject returns an opaque host object with a host-chosen tag. The tag
// lets a ref callback identify the receiver without type assertions.
func NewObject(ptr any, tag uint32) Value {
	return Value{kind: kindObject, obj: ptr, tag: tag}
}

// NewArray returns an array value holding the given items. The slice is
// borrowed, not copied.
func NewArray(items []Value) Value {
	return Value{kind: kindArray, arr: items}
}

// NewError returns a custom-message error value. The message renders
// verbatim.
func NewError(msg string) Value {
	return Value{kind: kindError, flag: flagMessage, str: []byte(msg)}
}

// NewJSON returns a value backed by raw JSON text. Scalars materialize
// immediately; objects and arrays stay raw and are walked lazily on member
// or index access.
func NewJSON(raw string) Value {
	return NewJSONBytes([]byte(raw))
}

// NewJSONBytes is [NewJSON] for a borrowed byte slice.
func NewJSONBytes(raw []byte) Value {
	return makeJSON(nil, raw)
}

// makeJSON materializes the top level of a raw JSON fragment. Scalars
// convert to their native kinds; containers keep the raw bytes for lazy
// walking. Escaped strings are unescaped into the arena when one is
// supplied, or into fresh GC memory otherwise.
func makeJSON(a *arena, raw []byte) Value {
	res := gjson.ParseBytes(raw)
	return makeJSONResult(a, raw, res)
}

// makeJSONResult converts a parsed gjson result into a Value, borrowing
// from src (the buffer the result was parsed out of) whenever the result
// records its position there.
func makeJSONResult(a *arena, src []byte, res gjson.Result) Value {
	switch res.Type {
	case gjson.Number:
		return NewFloat64(res.Num)
	case gjson.True:
		return NewBool(true)
	case gjson.False:
		return NewBool(false)
	case gjson.String:
		if rawb := resultRaw(src, res); rawb != nil && bytes.IndexByte(rawb, '\\') < 0 {
			if len(rawb) <= 2 {
				return Value{kind: kindString}
			}

			return NewStringBytes(rawb[1 : len(rawb)-1])
		}

		return jsonString(a, res.Str)
	case gjson.Null:
		if res.Exists() {
			return NewNull()
		}

		return NewUndefined()
	default: // gjson.JSON: object or array
		rawb := resultRaw(src, res)
		if rawb == nil {
			v := jsonString(a, res.Raw)
			if v.kind == kindError {
				return v
			}

			rawb = v.str
		}

		return Value{kind: kindJSON, str: rawb}
	}
}

// jsonString copies an unescaped JSON string into the arena (or GC memory
// when no arena is available).
func jsonString(a *arena, s string) Value {
	if a == nil {
		return NewStringBytes([]byte(s))
	}

	mem := a.alloc(len(s))
	if mem == nil {
		return errOOM()
	}

	copy(mem, s)

	return NewStringBytes(mem[:len(s)])
}

// resultRaw locates a gjson result's raw bytes inside the source buffer,
// or nil when the result does not record an index.
func resultRaw(src []byte, res gjson.Result) []byte {
	if res.Index > 0 && res.Index+len(res.Raw) <= len(src) {
		return src[res.Index : res.Index+len(res.Raw)]
	}

	if res.Index == 0 && len(res.Raw) == len(src) {
		return src
	}

	return nil
}

// globalValue is the receiver marker for top-level identifier resolution.
func globalValue() Value {
	return Value{kind: kindObject, flag: flagGlobal}
}

// Error constructors. Identifier bytes are borrowed; they point into the
// expression or into arena memory.

func errSyntax() Value {
	return Value{kind: kindError, flag: flagSyntax}
}

func errOOM() Value {
	return Value{kind: kindError, flag: flagOOM}
}

func errNotFunc(ident []byte) Value {
	return Value{kind: kindError, flag: flagNotFunc, str: ident}
}

func errUndefined(ident []byte, chain bool) Value {
	f := flagUndefined
	if chain {
		f |= flagChain
	}

	return Value{kind: kindError, flag: f, str: ident}
}

func errUnsupportedKeyword(ident []byte) Value {
	return Value{kind: kindError, flag: flagSyntax | flagUnsupported, str: ident}
}

// errMessage copies msg into the arena so the error value survives the
// expression buffer.
func errMessage(a *arena, msg string) Value {
	mem := a.alloc(len(msg))
	if mem == nil {
		return errOOM()
	}

	copy(mem, msg)

	return Value{kind: kindError, flag: flagMessage, str: mem[:len(msg)]}
}

// Inspectors.

// Type reports the coarse host-facing type of the value.
func (v Value) Type() Type {
	switch v.kind {
	case kindUndefined:
		return TypeUndefined
	case kindNull:
		return TypeNull
	case kindBool:
		return TypeBoolean
	case kindFloat, kindInt, kindUint:
		return TypeNumber
	case kindString:
		return TypeString
	case kindFunc:
		return TypeFunction
	default:
		return TypeObject
	}
}

// IsUndefined reports whether the value is undefined.
func (v Value) IsUndefined() bool { return v.kind == kindUndefined }

// IsError reports whether the value is an error.
func (v Value) IsError() bool { return v.kind == kindError }

// IsOOM reports whether the value is an error caused by allocation failure.
func (v Value) IsOOM() bool {
	return v.kind == kindError && v.flag&flagOOM != 0
}

// IsGlobal reports whether the value is the global receiver marker. Ref
// callbacks use this to distinguish top-level lookups from member access.
func (v Value) IsGlobal() bool {
	return v.flag&flagGlobal != 0
}

// Len returns the number of items in an array value, or zero for any other
// kind.
func (v Value) Len() int {
	if v.kind == kindArray {
		return len(v.arr)
	}

	return 0
}

// At returns the item at index for an array value, or undefined when the
// value is not an array or the index is out of range.
func (v Value) At(index int) Value {
	if v.kind == kindArray && index >= 0 && index < len(v.arr) {
		return v.arr[index]
	}

	return NewUndefined()
}

// Object returns the pointer of an opaque host object, or nil.
func (v Value) Object() any {
	if v.kind == kindObject {
		return v.obj
	}

	return nil
}

// ObjectTag returns the host tag of an opaque object, or zero.
func (v Value) ObjectTag() uint32 {
	if v.kind == kindObject {
		return v.tag
	}

	return 0
}

// Coercion accessors.

// Float64 converts the value to a float64 using the engine's coercion
// rules: undefined is NaN, null is 0, booleans are 0 or 1, strings parse
// as decimal numbers, and single-element arrays convert through their
// element.
func (v Value) Float64() float64 { return toF64(v) }

// Int64 converts the value to an int64, truncating floats toward zero and
// clamping values beyond the representable range.
func (v Value) Int64() int64 { return toI64(v) }

// Uint64 converts the value to a uint64. Negative inputs clamp to zero.
func (v Value) Uint64() uint64 { return toU64(v) }

// Bool converts the value to a boolean: undefined, null, NaN, zero, and
// the empty string are false; everything else is true.
func (v Value) Bool() bool { return toBool(v) }

func isNumeric(v Value) bool {
	switch v.kind {
	case kindFloat, kindInt, kindUint, kindBool, kindNull, kindUndefined:
		return true
	default:
		return false
	}
}
