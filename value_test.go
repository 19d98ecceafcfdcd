package expreval_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/expreval"
)

func TestValueKinds(t *testing.T) {
	t.Parallel()

	assert.True(t, expreval.NewUndefined().IsUndefined())
	assert.False(t, expreval.NewNull().IsUndefined())

	assert.Equal(t, 2, expreval.NewArray(make([]expreval.Value, 2)).Len())
	assert.Equal(t, 0, expreval.NewArray(nil).Len())
	assert.Equal(t, 0, expreval.NewUndefined().Len())

	assert.Equal(t, uint32(99), expreval.NewObject(nil, 99).ObjectTag())
	assert.Equal(t, uint32(0), expreval.NewUndefined().ObjectTag())
	assert.Equal(t, "hello", expreval.NewObject("hello", 99).Object())
	assert.Nil(t, expreval.NewUndefined().Object())

	assert.True(t, expreval.NewBool(true).Bool())
	assert.False(t, expreval.NewBool(false).Bool())
	assert.False(t, expreval.NewUndefined().Bool())
	assert.False(t, expreval.NewFloat64(0).Bool())
	assert.True(t, expreval.NewFloat64(1).Bool())
	assert.False(t, expreval.NewFloat64(math.NaN()).Bool())
}

func TestValueTypes(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		value expreval.Value
		want  expreval.Type
	}{
		"bool":      {expreval.NewBool(false), expreval.TypeBoolean},
		"null":      {expreval.NewNull(), expreval.TypeNull},
		"string":    {expreval.NewString("hello"), expreval.TypeString},
		"float":     {expreval.NewFloat64(123), expreval.TypeNumber},
		"int":       {expreval.NewInt64(-1), expreval.TypeNumber},
		"uint":      {expreval.NewUint64(1), expreval.TypeNumber},
		"undefined": {expreval.NewUndefined(), expreval.TypeUndefined},
		"function":  {expreval.NewFunction(myfn2), expreval.TypeFunction},
		"object":    {expreval.NewObject(nil, 0), expreval.TypeObject},
		"array":     {expreval.NewArray(nil), expreval.TypeObject},
		"json":      {expreval.NewJSON("{}"), expreval.TypeObject},
		"error":     {expreval.NewError("x"), expreval.TypeObject},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.value.Type())
		})
	}
}

func TestValueCompare(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, expreval.NewString("hello").Compare("hello"))
	assert.Negative(t, expreval.NewString("hello").Compare("jello"))
	assert.Positive(t, expreval.NewString("jello").Compare("hello"))
	assert.Positive(t, expreval.NewString("jello").Compare(""))
	assert.Negative(t, expreval.NewString("").Compare("hello"))
	assert.Equal(t, 0, expreval.NewString("").Compare(""))
	assert.Equal(t, 0, expreval.NewJSON("{}").Compare("{}"))
	assert.Equal(t, 0, expreval.NewJSON("").Compare("undefined"))
	assert.Equal(t, 0, expreval.NewJSON(`"hello"`).Compare("hello"))
	assert.Equal(t, 0, expreval.NewFloat64(123.1).Compare("123.1"))
	assert.Equal(t, 0, expreval.NewInt64(-123).Compare("-123"))
	assert.Equal(t, 0, expreval.NewUint64(123).Compare("123"))

	assert.True(t, expreval.NewString("hello").Equals("hello"))
	assert.False(t, expreval.NewString("").Equals("hello"))
	assert.True(t, expreval.NewJSON("{}").Equals("{}"))
}

func TestValueCoercions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(123), expreval.NewString("123").Int64())
	assert.Equal(t, int64(0), expreval.NewString("").Int64())
	assert.Equal(t, int64(123), expreval.NewString("123.123").Int64())
	assert.Equal(t, int64(-123), expreval.NewString("-123").Int64())
	assert.Equal(t, int64(-123), expreval.NewString("-123.123").Int64())

	assert.Equal(t, uint64(123), expreval.NewString("123").Uint64())
	assert.Equal(t, uint64(0), expreval.NewString("").Uint64())
	assert.Equal(t, uint64(123), expreval.NewString("123.123").Uint64())

	assert.InDelta(t, 123.0, expreval.NewString("123").Float64(), 0)
	assert.True(t, math.IsNaN(expreval.NewString("").Float64()))
	assert.InDelta(t, 123.123, expreval.NewString("123.123").Float64(), 0)
	assert.InDelta(t, -123.0, expreval.NewString("-123").Float64(), 0)
	assert.InDelta(t, 123.0, expreval.NewString("+123").Float64(), 0)
	assert.True(t, math.IsInf(expreval.NewString("Infinity").Float64(), 1))
	assert.True(t, math.IsInf(expreval.NewString("+Infinity").Float64(), 1))
	assert.True(t, math.IsInf(expreval.NewString("-Infinity").Float64(), -1))
	assert.True(t, math.IsNaN(expreval.NewString("NaN").Float64()))

	assert.Equal(t, int64(math.MaxInt64), expreval.NewUint64(math.MaxUint64).Int64())
	assert.Equal(t, uint64(0), expreval.NewInt64(math.MinInt64).Uint64())
	assert.Equal(t, uint64(100), expreval.NewInt64(100).Uint64())

	assert.Equal(t, int64(123), expreval.NewFloat64(123.1).Int64())
	assert.Equal(t, int64(math.MaxInt64), expreval.NewFloat64(123912039182039810293810293.1).Int64())
	assert.Equal(t, int64(math.MinInt64), expreval.NewFloat64(-123912039182039810293810293.1).Int64())

	assert.Equal(t, uint64(123), expreval.NewFloat64(123.1).Uint64())
	assert.Equal(t, uint64(math.MaxUint64), expreval.NewFloat64(123912039182039810293810293.1).Uint64())
	assert.Equal(t, uint64(0), expreval.NewFloat64(-123912039182039810293810293.1).Uint64())

	assert.Equal(t, uint64(1), expreval.NewBool(true).Uint64())
	assert.Equal(t, int64(1), expreval.NewBool(true).Int64())
	assert.Equal(t, uint64(0), expreval.NewBool(false).Uint64())
	assert.Equal(t, int64(0), expreval.NewBool(false).Int64())
}

func TestValueArrayNumericContext(t *testing.T) {
	t.Parallel()

	empty := expreval.NewArray(nil)
	assert.InDelta(t, 0.0, empty.Float64(), 0)

	one := expreval.NewArray([]expreval.Value{expreval.NewFloat64(15)})
	assert.InDelta(t, 15.0, one.Float64(), 0)

	two := expreval.NewArray([]expreval.Value{
		expreval.NewFloat64(1), expreval.NewFloat64(2),
	})
	assert.True(t, math.IsNaN(two.Float64()))
}

func TestValueAt(t *testing.T) {
	t.Parallel()

	arr := expreval.NewArray([]expreval.Value{
		expreval.NewFloat64(1),
		expreval.NewString("two"),
	})

	assert.Equal(t, "1", arr.At(0).String())
	assert.Equal(t, "two", arr.At(1).String())
	assert.True(t, arr.At(2).IsUndefined())
	assert.True(t, arr.At(-1).IsUndefined())
	assert.True(t, expreval.NewFloat64(1).At(0).IsUndefined())
}

func TestValueJSONScalars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, expreval.TypeNumber, expreval.NewJSON("123").Type())
	assert.InDelta(t, 123.0, expreval.NewJSON("123").Float64(), 0)
	assert.Equal(t, expreval.TypeBoolean, expreval.NewJSON("true").Type())
	assert.True(t, expreval.NewJSON("true").Bool())
	assert.Equal(t, expreval.TypeNull, expreval.NewJSON("null").Type())
	assert.Equal(t, expreval.TypeUndefined, expreval.NewJSON("").Type())
	assert.Equal(t, "hello", expreval.NewJSON(`"hello"`).String())
	assert.Equal(t, "Big\nBot", expreval.NewJSON(`"Big\nBot"`).String())
	assert.Equal(t, `{"a":1}`, expreval.NewJSON(`{"a":1}`).String())
}

func TestValueAppendAndLen(t *testing.T) {
	t.Parallel()

	v := expreval.NewFloat64(1.5)
	require.Equal(t, "v=1.5", string(v.Append([]byte("v="))))
	assert.Equal(t, 3, v.StringLen())

	s := expreval.NewString("hiya")
	assert.Equal(t, 4, s.StringLen())
	assert.Equal(t, "hiya", string(s.Append(nil)))
}

func TestValueErrorRendering(t *testing.T) {
	t.Parallel()

	err := expreval.NewError("OperatorError: bad news")
	require.True(t, err.IsError())
	assert.False(t, err.IsOOM())
	assert.Equal(t, "OperatorError: bad news", err.String())
}
