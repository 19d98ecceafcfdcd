package expreval

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendFloat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in   float64
		want string
	}{
		"zero":           {0, "0"},
		"negative zero":  {math.Copysign(0, -1), "0"},
		"integer":        {123, "123"},
		"negative":       {-123.5, "-123.5"},
		"fraction":       {0.1, "0.1"},
		"small fixed":    {0.000001, "0.000001"},
		"small exponent": {0.0000001, "1e-7"},
		"large fixed":    {1e20, "100000000000000000000"},
		"large exponent": {1e21, "1e+21"},
		"nan":            {math.NaN(), "NaN"},
		"inf":            {math.Inf(1), "Infinity"},
		"negative inf":   {math.Inf(-1), "-Infinity"},
		"max uint64":     {18446744073709551615, "18446744073709552000"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, string(appendFloat(nil, tc.in)))
		})
	}
}

// TestFloatRoundTrip verifies that rendering a double and parsing it back
// recovers the exact value.
func TestFloatRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 10000; i++ {
		f := math.Float64frombits(rng.Uint64())
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}

		s := NewFloat64(f).String()

		back, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err, "rendered %q", s)
		require.True(t, f == back, "f %v rendered %q parsed %v", f, s, back)
	}
}

func TestAppendValueForms(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		value Value
		want  string
	}{
		"undefined": {NewUndefined(), "undefined"},
		"null":      {NewNull(), "null"},
		"true":      {NewBool(true), "true"},
		"false":     {NewBool(false), "false"},
		"int":       {NewInt64(-42), "-42"},
		"uint":      {NewUint64(42), "42"},
		"string":    {NewString("hi"), "hi"},
		"function":  {NewFunction(nil), "[Function]"},
		"object":    {NewObject(nil, 0), "[Object]"},
		"json":      {NewJSON(`[1,2]`), "[1,2]"},
		"array": {NewArray([]Value{
			NewFloat64(1), NewString("a"), NewBool(false),
		}), "1,a,false"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, string(appendValue(nil, tc.value)))
		})
	}
}

func TestErrorText(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		value Value
		want  string
	}{
		"syntax": {errSyntax(), "SyntaxError"},
		"unsupported keyword": {
			errUnsupportedKeyword([]byte("new")),
			"SyntaxError: Unsupported keyword 'new'",
		},
		"not a function": {
			errNotFunc([]byte("howdy")),
			"TypeError: howdy is not a function",
		},
		"undefined ident": {
			errUndefined([]byte("x"), false),
			"ReferenceError: Can't find variable: 'x'",
		},
		"undefined chained": {
			errUndefined([]byte("x"), true),
			"TypeError: Cannot read properties of undefined (reading 'x')",
		},
		"oom": {errOOM(), "MemoryError: Out of memory"},
		"custom": {
			NewError("OperatorError: bad news"),
			"OperatorError: bad news",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.value.String())
		})
	}
}
