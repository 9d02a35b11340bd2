package swaig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsAccessors(t *testing.T) {
	args := Args{
		"s":    "text",
		"i":    float64(4),
		"frac": 4.5,
		"num":  json.Number("12"),
		"str":  "7",
		"b":    true,
		"m":    map[string]any{"k": "v"},
		"l":    []any{1.0, 2.0},
	}

	s, err := args.String("s")
	require.NoError(t, err)
	assert.Equal(t, "text", s)

	for name, want := range map[string]int{"i": 4, "num": 12, "str": 7} {
		got, err := args.Int(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err = args.Int("frac")
	assert.True(t, IsArgumentError(err))

	huge := Args{
		"f64":  1e30,
		"neg":  -1e30,
		"f32":  float32(1e30),
		"edge": float64(1 << 63),
		"num":  json.Number("100000000000000000000"),
		"exp":  json.Number("1e30"),
	}
	for name := range huge {
		_, err := huge.Int(name)
		assert.EqualError(t, err, "argument '"+name+"' must be an integer", name)
	}

	f, err := args.Float("frac")
	require.NoError(t, err)
	assert.Equal(t, 4.5, f)

	b, err := args.Bool("b")
	require.NoError(t, err)
	assert.True(t, b)

	m, err := args.Map("m")
	require.NoError(t, err)
	assert.Equal(t, "v", m["k"])

	l, err := args.Slice("l")
	require.NoError(t, err)
	assert.Len(t, l, 2)

	_, err = args.String("missing")
	assert.EqualError(t, err, "missing argument 'missing'")
	_, err = args.Bool("s")
	assert.EqualError(t, err, "argument 's' must be a boolean")
	assert.True(t, args.Has("s"))
	assert.False(t, args.Has("missing"))
}

func TestBind(t *testing.T) {
	declared := []Argument{
		Arg("req", ArgumentSpec{Type: String, Required: true}),
		Arg("opt", ArgumentSpec{Type: Integer}),
		Arg("def", ArgumentSpec{Type: Boolean, Default: false}),
		Arg("reqdef", ArgumentSpec{Type: String, Required: true, Default: "x"}),
	}

	args, err := bind(declared, map[string]any{"req": "r"})
	require.NoError(t, err)
	assert.Equal(t, Args{"req": "r", "def": false, "reqdef": "x"}, args)
	assert.False(t, args.Has("opt"))

	_, err = bind(declared, map[string]any{})
	assert.EqualError(t, err, "missing required argument 'req'")

	_, err = bind(declared, map[string]any{"req": "r", "zz": 1, "aa": 2})
	assert.EqualError(t, err, "unexpected arguments 'aa', 'zz'")
}
