package swaig

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Args holds the bound arguments of a call. Accessors return an *ArgumentError when the
// value is missing or has the wrong type, so tools can return the error unchanged.
type Args map[string]any

// Has reports whether name was bound, either by the caller or from a default.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Get returns the raw bound value.
func (a Args) Get(name string) any { return a[name] }

// String returns name as a string.
func (a Args) String(name string) (string, error) {
	v, ok := a[name]
	if !ok {
		return "", InvalidArguments("missing argument '%s'", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", InvalidArguments("argument '%s' must be a string", name)
	}
	return s, nil
}

// Int returns name as an int. Whole JSON numbers and numeric strings are accepted.
func (a Args) Int(name string) (int, error) {
	v, ok := a[name]
	if !ok {
		return 0, InvalidArguments("missing argument '%s'", name)
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int32:
		return int(val), nil
	case int64:
		if val >= math.MinInt && val <= math.MaxInt {
			return int(val), nil
		}
	case float64:
		if n, ok := wholeInt(val); ok {
			return n, nil
		}
	case float32:
		if n, ok := wholeInt(float64(val)); ok {
			return n, nil
		}
	case json.Number:
		if n, err := val.Int64(); err == nil && n >= math.MinInt && n <= math.MaxInt {
			return int(n), nil
		}
	case string:
		if n, err := strconv.Atoi(val); err == nil {
			return n, nil
		}
	}
	return 0, InvalidArguments("argument '%s' must be an integer", name)
}

// wholeInt converts f when it is a whole number that fits in an int. The upper bound is
// exclusive since float64(math.MaxInt) rounds up to a power of two on 64-bit builds.
func wholeInt(f float64) (int, bool) {
	if f != math.Trunc(f) || f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, false
	}
	return int(f), true
}

// Float returns name as a float64.
func (a Args) Float(name string) (float64, error) {
	v, ok := a[name]
	if !ok {
		return 0, InvalidArguments("missing argument '%s'", name)
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f, nil
		}
	}
	return 0, InvalidArguments("argument '%s' must be a number", name)
}

// Bool returns name as a bool.
func (a Args) Bool(name string) (bool, error) {
	v, ok := a[name]
	if !ok {
		return false, InvalidArguments("missing argument '%s'", name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, InvalidArguments("argument '%s' must be a boolean", name)
	}
	return b, nil
}

// Map returns name as a JSON object.
func (a Args) Map(name string) (map[string]any, error) {
	v, ok := a[name]
	if !ok {
		return nil, InvalidArguments("missing argument '%s'", name)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, InvalidArguments("argument '%s' must be an object", name)
	}
	return m, nil
}

// Slice returns name as a JSON array.
func (a Args) Slice(name string) ([]any, error) {
	v, ok := a[name]
	if !ok {
		return nil, InvalidArguments("missing argument '%s'", name)
	}
	s, ok := v.([]any)
	if !ok {
		return nil, InvalidArguments("argument '%s' must be an array", name)
	}
	return s, nil
}

// bind matches the caller's argument mapping against the declared parameters:
// undeclared names are rejected, defaults fill omitted names, and omitted required
// names without a default are reported.
func bind(declared []Argument, supplied map[string]any) (Args, error) {
	known := make(map[string]struct{}, len(declared))
	for _, d := range declared {
		known[d.Name] = struct{}{}
	}
	var unexpected []string
	for name := range supplied {
		if _, ok := known[name]; !ok {
			unexpected = append(unexpected, name)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return nil, InvalidArguments("unexpected %s %s", plural(len(unexpected), "argument"), quoteList(unexpected))
	}

	args := make(Args, len(declared))
	var missing []string
	for _, d := range declared {
		if v, ok := supplied[d.Name]; ok {
			args[d.Name] = v
			continue
		}
		if d.Spec.Default != nil {
			args[d.Name] = d.Spec.Default
			continue
		}
		if d.Spec.Required {
			missing = append(missing, d.Name)
		}
	}
	if len(missing) > 0 {
		return nil, InvalidArguments("missing required %s %s", plural(len(missing), "argument"), quoteList(missing))
	}
	return args, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return strings.Join(quoted, ", ")
}
