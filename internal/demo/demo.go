// Package demo bundles the tools served by "swaig serve".
package demo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"swaig/internal/swaig"
)

// Tool names.
const (
	AddName          = "add"
	AllDataTypesName = "example_tool_with_all_data_types"
	RememberName     = "remember"
	CurrentTimeName  = "current_time"
)

// Register adds every bundled tool to reg.
func Register(reg *swaig.Registry) error {
	tools := []struct {
		name, description string
		fn                swaig.Func
		args              []swaig.Argument
	}{
		{AddName, "Add two integers", Add, addArgs()},
		{AllDataTypesName, "Demonstrates all OpenAI-supported parameter data types", AllDataTypes, allDataTypesArgs()},
		{RememberName, "Remember a value for the rest of the call", Remember, rememberArgs()},
		{CurrentTimeName, "Get the current time in a time zone", CurrentTime, currentTimeArgs()},
	}
	for _, t := range tools {
		if err := reg.Register(t.name, t.description, t.fn, t.args...); err != nil {
			return err
		}
	}
	return nil
}

func addArgs() []swaig.Argument {
	return []swaig.Argument{
		swaig.Arg("a", swaig.ArgumentSpec{Type: swaig.Integer, Description: "First addend", Required: true}),
		swaig.Arg("b", swaig.ArgumentSpec{Type: swaig.Integer, Description: "Second addend", Required: true}),
	}
}

// Add returns a+b.
func Add(_ context.Context, call swaig.Call) (any, map[string]any, error) {
	a, err := call.Args.Int("a")
	if err != nil {
		return nil, nil, err
	}
	b, err := call.Args.Int("b")
	if err != nil {
		return nil, nil, err
	}
	return a + b, nil, nil
}

func allDataTypesArgs() []swaig.Argument {
	return []swaig.Argument{
		swaig.Arg("string_example", swaig.ArgumentSpec{Type: swaig.String, Description: "A simple string value", Required: true}),
		swaig.Arg("integer_example", swaig.ArgumentSpec{Type: swaig.Integer, Description: "An integer value", Required: true}),
		swaig.Arg("number_example", swaig.ArgumentSpec{Type: swaig.Number, Description: "A floating point number"}),
		swaig.Arg("boolean_example", swaig.ArgumentSpec{Type: swaig.Boolean, Description: "A true/false boolean value", Required: true}),
		swaig.Arg("enum_example", swaig.ArgumentSpec{
			Type:        swaig.String,
			Description: "A value constrained to a specific set of strings",
			Enum:        []any{"option1", "option2", "option3"},
		}),
		swaig.Arg("array_example", swaig.ArgumentSpec{
			Type:        swaig.Array,
			Description: "An array of strings",
			Items:       &swaig.ItemSpec{Type: swaig.String},
		}),
		swaig.Arg("object_example", swaig.ArgumentSpec{
			Type:        swaig.Object,
			Description: "A nested object with internal fields",
			Items: &swaig.ItemSpec{
				Type: swaig.Object,
				Properties: []swaig.Argument{
					swaig.Arg("nested_string", swaig.ArgumentSpec{Type: swaig.String, Description: "A nested string", Required: true}),
					swaig.Arg("nested_number", swaig.ArgumentSpec{Type: swaig.Number, Description: "A nested number"}),
				},
				Required: []string{"nested_string"},
			},
		}),
		swaig.Arg("array_of_objects", swaig.ArgumentSpec{
			Type:        swaig.Array,
			Description: "An array of structured objects",
			Items: &swaig.ItemSpec{
				Type: swaig.Object,
				Properties: []swaig.Argument{
					swaig.Arg("name", swaig.ArgumentSpec{Type: swaig.String, Description: "Name of the item", Required: true}),
					swaig.Arg("value", swaig.ArgumentSpec{Type: swaig.Integer, Description: "Numeric value of the item", Required: true}),
				},
				Required: []string{"name", "value"},
			},
		}),
	}
}

// AllDataTypes summarises whatever it received.
func AllDataTypes(_ context.Context, call swaig.Call) (any, map[string]any, error) {
	var b strings.Builder
	b.WriteString("Received:")
	for i, a := range allDataTypesArgs() {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, " %s=%v", a.Name, call.Args.Get(a.Name))
	}
	fmt.Fprintf(&b, ", meta_data=%v, meta_data_token=%s", call.MetaData, call.MetaDataToken)
	return b.String(), nil, nil
}

func rememberArgs() []swaig.Argument {
	return []swaig.Argument{
		swaig.Arg("key", swaig.ArgumentSpec{Type: swaig.String, Description: "Name to store the value under", Required: true}),
		swaig.Arg("value", swaig.ArgumentSpec{Type: swaig.String, Description: "Value to store", Required: true}),
	}
}

// Remember stores key=value in the call's meta_data and lists everything remembered so far.
func Remember(_ context.Context, call swaig.Call) (any, map[string]any, error) {
	key, err := call.Args.String("key")
	if err != nil {
		return nil, nil, err
	}
	value, err := call.Args.String("value")
	if err != nil {
		return nil, nil, err
	}
	updated := make(map[string]any, len(call.MetaData)+1)
	for k, v := range call.MetaData {
		updated[k] = v
	}
	updated[key] = value

	keys := make([]string, 0, len(updated))
	for k := range updated {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("Remembered %s. Known keys: %s", key, strings.Join(keys, ", ")), updated, nil
}

func currentTimeArgs() []swaig.Argument {
	return []swaig.Argument{
		swaig.Arg("timezone", swaig.ArgumentSpec{
			Type:        swaig.String,
			Description: "IANA time zone name",
			Default:     "UTC",
		}),
	}
}

// CurrentTime returns the time in the requested zone.
func CurrentTime(_ context.Context, call swaig.Call) (any, map[string]any, error) {
	zone, err := call.Args.String("timezone")
	if err != nil {
		return nil, nil, err
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, nil, fmt.Errorf("unknown time zone %q", zone)
	}
	return time.Now().In(loc).Format(time.RFC3339), nil, nil
}
