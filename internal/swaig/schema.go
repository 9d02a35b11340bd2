package swaig

import (
	"bytes"
	"encoding/json"
)

// Type is a JSON Schema kind tag.
type Type string

const (
	String  Type = "string"
	Integer Type = "integer"
	Number  Type = "number"
	Boolean Type = "boolean"
	Array   Type = "array"
	Object  Type = "object"
)

// ArgumentSpec declares one tool parameter.
type ArgumentSpec struct {
	Type        Type
	Description string
	Required    bool
	// Default is applied during binding when the caller omits the argument. Nil means unset.
	Default any
	Enum    []any
	Items   *ItemSpec
}

// ItemSpec describes the elements of an array or the shape of an object argument.
type ItemSpec struct {
	Type       Type
	Enum       []any
	Properties []Argument
	// Required lists the nested field names that must be present. When nil it is derived
	// from the Required flag of each nested property.
	Required []string
	Items    *ItemSpec
}

// Argument pairs a parameter name with its spec. Order of declaration is preserved
// in the rendered schema.
type Argument struct {
	Name string
	Spec ArgumentSpec
}

// Arg is shorthand for building an Argument.
func Arg(name string, spec ArgumentSpec) Argument {
	return Argument{Name: name, Spec: spec}
}

// Property is the rendered form of an ArgumentSpec.
type Property struct {
	Type        Type    `json:"type"`
	Description string  `json:"description"`
	Default     any     `json:"default,omitempty"`
	Enum        []any   `json:"enum,omitempty"`
	Items       *Schema `json:"items,omitempty"`
}

// Schema is the rendered form of an ItemSpec.
type Schema struct {
	Type       Type       `json:"type"`
	Enum       []any      `json:"enum,omitempty"`
	Properties Properties `json:"properties,omitempty"`
	Required   []string   `json:"required,omitempty"`
	Items      *Schema    `json:"items,omitempty"`
}

// Parameters is the JSON-Schema object describing a tool's arguments.
type Parameters struct {
	Type       Type       `json:"type"`
	Properties Properties `json:"properties"`
	Required   []string   `json:"required"`
}

// NamedProperty is one entry of Properties.
type NamedProperty struct {
	Name     string
	Property Property
}

// Properties is an ordered name -> Property mapping that marshals as a JSON object
// in declaration order.
type Properties []NamedProperty

// Get returns the property registered under name.
func (p Properties) Get(name string) (Property, bool) {
	for _, np := range p {
		if np.Name == name {
			return np.Property, true
		}
	}
	return Property{}, false
}

// MarshalJSON implements json.Marshaler.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, np := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(np.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(np.Property)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler. An empty but non-nil Enum is written as [].
func (p Property) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        Type    `json:"type"`
		Description string  `json:"description"`
		Default     any     `json:"default,omitempty"`
		Enum        *[]any  `json:"enum,omitempty"`
		Items       *Schema `json:"items,omitempty"`
	}{p.Type, p.Description, p.Default, setSlice(p.Enum), p.Items})
}

// MarshalJSON implements json.Marshaler. Enum and Required are written whenever they
// are non-nil, even when empty.
func (s Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       Type       `json:"type"`
		Enum       *[]any     `json:"enum,omitempty"`
		Properties Properties `json:"properties,omitempty"`
		Required   *[]string  `json:"required,omitempty"`
		Items      *Schema    `json:"items,omitempty"`
	}{s.Type, setSlice(s.Enum), s.Properties, setSlice(s.Required), s.Items})
}

// setSlice maps nil to a nil pointer so omitempty only drops unset slices.
func setSlice[T any](v []T) *[]T {
	if v == nil {
		return nil
	}
	return &v
}

// shape classifies an ItemSpec for rendering.
type shape int

const (
	primitiveShape shape = iota
	arrayShape
	objectShape
)

func (it ItemSpec) shape() shape {
	switch {
	case it.Type == Object || len(it.Properties) > 0:
		return objectShape
	case it.Items != nil:
		return arrayShape
	default:
		return primitiveShape
	}
}

// renderParameters builds the top-level parameters object for a tool.
func renderParameters(args []Argument) Parameters {
	params := Parameters{
		Type:       Object,
		Properties: make(Properties, 0, len(args)),
		Required:   []string{},
	}
	for _, a := range args {
		params.Properties = append(params.Properties, NamedProperty{Name: a.Name, Property: renderProperty(a.Spec)})
		if a.Spec.Required {
			params.Required = append(params.Required, a.Name)
		}
	}
	return params
}

func renderProperty(spec ArgumentSpec) Property {
	p := Property{
		Type:        spec.Type,
		Description: spec.Description,
		Default:     spec.Default,
		Enum:        spec.Enum,
	}
	if spec.Items != nil {
		p.Items = renderItems(*spec.Items)
	}
	return p
}

func renderItems(it ItemSpec) *Schema {
	s := &Schema{Type: it.Type, Enum: it.Enum, Required: it.Required}
	if it.Items != nil {
		s.Items = renderItems(*it.Items)
	}
	if it.shape() != objectShape {
		return s
	}
	if len(it.Properties) > 0 {
		s.Properties = make(Properties, 0, len(it.Properties))
	}
	for _, a := range it.Properties {
		s.Properties = append(s.Properties, NamedProperty{Name: a.Name, Property: renderProperty(a.Spec)})
		if it.Required == nil && a.Spec.Required {
			s.Required = append(s.Required, a.Name)
		}
	}
	return s
}
