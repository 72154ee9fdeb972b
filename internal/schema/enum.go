package schema

import (
	"fmt"
)

// DefaultEnumValueType is assumed when an enum definition omits valueType.
const DefaultEnumValueType = "uint16"

var enumValueTypes = map[string]bool{
	"int8": true, "uint8": true,
	"int16": true, "uint16": true,
	"int32": true, "uint32": true,
	"int64": true, "uint64": true,
}

// EnumValue is a single named constant inside an Enum.
type EnumValue struct {
	Name        string
	Value       int64
	Description string
}

// Enum is a named set of integer constants. Enums are constructed during
// schema assembly and owned exclusively by the schema's enum table; class
// properties reference them by identifier.
type Enum struct {
	id          string
	name        string
	description string
	valueType   string
	values      []EnumValue
	byName      map[string]int64
	byValue     map[int64]string
}

// NewEnum constructs an Enum from its raw definition. The id is assigned once
// here and never changes.
func NewEnum(id string, raw any) (*Enum, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("enum %q: definition must be an object, got %T", id, raw)
	}

	name, err := optString(obj, "name")
	if err != nil {
		return nil, fmt.Errorf("enum %q: %w", id, err)
	}
	description, err := optString(obj, "description")
	if err != nil {
		return nil, fmt.Errorf("enum %q: %w", id, err)
	}
	valueType, err := optString(obj, "valueType")
	if err != nil {
		return nil, fmt.Errorf("enum %q: %w", id, err)
	}
	if valueType == "" {
		valueType = DefaultEnumValueType
	}
	if !enumValueTypes[valueType] {
		return nil, fmt.Errorf("enum %q: invalid valueType %q", id, valueType)
	}

	e := &Enum{
		id:          id,
		name:        name,
		description: description,
		valueType:   valueType,
		byName:      make(map[string]int64),
		byValue:     make(map[int64]string),
	}

	rawValues, ok := obj["values"].([]any)
	if !ok || len(rawValues) == 0 {
		return nil, fmt.Errorf("enum %q: values must be a non-empty array", id)
	}
	for i, rv := range rawValues {
		val, err := parseEnumValue(rv)
		if err != nil {
			return nil, fmt.Errorf("enum %q: value %d: %w", id, i, err)
		}
		if _, exists := e.byName[val.Name]; exists {
			return nil, fmt.Errorf("enum %q: duplicate value name %q", id, val.Name)
		}
		e.values = append(e.values, val)
		e.byName[val.Name] = val.Value
		// Duplicate numeric values are aliases; the first declared name wins.
		if _, exists := e.byValue[val.Value]; !exists {
			e.byValue[val.Value] = val.Name
		}
	}

	return e, nil
}

func parseEnumValue(raw any) (EnumValue, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return EnumValue{}, fmt.Errorf("must be an object, got %T", raw)
	}
	name, err := optString(obj, "name")
	if err != nil {
		return EnumValue{}, err
	}
	if name == "" {
		return EnumValue{}, fmt.Errorf("missing name")
	}
	value, err := optInt(obj, "value")
	if err != nil {
		return EnumValue{}, err
	}
	if value == nil {
		return EnumValue{}, fmt.Errorf("value %q: missing value", name)
	}
	description, err := optString(obj, "description")
	if err != nil {
		return EnumValue{}, err
	}
	return EnumValue{Name: name, Value: *value, Description: description}, nil
}

// ID returns the identifier the enum was registered under.
func (e *Enum) ID() string { return e.id }

// Name returns the display name, if any.
func (e *Enum) Name() string { return e.name }

// Description returns the display description, if any.
func (e *Enum) Description() string { return e.description }

// ValueType returns the integer type of the enum's constants.
func (e *Enum) ValueType() string { return e.valueType }

// Values returns the constants in declaration order.
func (e *Enum) Values() []EnumValue {
	out := make([]EnumValue, len(e.values))
	copy(out, e.values)
	return out
}

// ValueOf looks up a constant by name.
func (e *Enum) ValueOf(name string) (int64, bool) {
	v, ok := e.byName[name]
	return v, ok
}

// NameOf looks up a constant name by value. When several names share a value,
// the first declared name is returned.
func (e *Enum) NameOf(value int64) (string, bool) {
	n, ok := e.byValue[value]
	return n, ok
}
