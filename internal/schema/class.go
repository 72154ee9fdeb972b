package schema

import (
	"fmt"
	"sort"
)

var propertyTypes = map[string]bool{
	"string": true, "boolean": true,
	"int8": true, "uint8": true,
	"int16": true, "uint16": true,
	"int32": true, "uint32": true,
	"int64": true, "uint64": true,
	"float32": true, "float64": true,
	"enum": true,
}

// Property describes a single typed property of a Class. For enum-typed
// properties, Enum holds the resolved object from the schema's enum table;
// resolution happens once at construction time.
type Property struct {
	ID          string
	Name        string
	Description string
	Type        string
	EnumID      string
	Enum        *Enum
	Array       bool
	Count       int64
	Required    bool
	Normalized  bool
	Offset      *float64
	Scale       *float64
	Default     any
	NoData      any
}

// Class is a named structured record type. It holds non-owning references to
// the enums that type its enum-valued properties; enum lifetime is governed by
// the owning schema.
type Class struct {
	id          string
	name        string
	description string
	properties  map[string]*Property
}

// NewClass constructs a Class from its raw definition. The supplied enum table
// is the schema's complete table; any property typed as an enum reference is
// resolved against it eagerly, and an unknown reference fails construction.
func NewClass(id string, raw any, enums map[string]*Enum) (*Class, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("class %q: definition must be an object, got %T", id, raw)
	}

	name, err := optString(obj, "name")
	if err != nil {
		return nil, fmt.Errorf("class %q: %w", id, err)
	}
	description, err := optString(obj, "description")
	if err != nil {
		return nil, fmt.Errorf("class %q: %w", id, err)
	}

	c := &Class{
		id:          id,
		name:        name,
		description: description,
		properties:  make(map[string]*Property),
	}

	rawProps, present, err := optObject(obj, "properties")
	if err != nil {
		return nil, fmt.Errorf("class %q: %w", id, err)
	}
	if present {
		for propID, rawProp := range rawProps {
			prop, err := newProperty(propID, rawProp, enums)
			if err != nil {
				return nil, fmt.Errorf("class %q: property %q: %w", id, propID, err)
			}
			c.properties[propID] = prop
		}
	}

	return c, nil
}

func newProperty(id string, raw any, enums map[string]*Enum) (*Property, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("definition must be an object, got %T", raw)
	}

	p := &Property{ID: id}

	var err error
	if p.Name, err = optString(obj, "name"); err != nil {
		return nil, err
	}
	if p.Description, err = optString(obj, "description"); err != nil {
		return nil, err
	}
	if p.Type, err = optString(obj, "type"); err != nil {
		return nil, err
	}
	if p.Type == "" {
		return nil, fmt.Errorf("missing type")
	}
	if !propertyTypes[p.Type] {
		return nil, fmt.Errorf("invalid type %q", p.Type)
	}

	if p.EnumID, err = optString(obj, "enumType"); err != nil {
		return nil, err
	}
	if p.Type == "enum" {
		if p.EnumID == "" {
			return nil, fmt.Errorf("enum property missing enumType")
		}
		enum, ok := enums[p.EnumID]
		if !ok {
			return nil, fmt.Errorf("references unknown enum %q", p.EnumID)
		}
		p.Enum = enum
	} else if p.EnumID != "" {
		return nil, fmt.Errorf("enumType is only valid on enum properties, type is %q", p.Type)
	}

	if p.Array, err = optBool(obj, "array"); err != nil {
		return nil, err
	}
	count, err := optInt(obj, "count")
	if err != nil {
		return nil, err
	}
	if count != nil {
		if !p.Array {
			return nil, fmt.Errorf("count is only valid on array properties")
		}
		if *count < 1 {
			return nil, fmt.Errorf("count must be positive, got %d", *count)
		}
		p.Count = *count
	}

	if p.Required, err = optBool(obj, "required"); err != nil {
		return nil, err
	}
	if p.Normalized, err = optBool(obj, "normalized"); err != nil {
		return nil, err
	}
	if p.Offset, err = optNumber(obj, "offset"); err != nil {
		return nil, err
	}
	if p.Scale, err = optNumber(obj, "scale"); err != nil {
		return nil, err
	}

	// Carried opaquely; the model does not apply defaults or decode values.
	p.Default = deepCopy(obj["default"])
	p.NoData = deepCopy(obj["noData"])

	return p, nil
}

// ID returns the identifier the class was registered under.
func (c *Class) ID() string { return c.id }

// Name returns the display name, if any.
func (c *Class) Name() string { return c.name }

// Description returns the display description, if any.
func (c *Class) Description() string { return c.description }

// Properties returns the class's property definitions keyed by property id.
// The returned map is a copy; the class itself is read-only.
func (c *Class) Properties() map[string]*Property {
	out := make(map[string]*Property, len(c.properties))
	for k, v := range c.properties {
		out[k] = v
	}
	return out
}

// Property looks up a single property definition by id.
func (c *Class) Property(id string) (*Property, bool) {
	p, ok := c.properties[id]
	return p, ok
}

// PropertyIDs returns the property identifiers in sorted order.
func (c *Class) PropertyIDs() []string {
	ids := make([]string, 0, len(c.properties))
	for id := range c.properties {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
