// Package schema builds an immutable in-memory model of a metadata schema:
// named enums, named classes whose properties may reference those enums, and
// top-level descriptive fields.
//
// Construction is two-pass: the enum table is built first, then the class
// table, so that every enum-typed class property resolves to an already
// constructed Enum object rather than a raw identifier. The resulting Schema
// is read-only; concurrent readers need no locking.
package schema

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidSchema reports that the top-level raw schema input is missing or
// not an object. Use errors.Is to detect it.
var ErrInvalidSchema = errors.New("invalid schema")

// Schema is the root of the model. It exclusively owns its enum and class
// tables; classes hold non-owning references into the enum table.
type Schema struct {
	name        string
	description string
	classes     map[string]*Class
	enums       map[string]*Enum
	extras      any
}

// New builds a Schema from a raw, JSON-shaped schema object. All recognized
// fields (name, description, enums, classes, extras) are optional; an empty
// object is a valid schema. Any failure constructing an individual enum or
// class propagates unchanged and no Schema is returned.
//
// The extras payload is deep-copied, so mutating the caller's raw input after
// construction is never observable through the returned Schema.
func New(raw any) (*Schema, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object, got %T", ErrInvalidSchema, raw)
	}

	name, err := optString(obj, "name")
	if err != nil {
		return nil, err
	}
	description, err := optString(obj, "description")
	if err != nil {
		return nil, err
	}

	rawEnums, _, err := optObject(obj, "enums")
	if err != nil {
		return nil, err
	}
	enums, err := buildEnumTable(rawEnums)
	if err != nil {
		return nil, err
	}

	// Classes are always built after the complete enum table so enum
	// references resolve eagerly, never lazily.
	rawClasses, _, err := optObject(obj, "classes")
	if err != nil {
		return nil, err
	}
	classes, err := buildClassTable(rawClasses, enums)
	if err != nil {
		return nil, err
	}

	return &Schema{
		name:        name,
		description: description,
		classes:     classes,
		enums:       enums,
		extras:      deepCopy(obj["extras"]),
	}, nil
}

// buildEnumTable constructs one Enum per entry of the raw enums mapping,
// keyed exactly as the input. It depends on nothing else in the schema.
func buildEnumTable(raw map[string]any) (map[string]*Enum, error) {
	enums := make(map[string]*Enum, len(raw))
	for id, def := range raw {
		enum, err := NewEnum(id, def)
		if err != nil {
			return nil, err
		}
		enums[id] = enum
	}
	return enums, nil
}

// buildClassTable constructs one Class per entry of the raw classes mapping.
// Every class receives the entire enum table; classes never reference each
// other, so construction order across classes does not matter.
func buildClassTable(raw map[string]any, enums map[string]*Enum) (map[string]*Class, error) {
	classes := make(map[string]*Class, len(raw))
	for id, def := range raw {
		class, err := NewClass(id, def, enums)
		if err != nil {
			return nil, err
		}
		classes[id] = class
	}
	return classes, nil
}

// Name returns the schema's display name, if any.
func (s *Schema) Name() string { return s.name }

// Description returns the schema's display description, if any.
func (s *Schema) Description() string { return s.description }

// Classes returns the class table keyed by class id. The returned map is a
// copy; the Class objects themselves are shared and read-only.
func (s *Schema) Classes() map[string]*Class {
	out := make(map[string]*Class, len(s.classes))
	for k, v := range s.classes {
		out[k] = v
	}
	return out
}

// Enums returns the enum table keyed by enum id. The returned map is a copy;
// the Enum objects themselves are shared and read-only.
func (s *Schema) Enums() map[string]*Enum {
	out := make(map[string]*Enum, len(s.enums))
	for k, v := range s.enums {
		out[k] = v
	}
	return out
}

// Class looks up a class by id.
func (s *Schema) Class(id string) (*Class, bool) {
	c, ok := s.classes[id]
	return c, ok
}

// Enum looks up an enum by id.
func (s *Schema) Enum(id string) (*Enum, bool) {
	e, ok := s.enums[id]
	return e, ok
}

// Extras returns the schema's opaque extras payload (the deep copy taken at
// construction time), or nil if none was supplied.
func (s *Schema) Extras() any { return s.extras }

// ClassIDs returns the class identifiers in sorted order.
func (s *Schema) ClassIDs() []string {
	ids := make([]string, 0, len(s.classes))
	for id := range s.classes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnumIDs returns the enum identifiers in sorted order.
func (s *Schema) EnumIDs() []string {
	ids := make([]string, 0, len(s.enums))
	for id := range s.enums {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
