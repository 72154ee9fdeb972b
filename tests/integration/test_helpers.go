//go:build integration
// +build integration

package integration

import (
	"testing"

	"github.com/tordal/metaschema/internal/schema"
)

// verifyClassesExist checks that all expected classes are present in the schema
func verifyClassesExist(t *testing.T, s *schema.Schema, expectedClasses []string) {
	t.Helper()

	if len(s.ClassIDs()) != len(expectedClasses) {
		t.Errorf("Expected %d classes, got %d (%v)", len(expectedClasses), len(s.ClassIDs()), s.ClassIDs())
	}

	for _, id := range expectedClasses {
		if _, ok := s.Class(id); !ok {
			t.Errorf("Expected class %s not found in schema", id)
		}
	}
}

// verifyProperties checks that expected properties exist on a class
func verifyProperties(t *testing.T, class *schema.Class, expectedProperties []string) {
	t.Helper()

	for _, id := range expectedProperties {
		if _, ok := class.Property(id); !ok {
			t.Errorf("Expected property %s not found on class %s", id, class.ID())
		}
	}
}

// verifyRequired checks that a property is marked required
func verifyRequired(t *testing.T, class *schema.Class, propID string) {
	t.Helper()

	prop, ok := class.Property(propID)
	if !ok {
		t.Errorf("Property %s not found on class %s", propID, class.ID())
		return
	}
	if !prop.Required {
		t.Errorf("Expected property %s.%s to be required", class.ID(), propID)
	}
}

// verifyEnumReference checks that a property is enum-typed and resolves to
// the exact enum instance held in the schema's enum table
func verifyEnumReference(t *testing.T, s *schema.Schema, classID, propID string) {
	t.Helper()

	class, ok := s.Class(classID)
	if !ok {
		t.Errorf("Class %s not found", classID)
		return
	}
	prop, ok := class.Property(propID)
	if !ok {
		t.Errorf("Property %s not found on class %s", propID, classID)
		return
	}

	if prop.Type != "enum" {
		t.Errorf("Expected %s.%s to be enum-typed, got %s", classID, propID, prop.Type)
		return
	}
	if prop.Enum == nil {
		t.Errorf("Expected %s.%s to carry a resolved enum", classID, propID)
		return
	}

	tableEnum, ok := s.Enum(prop.EnumID)
	if !ok {
		t.Errorf("Enum %s referenced by %s.%s missing from schema", prop.EnumID, classID, propID)
		return
	}
	if prop.Enum != tableEnum {
		t.Errorf("Expected %s.%s to reference the schema's enum instance for %s", classID, propID, prop.EnumID)
	}

	if len(prop.Enum.Values()) == 0 {
		t.Errorf("Expected enum %s to have values", prop.EnumID)
	}
}
