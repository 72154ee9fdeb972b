package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordal/metaschema/internal/schema"
)

// TextFormatter renders a schema as compact text
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the schema in compact text format, enums first so class
// property references read downward.
func (f *TextFormatter) Format(s *schema.Schema) error {
	if s.Name() != "" {
		_, _ = fmt.Fprintf(f.writer, "SCHEMA %s\n", s.Name())
		if s.Description() != "" {
			_, _ = fmt.Fprintf(f.writer, "  %s\n", s.Description())
		}
		_, _ = fmt.Fprintln(f.writer)
	}

	enumIDs := s.EnumIDs()
	for i, id := range enumIDs {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer)
		}
		enum, _ := s.Enum(id)
		f.formatEnum(enum)
	}

	for i, id := range s.ClassIDs() {
		if i > 0 || len(enumIDs) > 0 {
			_, _ = fmt.Fprintln(f.writer)
		}
		class, _ := s.Class(id)
		f.formatClass(class)
	}

	return nil
}

// FormatClass writes a single class (exported for use by multifile formatter)
func (f *TextFormatter) FormatClass(class *schema.Class) error {
	f.formatClass(class)
	return nil
}

func (f *TextFormatter) formatClass(class *schema.Class) {
	_, _ = fmt.Fprintf(f.writer, "CLASS %s\n", class.ID())
	if class.Description() != "" {
		_, _ = fmt.Fprintf(f.writer, "  # %s\n", class.Description())
	}

	for _, propID := range class.PropertyIDs() {
		prop, _ := class.Property(propID)
		_, _ = fmt.Fprintf(f.writer, "  %s\n", formatProperty(prop))
	}
}

func (f *TextFormatter) formatEnum(enum *schema.Enum) {
	_, _ = fmt.Fprintf(f.writer, "ENUM %s (%s)\n", enum.ID(), enum.ValueType())
	for _, v := range enum.Values() {
		_, _ = fmt.Fprintf(f.writer, "  %s = %d\n", v.Name, v.Value)
	}
}

// formatProperty renders a property as "id: type" plus modifiers
func formatProperty(prop *schema.Property) string {
	parts := []string{prop.ID + ":", propertyTypeString(prop)}

	if prop.Required {
		parts = append(parts, "required")
	}
	if prop.Normalized {
		parts = append(parts, "normalized")
	}
	if prop.Default != nil {
		parts = append(parts, fmt.Sprintf("default=%v", prop.Default))
	}

	return strings.Join(parts, " ")
}

// propertyTypeString renders a property's type, including enum references and
// array-ness, e.g. "enum<species>", "float32[]", "uint8[3]".
func propertyTypeString(prop *schema.Property) string {
	typeStr := prop.Type
	if prop.Type == "enum" {
		typeStr = fmt.Sprintf("enum<%s>", prop.EnumID)
	}

	if prop.Array {
		if prop.Count > 0 {
			return fmt.Sprintf("%s[%d]", typeStr, prop.Count)
		}
		return typeStr + "[]"
	}
	return typeStr
}
