package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordal/metaschema/internal/schema"
)

// MarkdownFormatter renders a schema as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes the schema in markdown format
func (f *MarkdownFormatter) Format(s *schema.Schema) error {
	_, _ = fmt.Fprintln(f.writer, "# Metadata Schema")
	_, _ = fmt.Fprintln(f.writer)

	if s.Name() != "" {
		_, _ = fmt.Fprintf(f.writer, "**%s**", s.Name())
		if s.Description() != "" {
			_, _ = fmt.Fprintf(f.writer, " — %s", s.Description())
		}
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer)
	}

	for _, id := range s.EnumIDs() {
		enum, _ := s.Enum(id)
		f.formatEnum(enum)
	}

	for _, id := range s.ClassIDs() {
		class, _ := s.Class(id)
		f.formatClass(class)
	}

	return nil
}

// FormatClass formats a single class (exported for use by multifile formatter)
func (f *MarkdownFormatter) FormatClass(class *schema.Class) error {
	f.formatClass(class)
	return nil
}

// FormatEnum formats a single enum (exported for use by multifile formatter)
func (f *MarkdownFormatter) FormatEnum(enum *schema.Enum) error {
	f.formatEnum(enum)
	return nil
}

func (f *MarkdownFormatter) formatClass(class *schema.Class) {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", class.ID())
	if class.Description() != "" {
		_, _ = fmt.Fprintf(f.writer, "%s\n\n", class.Description())
	}

	_, _ = fmt.Fprintln(f.writer, "### Properties")
	_, _ = fmt.Fprintln(f.writer)

	for _, propID := range class.PropertyIDs() {
		prop, _ := class.Property(propID)

		typeStr := propertyTypeString(prop)
		if prop.Enum != nil {
			labels := make([]string, 0, len(prop.Enum.Values()))
			for _, v := range prop.Enum.Values() {
				labels = append(labels, v.Name)
			}
			typeStr = fmt.Sprintf("%s (%s)", typeStr, strings.Join(labels, "|"))
		}

		modStr := formatModifiers(prop)
		if modStr != "" {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s, %s\n", prop.ID, typeStr, modStr)
		} else {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s\n", prop.ID, typeStr)
		}
	}
	_, _ = fmt.Fprintln(f.writer)
}

func (f *MarkdownFormatter) formatEnum(enum *schema.Enum) {
	_, _ = fmt.Fprintf(f.writer, "## %s (enum, %s)\n\n", enum.ID(), enum.ValueType())
	if enum.Description() != "" {
		_, _ = fmt.Fprintf(f.writer, "%s\n\n", enum.Description())
	}

	for _, v := range enum.Values() {
		if v.Description != "" {
			_, _ = fmt.Fprintf(f.writer, "- **%s** = %d — %s\n", v.Name, v.Value, v.Description)
		} else {
			_, _ = fmt.Fprintf(f.writer, "- **%s** = %d\n", v.Name, v.Value)
		}
	}
	_, _ = fmt.Fprintln(f.writer)
}

// formatModifiers renders a property's constraint-like modifiers
func formatModifiers(prop *schema.Property) string {
	var mods []string

	if prop.Required {
		mods = append(mods, "required")
	}
	if prop.Normalized {
		mods = append(mods, "normalized")
	}
	if prop.Offset != nil {
		mods = append(mods, fmt.Sprintf("offset %v", *prop.Offset))
	}
	if prop.Scale != nil {
		mods = append(mods, fmt.Sprintf("scale %v", *prop.Scale))
	}
	if prop.Default != nil {
		mods = append(mods, fmt.Sprintf("default %v", prop.Default))
	}

	return strings.Join(mods, ", ")
}
