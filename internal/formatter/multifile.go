package formatter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tordal/metaschema/internal/schema"
)

const (
	formatMarkdown = "markdown"
	formatText     = "text"
)

// MultiFileFormatter writes a schema to multiple files in a directory: an
// overview carrying the enum tables plus one file per class.
type MultiFileFormatter struct {
	OutputDir    string
	OutputFormat string // "text" or "markdown"
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir, format string) *MultiFileFormatter {
	return &MultiFileFormatter{
		OutputDir:    outputDir,
		OutputFormat: format,
	}
}

// Format writes the schema to multiple files
func (f *MultiFileFormatter) Format(s *schema.Schema) error {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Write overview file
	if err := f.writeOverview(s); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}

	// Write per-class files
	for _, id := range s.ClassIDs() {
		class, _ := s.Class(id)
		if err := f.writeClassFile(class); err != nil {
			return fmt.Errorf("failed to write class file for %s: %w", id, err)
		}
	}

	return nil
}

// writeOverview writes the overview file: the class index plus the full enum
// tables (enums are small, so they live here rather than in their own files)
func (f *MultiFileFormatter) writeOverview(s *schema.Schema) error {
	ext := f.getFileExtension()
	filename := filepath.Join(f.OutputDir, "_overview"+ext)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	if f.OutputFormat == formatMarkdown {
		return f.writeMarkdownOverview(file, s)
	}
	return f.writeTextOverview(file, s)
}

func (f *MultiFileFormatter) writeMarkdownOverview(file *os.File, s *schema.Schema) error {
	_, _ = fmt.Fprintf(file, "# Schema Overview\n\n")
	if s.Name() != "" {
		_, _ = fmt.Fprintf(file, "**%s**", s.Name())
		if s.Description() != "" {
			_, _ = fmt.Fprintf(file, " — %s", s.Description())
		}
		_, _ = fmt.Fprintln(file)
		_, _ = fmt.Fprintln(file)
	}
	_, _ = fmt.Fprintf(file, "Each class has a corresponding file: `<class_id>%s`\n\n", f.getFileExtension())
	_, _ = fmt.Fprintf(file, "## Classes\n\n")

	for _, id := range s.ClassIDs() {
		class, _ := s.Class(id)
		_, _ = fmt.Fprintf(file, "- **%s**", id)
		if enums := referencedEnums(class); len(enums) > 0 {
			_, _ = fmt.Fprintf(file, " (enums: %s)", joinIDs(enums))
		}
		_, _ = fmt.Fprintln(file)
	}
	_, _ = fmt.Fprintln(file)

	if len(s.EnumIDs()) > 0 {
		_, _ = fmt.Fprintf(file, "# Enums\n\n")
		md := NewMarkdownFormatter(file)
		for _, id := range s.EnumIDs() {
			enum, _ := s.Enum(id)
			_ = md.FormatEnum(enum)
		}
	}

	return nil
}

func (f *MultiFileFormatter) writeTextOverview(file *os.File, s *schema.Schema) error {
	_, _ = fmt.Fprintf(file, "SCHEMA OVERVIEW\n")
	_, _ = fmt.Fprintf(file, "Each class has a file: <class_id>%s\n\n", f.getFileExtension())

	for _, id := range s.ClassIDs() {
		class, _ := s.Class(id)
		_, _ = fmt.Fprintf(file, "%s", id)
		if enums := referencedEnums(class); len(enums) > 0 {
			_, _ = fmt.Fprintf(file, " (enums: %s)", joinIDs(enums))
		}
		_, _ = fmt.Fprintln(file)
	}

	if len(s.EnumIDs()) > 0 {
		_, _ = fmt.Fprintln(file)
		txt := NewTextFormatter(file)
		for i, id := range s.EnumIDs() {
			if i > 0 {
				_, _ = fmt.Fprintln(file)
			}
			enum, _ := s.Enum(id)
			txt.formatEnum(enum)
		}
	}

	return nil
}

// writeClassFile writes a single class to its own file, followed by the enums
// it references so each file reads self-contained
func (f *MultiFileFormatter) writeClassFile(class *schema.Class) error {
	ext := f.getFileExtension()
	filename := filepath.Join(f.OutputDir, class.ID()+ext)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	if f.OutputFormat == formatMarkdown {
		md := NewMarkdownFormatter(file)
		if err := md.FormatClass(class); err != nil {
			return err
		}
		for _, enum := range referencedEnums(class) {
			if err := md.FormatEnum(enum); err != nil {
				return err
			}
		}
		return nil
	}

	txt := NewTextFormatter(file)
	if err := txt.FormatClass(class); err != nil {
		return err
	}
	for _, enum := range referencedEnums(class) {
		_, _ = fmt.Fprintln(file)
		txt.formatEnum(enum)
	}
	return nil
}

// referencedEnums returns the distinct enums referenced by a class's
// properties, ordered by property id.
func referencedEnums(class *schema.Class) []*schema.Enum {
	var enums []*schema.Enum
	seen := make(map[string]bool)

	for _, propID := range class.PropertyIDs() {
		prop, _ := class.Property(propID)
		if prop.Enum != nil && !seen[prop.EnumID] {
			seen[prop.EnumID] = true
			enums = append(enums, prop.Enum)
		}
	}

	return enums
}

func joinIDs(enums []*schema.Enum) string {
	out := ""
	for i, e := range enums {
		if i > 0 {
			out += ", "
		}
		out += e.ID()
	}
	return out
}

func (f *MultiFileFormatter) getFileExtension() string {
	if f.OutputFormat == formatMarkdown {
		return ".md"
	}
	return ".txt"
}
