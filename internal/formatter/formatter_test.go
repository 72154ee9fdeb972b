package formatter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tordal/metaschema/internal/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New(map[string]any{
		"name":        "vegetation",
		"description": "Per-feature vegetation metadata",
		"enums": map[string]any{
			"species": map[string]any{
				"valueType": "uint8",
				"values": []any{
					map[string]any{"name": "Oak", "value": float64(0)},
					map[string]any{"name": "Pine", "value": float64(1)},
				},
			},
		},
		"classes": map[string]any{
			"tree": map[string]any{
				"properties": map[string]any{
					"species": map[string]any{"type": "enum", "enumType": "species"},
					"height":  map[string]any{"type": "float32", "required": true},
					"color":   map[string]any{"type": "uint8", "array": true, "count": float64(3), "normalized": true},
				},
			},
			"plot": map[string]any{
				"properties": map[string]any{
					"area": map[string]any{"type": "float64"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("schema.New failed: %v", err)
	}
	return s
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(&buf)
	if err := f.Format(testSchema(t)); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"SCHEMA vegetation",
		"ENUM species (uint8)",
		"Oak = 0",
		"Pine = 1",
		"CLASS plot",
		"CLASS tree",
		"species: enum<species>",
		"height: float32 required",
		"color: uint8[3] normalized",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\ngot:\n%s", want, out)
		}
	}

	// Enums render before classes so references read downward
	if strings.Index(out, "ENUM species") > strings.Index(out, "CLASS plot") {
		t.Error("Expected enums before classes")
	}
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewMarkdownFormatter(&buf)
	if err := f.Format(testSchema(t)); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Metadata Schema",
		"**vegetation** — Per-feature vegetation metadata",
		"## species (enum, uint8)",
		"- **Oak** = 0",
		"## tree",
		"### Properties",
		"- **species:** enum<species> (Oak|Pine)",
		"- **height:** float32, required",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\ngot:\n%s", want, out)
		}
	}
}

func TestMultiFileFormatter(t *testing.T) {
	dir := t.TempDir()
	f := NewMultiFileFormatter(dir, "markdown")
	if err := f.Format(testSchema(t)); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	overview, err := os.ReadFile(filepath.Join(dir, "_overview.md"))
	if err != nil {
		t.Fatalf("Failed to read overview: %v", err)
	}
	for _, want := range []string{"# Schema Overview", "- **tree** (enums: species)", "- **plot**", "## species (enum, uint8)"} {
		if !strings.Contains(string(overview), want) {
			t.Errorf("Expected overview to contain %q\ngot:\n%s", want, overview)
		}
	}

	tree, err := os.ReadFile(filepath.Join(dir, "tree.md"))
	if err != nil {
		t.Fatalf("Failed to read class file: %v", err)
	}
	// Class files carry their referenced enums so they read self-contained
	for _, want := range []string{"## tree", "## species (enum, uint8)"} {
		if !strings.Contains(string(tree), want) {
			t.Errorf("Expected class file to contain %q\ngot:\n%s", want, tree)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "plot.md")); err != nil {
		t.Errorf("Expected plot.md to exist: %v", err)
	}
}

func TestMultiFileFormatterText(t *testing.T) {
	dir := t.TempDir()
	f := NewMultiFileFormatter(dir, "text")
	if err := f.Format(testSchema(t)); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	overview, err := os.ReadFile(filepath.Join(dir, "_overview.txt"))
	if err != nil {
		t.Fatalf("Failed to read overview: %v", err)
	}
	for _, want := range []string{"SCHEMA OVERVIEW", "tree (enums: species)", "ENUM species (uint8)"} {
		if !strings.Contains(string(overview), want) {
			t.Errorf("Expected overview to contain %q\ngot:\n%s", want, overview)
		}
	}
}

func TestPropertyTypeString(t *testing.T) {
	tests := []struct {
		name string
		prop *schema.Property
		want string
	}{
		{
			name: "scalar",
			prop: &schema.Property{Type: "float32"},
			want: "float32",
		},
		{
			name: "enum reference",
			prop: &schema.Property{Type: "enum", EnumID: "species"},
			want: "enum<species>",
		},
		{
			name: "unbounded array",
			prop: &schema.Property{Type: "string", Array: true},
			want: "string[]",
		},
		{
			name: "fixed-size array",
			prop: &schema.Property{Type: "uint8", Array: true, Count: 3},
			want: "uint8[3]",
		},
		{
			name: "enum array",
			prop: &schema.Property{Type: "enum", EnumID: "species", Array: true},
			want: "enum<species>[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := propertyTypeString(tt.prop); got != tt.want {
				t.Errorf("propertyTypeString() = %q, want %q", got, tt.want)
			}
		})
	}
}
