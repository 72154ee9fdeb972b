package schema

import (
	"strings"
	"testing"
)

func testEnums(t *testing.T) map[string]*Enum {
	t.Helper()
	species, err := NewEnum("species", map[string]any{
		"values": []any{
			map[string]any{"name": "Oak", "value": float64(0)},
			map[string]any{"name": "Pine", "value": float64(1)},
		},
	})
	if err != nil {
		t.Fatalf("NewEnum failed: %v", err)
	}
	return map[string]*Enum{"species": species}
}

func TestNewClass(t *testing.T) {
	tests := []struct {
		name      string
		raw       any
		wantErr   string
		wantProps []string
	}{
		{
			name: "scalar and enum properties",
			raw: map[string]any{
				"name": "Tree",
				"properties": map[string]any{
					"species": map[string]any{"type": "enum", "enumType": "species"},
					"height":  map[string]any{"type": "float32", "required": true},
				},
			},
			wantProps: []string{"height", "species"},
		},
		{
			name:      "no properties",
			raw:       map[string]any{"description": "marker class"},
			wantProps: []string{},
		},
		{
			name:    "not an object",
			raw:     "tree",
			wantErr: "must be an object",
		},
		{
			name: "property missing type",
			raw: map[string]any{
				"properties": map[string]any{
					"height": map[string]any{"required": true},
				},
			},
			wantErr: "missing type",
		},
		{
			name: "property invalid type",
			raw: map[string]any{
				"properties": map[string]any{
					"height": map[string]any{"type": "decimal"},
				},
			},
			wantErr: "invalid type",
		},
		{
			name: "enum property without enumType",
			raw: map[string]any{
				"properties": map[string]any{
					"species": map[string]any{"type": "enum"},
				},
			},
			wantErr: "missing enumType",
		},
		{
			name: "unknown enum reference",
			raw: map[string]any{
				"properties": map[string]any{
					"species": map[string]any{"type": "enum", "enumType": "genus"},
				},
			},
			wantErr: `unknown enum "genus"`,
		},
		{
			name: "enumType on scalar property",
			raw: map[string]any{
				"properties": map[string]any{
					"height": map[string]any{"type": "float32", "enumType": "species"},
				},
			},
			wantErr: "only valid on enum properties",
		},
		{
			name: "count without array",
			raw: map[string]any{
				"properties": map[string]any{
					"color": map[string]any{"type": "uint8", "count": float64(3)},
				},
			},
			wantErr: "only valid on array properties",
		},
		{
			name: "non-positive count",
			raw: map[string]any{
				"properties": map[string]any{
					"color": map[string]any{"type": "uint8", "array": true, "count": float64(0)},
				},
			},
			wantErr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClass("tree", tt.raw, testEnums(t))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if c.ID() != "tree" {
				t.Errorf("Expected id tree, got %q", c.ID())
			}
			got := c.PropertyIDs()
			if len(got) != len(tt.wantProps) {
				t.Fatalf("Expected properties %v, got %v", tt.wantProps, got)
			}
			for i, id := range tt.wantProps {
				if got[i] != id {
					t.Errorf("Expected properties %v, got %v", tt.wantProps, got)
					break
				}
			}
		})
	}
}

func TestPropertyFields(t *testing.T) {
	raw := map[string]any{
		"properties": map[string]any{
			"color": map[string]any{
				"name":       "Color",
				"type":       "uint8",
				"array":      true,
				"count":      float64(3),
				"normalized": true,
				"offset":     0.5,
				"scale":      2.0,
				"default":    []any{float64(255), float64(255), float64(255)},
			},
		},
	}

	c, err := NewClass("material", raw, nil)
	if err != nil {
		t.Fatalf("NewClass failed: %v", err)
	}

	p, ok := c.Property("color")
	if !ok {
		t.Fatal("Expected property color")
	}
	if p.Name != "Color" || p.Type != "uint8" {
		t.Errorf("Unexpected name/type: %q %q", p.Name, p.Type)
	}
	if !p.Array || p.Count != 3 {
		t.Errorf("Expected array of 3, got array=%v count=%d", p.Array, p.Count)
	}
	if !p.Normalized {
		t.Error("Expected normalized")
	}
	if p.Offset == nil || *p.Offset != 0.5 {
		t.Errorf("Unexpected offset: %v", p.Offset)
	}
	if p.Scale == nil || *p.Scale != 2.0 {
		t.Errorf("Unexpected scale: %v", p.Scale)
	}

	// The default is carried as an isolated copy.
	raw["properties"].(map[string]any)["color"].(map[string]any)["default"].([]any)[0] = float64(0)
	def, ok := p.Default.([]any)
	if !ok || def[0] != float64(255) {
		t.Errorf("Default mutated through caller alias: %v", p.Default)
	}
}

func TestPropertiesReturnsCopy(t *testing.T) {
	c, err := NewClass("tree", map[string]any{
		"properties": map[string]any{
			"height": map[string]any{"type": "float32"},
		},
	}, nil)
	if err != nil {
		t.Fatalf("NewClass failed: %v", err)
	}

	props := c.Properties()
	delete(props, "height")
	if _, ok := c.Property("height"); !ok {
		t.Error("Deleting from the returned map must not affect the class")
	}
}
