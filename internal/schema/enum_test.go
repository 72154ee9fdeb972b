package schema

import (
	"testing"
)

func TestNewEnum(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		wantErr bool
	}{
		{
			name: "minimal",
			raw: map[string]any{
				"values": []any{
					map[string]any{"name": "A", "value": float64(0)},
				},
			},
		},
		{
			name: "explicit valueType",
			raw: map[string]any{
				"valueType": "int32",
				"values": []any{
					map[string]any{"name": "Negative", "value": float64(-1)},
					map[string]any{"name": "Zero", "value": float64(0)},
				},
			},
		},
		{
			name:    "not an object",
			raw:     []any{"A", "B"},
			wantErr: true,
		},
		{
			name: "missing values",
			raw: map[string]any{
				"name": "empty",
			},
			wantErr: true,
		},
		{
			name: "empty values",
			raw: map[string]any{
				"values": []any{},
			},
			wantErr: true,
		},
		{
			name: "invalid valueType",
			raw: map[string]any{
				"valueType": "float32",
				"values": []any{
					map[string]any{"name": "A", "value": float64(0)},
				},
			},
			wantErr: true,
		},
		{
			name: "value missing name",
			raw: map[string]any{
				"values": []any{
					map[string]any{"value": float64(0)},
				},
			},
			wantErr: true,
		},
		{
			name: "value missing value",
			raw: map[string]any{
				"values": []any{
					map[string]any{"name": "A"},
				},
			},
			wantErr: true,
		},
		{
			name: "fractional value",
			raw: map[string]any{
				"values": []any{
					map[string]any{"name": "A", "value": 0.5},
				},
			},
			wantErr: true,
		},
		{
			name: "duplicate value name",
			raw: map[string]any{
				"values": []any{
					map[string]any{"name": "A", "value": float64(0)},
					map[string]any{"name": "A", "value": float64(1)},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEnum("test", tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if e.ID() != "test" {
				t.Errorf("Expected id test, got %q", e.ID())
			}
		})
	}
}

func TestEnumLookups(t *testing.T) {
	e, err := NewEnum("classification", map[string]any{
		"name":      "Classification",
		"valueType": "uint8",
		"values": []any{
			map[string]any{"name": "Ground", "value": float64(0)},
			map[string]any{"name": "Building", "value": float64(1)},
			map[string]any{"name": "Structure", "value": float64(1)}, // alias
			map[string]any{"name": "Water", "value": float64(2)},
		},
	})
	if err != nil {
		t.Fatalf("NewEnum failed: %v", err)
	}

	if e.ValueType() != "uint8" {
		t.Errorf("Expected valueType uint8, got %q", e.ValueType())
	}

	if v, ok := e.ValueOf("Building"); !ok || v != 1 {
		t.Errorf("ValueOf(Building) = %d, %v", v, ok)
	}
	if _, ok := e.ValueOf("Road"); ok {
		t.Error("Expected miss for unknown name")
	}

	// Aliased values resolve to the first declared name.
	if n, ok := e.NameOf(1); !ok || n != "Building" {
		t.Errorf("NameOf(1) = %q, %v", n, ok)
	}
	if _, ok := e.NameOf(99); ok {
		t.Error("Expected miss for unknown value")
	}

	values := e.Values()
	if len(values) != 4 {
		t.Fatalf("Expected 4 values, got %d", len(values))
	}
	if values[0].Name != "Ground" || values[3].Name != "Water" {
		t.Error("Expected values in declaration order")
	}

	// Mutating the returned slice must not affect the enum.
	values[0].Name = "mutated"
	if e.Values()[0].Name != "Ground" {
		t.Error("Values() must return a copy")
	}
}

func TestEnumDefaultValueType(t *testing.T) {
	e, err := NewEnum("species", map[string]any{
		"values": []any{
			map[string]any{"name": "Oak", "value": float64(0)},
		},
	})
	if err != nil {
		t.Fatalf("NewEnum failed: %v", err)
	}
	if e.ValueType() != DefaultEnumValueType {
		t.Errorf("Expected default valueType %q, got %q", DefaultEnumValueType, e.ValueType())
	}
}
