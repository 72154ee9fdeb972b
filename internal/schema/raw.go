package schema

import (
	"fmt"
	"math"
)

// Helpers for reading fields out of JSON-shaped raw definitions
// (map[string]any as produced by encoding/json).

// optString reads an optional string field, returning "" when absent.
func optString(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string, got %T", key, v)
	}
	return s, nil
}

// optBool reads an optional boolean field, returning false when absent.
func optBool(obj map[string]any, key string) (bool, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("field %q must be a boolean, got %T", key, v)
	}
	return b, nil
}

// optObject reads an optional object field. Absent fields yield (nil, false, nil);
// present non-object fields are an error.
func optObject(obj map[string]any, key string) (map[string]any, bool, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("field %q must be an object, got %T", key, v)
	}
	return m, true, nil
}

// optNumber reads an optional numeric field as float64.
func optNumber(obj map[string]any, key string) (*float64, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil, fmt.Errorf("field %q must be a number, got %T", key, v)
	}
	return &f, nil
}

// optInt reads an optional integral numeric field.
func optInt(obj map[string]any, key string) (*int64, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, nil
	}
	n, ok := toInt(v)
	if !ok {
		return nil, fmt.Errorf("field %q must be an integer, got %v", key, v)
	}
	return &n, nil
}

// toFloat accepts the numeric types a decoded JSON value may carry.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// toInt accepts integral values, including float64 from encoding/json as long
// as it carries no fractional part.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
