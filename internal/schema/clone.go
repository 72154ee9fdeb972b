package schema

// deepCopy clones a JSON-shaped value (maps, slices, scalars) so the model
// holds no live reference into caller-owned input. Scalars are returned as-is.
func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = deepCopy(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = deepCopy(elem)
		}
		return out
	default:
		return v
	}
}
