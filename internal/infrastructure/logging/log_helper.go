package logging

import "slices"

// sortedKeys keeps field order stable between entries, which map iteration
// does not.
func sortedKeys(extra map[ExtraKey]any) []ExtraKey {
	keys := make([]ExtraKey, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// logParamsToZapParams flattens extra into zap's alternating key/value form.
func logParamsToZapParams(extra map[ExtraKey]any) []any {
	params := make([]any, 0, len(extra)*2)
	for _, k := range sortedKeys(extra) {
		params = append(params, string(k), extra[k])
	}
	return params
}

func logParamsToZeroParams(extra map[ExtraKey]any) map[string]any {
	if len(extra) == 0 {
		return nil
	}

	fields := make(map[string]any, len(extra))
	for k, v := range extra {
		fields[string(k)] = v
	}
	return fields
}
