package helper

// TryKeys reads the first present key from data, in order. The document
// format evolved over several versions, so most fields are read through an
// ordered fallback list, e.g. ["category", "nodeType"]. A key counts as
// present even if its value is null.
func TryKeys(data map[string]interface{}, keys ...string) (interface{}, bool) {
	if data == nil {
		return nil, false
	}
	for _, key := range keys {
		if value, has := data[key]; has {
			return value, true
		}
	}
	return nil, false
}

// TryKeysString reads the first present key and casts it to string.
// Non-string values are skipped, not coerced.
func TryKeysString(data map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		if value, has := data[key]; has {
			if s, ok := value.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}
