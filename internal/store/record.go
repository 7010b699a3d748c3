package store

// Record is the field-name-to-value payload exchanged with the access
// layer. Reads return fully populated records; writes accept only keys
// that are declared columns of the target table.
type Record map[string]any

// Has reports whether the record carries a non-nil value for key.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Int64 reads an integer column. pgx scans BIGINT as int64 and INTEGER
// as int32, so both are accepted.
func (r Record) Int64(key string) (int64, bool) {
	switch v := r[key].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// Float64 reads a floating-point column.
func (r Record) Float64(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// String reads a text column.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key].(string)
	return v, ok
}

// Int64Ptr reads a nullable integer column, nil when absent or NULL.
func (r Record) Int64Ptr(key string) *int64 {
	if v, ok := r.Int64(key); ok {
		return &v
	}
	return nil
}

// Float64Ptr reads a nullable floating-point column.
func (r Record) Float64Ptr(key string) *float64 {
	if v, ok := r.Float64(key); ok {
		return &v
	}
	return nil
}

// StringPtr reads a nullable text column.
func (r Record) StringPtr(key string) *string {
	if v, ok := r.String(key); ok {
		return &v
	}
	return nil
}
