package dataset

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Record is a single parsed row: column name to raw value. Values may be
// strings (CSV/XLSX), json.Number or native numerics (JSON uploads).
type Record map[string]any

// RecordSet is an ordered sequence of rows from one upload.
type RecordSet []Record

// Columns returns the column names of the first record, sorted for stable
// iteration. An empty set has no columns.
func (rs RecordSet) Columns() []string {
	if len(rs) == 0 {
		return nil
	}
	names := make([]string, 0, len(rs[0]))
	for name := range rs[0] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Float coerces a raw cell value to float64. Accepts native numerics,
// json.Number, and numeric strings.
func Float(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// String coerces a raw cell value to its string form. Returns false for nil.
func String(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case nil:
		return "", false
	default:
		return "", false
	}
}
