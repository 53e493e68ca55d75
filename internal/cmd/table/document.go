package table

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// maxValueWidth caps rendered document values so nested structures do not
// wrap the terminal; wide output lifts the cap.
const maxValueWidth = 80

// Document renders one decoded portal document (an order or a patient) as a
// sorted Field/Value table. Scalars print as-is; nested maps and slices are
// shown as compact JSON so each field stays on one row.
func Document(doc map[string]any, wide bool) Data {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		value := documentValue(doc[k])
		if !wide {
			value = Truncate(value, maxValueWidth)
		}
		rows = append(rows, []string{k, value})
	}

	return Data{
		Headers:         []string{"Field", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// documentValue formats a single decoded JSON value for a table cell.
func documentValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
