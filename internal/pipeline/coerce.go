package pipeline

import (
	"strconv"
	"strings"
)

// CoerceOr converts a response value to float64, returning def when the
// value cannot be read as a number. Every numeric fallback in the
// pipeline goes through this one policy so that each default stays
// independently testable.
func CoerceOr(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return def
}
