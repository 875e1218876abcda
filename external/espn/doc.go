package espn

import (
	"math"
	"strconv"
	"strings"
)

// The upstream documents are decoded schema-less. These readers never panic
// and fall back to zero values when a field is missing or has another shape.

func asMap(raw any) map[string]any {
	m, _ := raw.(map[string]any)
	return m
}

func asSlice(raw any) []any {
	s, _ := raw.([]any)
	return s
}

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	return asMap(src[key])
}

func getSlice(src map[string]any, key string) []any {
	if src == nil {
		return nil
	}
	return asSlice(src[key])
}

// dig walks nested objects, e.g. dig(c, "batter", "athlete").
func dig(src map[string]any, keys ...string) map[string]any {
	cur := src
	for _, key := range keys {
		cur = getMap(cur, key)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func firstMap(items []any) map[string]any {
	if len(items) == 0 {
		return nil
	}
	return asMap(items[0])
}

func mapAt(items []any, idx int) map[string]any {
	if idx < 0 || idx >= len(items) {
		return nil
	}
	return asMap(items[idx])
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	switch typed := src[key].(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

func getBool(src map[string]any, key string) bool {
	if src == nil {
		return false
	}
	v, _ := src[key].(bool)
	return v
}

func getInt(src map[string]any, key string) int {
	if src == nil {
		return 0
	}
	return asInt(src[key])
}

func getFloat(src map[string]any, key string) float64 {
	if src == nil {
		return 0
	}
	return asFloat64(src[key])
}

// asInt parses numbers and numeric strings. Anything else is 0.
func asInt(raw any) int {
	v, ok := parseNumber(raw)
	if !ok {
		return 0
	}
	return int(v)
}

func asFloat64(raw any) float64 {
	v, _ := parseNumber(raw)
	return v
}

func parseNumber(raw any) (float64, bool) {
	var v float64
	switch typed := raw.(type) {
	case float64:
		v = typed
	case float32:
		v = float64(typed)
	case int:
		v = float64(typed)
	case int64:
		v = float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if v := strings.TrimSpace(item); v != "" {
			return v
		}
	}
	return ""
}

// logoOf prefers a direct logo and falls back to the first logos entry.
func logoOf(src map[string]any) string {
	return firstNonEmpty(getString(src, "logo"), getString(firstMap(getSlice(src, "logos")), "href"))
}

func colorOf(src map[string]any, key, fallback string) string {
	if c := getString(src, key); c != "" {
		return "#" + strings.TrimPrefix(c, "#")
	}
	return fallback
}
