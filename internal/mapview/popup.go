package mapview

import (
	"encoding/json"
	"regexp"
	"strconv"
)

var placeholderRegex = regexp.MustCompile(`\$\{(\w+)\}`)

// RenderPopup replaces ${key} placeholders with feature properties.
// Placeholders without a matching property are left as they are.
func RenderPopup(template string, props map[string]any) string {
	return placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderRegex.FindStringSubmatch(match)[1]
		value, ok := props[key]
		if !ok {
			return match
		}
		return FormatValue(value)
	})
}

// FormatValue renders a property value for display.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}

// DefaultPopup renders properties as a JSON object.
func DefaultPopup(props map[string]any) string {
	if props == nil {
		props = map[string]any{}
	}
	bs, _ := json.Marshal(props)
	return string(bs)
}
