package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/snagasawa/nippo/internal/dateutil"
)

// resolve produces the final string value for one field: data under the
// field's canonical key wins, then data under the field's own name, then
// the field default, then the required fallback table, then the generic
// unfilled marker for required fields.
func (e *Engine) resolve(field Field, data map[string]any) string {
	if v, ok := fieldValue(field, data); ok {
		if s := coerce(field.Type, v); s != "" {
			return s
		}
	}
	if field.Default != "" {
		return field.Default
	}
	if field.Required {
		if fallback, ok := e.fallbacks[field.Name]; ok {
			return fallback
		}
		return fmt.Sprintf("[必須フィールド '%s' が未入力です]", field.Name)
	}
	return ""
}

// fieldValue finds the data value for a field, preferring the alias
// target over the field's literal name.
func fieldValue(field Field, data map[string]any) (any, bool) {
	if v, ok := data[canonicalKey(field.Name)]; ok {
		return v, true
	}
	v, ok := data[field.Name]
	return v, ok
}

// coerce renders a data value according to the field type. List values
// become bulleted lines; date and datetime values are formatted in the
// Japanese report style; summary values project the text out of a
// summarization result map.
func coerce(fieldType string, v any) string {
	switch fieldType {
	case "list":
		return bulletList(v)
	case "summary":
		if m, ok := v.(map[string]any); ok {
			if s, ok := m["summary_text"]; ok {
				return asString(s)
			}
			if s, ok := m["summary"]; ok {
				return asString(s)
			}
		}
	case "date":
		if t, ok := asTime(v); ok {
			return dateutil.FormatJapanese(t)
		}
	case "datetime":
		if t, ok := asTime(v); ok {
			return dateutil.FormatJapaneseDateTime(t)
		}
	}
	return asString(v)
}

func bulletList(v any) string {
	items := asStrings(v)
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(item)
	}
	return b.String()
}

func asStrings(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := asString(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := dateutil.Parse(t); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case time.Time:
		return dateutil.FormatJapaneseDateTime(s)
	case []string:
		return strings.TrimSpace(strings.Join(s, "、"))
	case fmt.Stringer:
		return strings.TrimSpace(s.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", s))
	}
}
