package config

import (
	"fmt"
	"strings"

	"github.com/kvconnect/kvconnect/pkg/schema"
)

const redactedValue = "---redacted---"

// RenderYAML renders a resolved configuration as YAML in schema order, with
// option groups as indented blocks. With redact set, non-empty secret
// values are replaced so the output is safe to log.
func RenderYAML(resolved schema.Effective, redact bool) string {
	var lines []string
	renderFields("", connectionSchema.Fields(), map[string]any(resolved), redact, &lines)
	return strings.Join(lines, "\n") + "\n"
}

func renderFields(indent string, fields []schema.Field, values map[string]any, redact bool, lines *[]string) {
	for _, f := range fields {
		value, exists := values[f.Key]
		if !exists {
			continue
		}

		if f.Type == schema.TypeRecord {
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}
			*lines = append(*lines, fmt.Sprintf("%s%s:", indent, f.Key))
			renderFields(indent+"  ", f.Fields, nested, redact, lines)
			continue
		}

		if redact && f.Secret {
			if s, ok := value.(string); ok && s != "" {
				value = redactedValue
			}
		}
		*lines = append(*lines, indent+formatYAMLLine(f.Key, value))
	}
}

func formatYAMLLine(key string, value any) string {
	switch v := value.(type) {
	case nil:
		return fmt.Sprintf("%s:", key)
	case bool:
		return fmt.Sprintf("%s: %t", key, v)
	case string:
		if needsQuotes(v) || v == "" {
			return fmt.Sprintf("%s: \"%s\"", key, escapeString(v))
		}
		return fmt.Sprintf("%s: %s", key, v)
	default:
		return fmt.Sprintf("%s: %v", key, v)
	}
}

func needsQuotes(s string) bool {
	if s == "" {
		return false
	}
	special := []string{":", "#", "[", "]", "{", "}", ",", "&", "*", "!", "|", ">", "'", "\"", "%", "@", "`", "\n"}
	for _, char := range special {
		if strings.Contains(s, char) {
			return true
		}
	}
	return false
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return strings.ReplaceAll(s, "\n", "\\n")
}
