package render

import (
	"strings"
	"text/template"
)

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// FuncMap returns template helpers for YAML rendering.
func FuncMap(lookup LookupFunc, tracker *EnvTracker) template.FuncMap {
	return template.FuncMap{
		"env": func(key string) string {
			value, ok := lookup(key)
			if !ok {
				tracker.markMissing(key)
			}
			return value
		},
		"envOr": func(key, def string) string {
			if value, ok := lookup(key); ok && value != "" {
				return value
			}
			return def
		},
		"default": func(def, value string) string {
			if value == "" {
				return def
			}
			return value
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
