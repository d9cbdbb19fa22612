package categories

import "regexp"

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Render substitutes every {{key}} token in the category template with
// payload[key]. Absent keys render as the empty string.
func Render(cat Category, payload map[string]string) string {
	if cat.Template == "" {
		return ""
	}
	return placeholderPattern.ReplaceAllStringFunc(cat.Template, func(token string) string {
		key := placeholderPattern.FindStringSubmatch(token)[1]
		return payload[key]
	})
}
