package notify

import "strings"

// RenderTemplate substitutes {name} placeholders from vars. If the template
// references a placeholder that vars does not define, the template is
// returned unexpanded so a misconfigured template never blocks dispatch.
func RenderTemplate(template string, vars map[string]string) string {
	if template == "" {
		return ""
	}

	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		name := rest[open+1 : open+end]
		value, ok := vars[name]
		if !ok {
			return template
		}
		b.WriteString(rest[:open])
		b.WriteString(value)
		rest = rest[open+end+1:]
	}
}
