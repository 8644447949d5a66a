// Package i18n holds the runtime translation table and its template
// rendering rules. Tables are immutable once loaded; a language switch
// replaces the whole table rather than mutating it.
package i18n

import "strings"

// Table maps dotted message keys to template strings for one language.
type Table map[string]string

// Lookup returns the template for key and whether it exists.
func (t Table) Lookup(key string) (string, bool) {
	tmpl, ok := t[key]
	return tmpl, ok
}

// Render substitutes {name}-style placeholders in template from params.
// Tokens without a matching param are left verbatim, so a missing variable
// shows up in the UI instead of silently blanking. Rendering never fails.
func Render(template string, params map[string]string) string {
	if len(params) == 0 || !strings.ContainsRune(template, '{') {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			b.WriteString(rest)
			return b.String()
		}
		closing += open

		name := rest[open+1 : closing]
		if value, ok := params[name]; ok {
			b.WriteString(rest[:open])
			b.WriteString(value)
		} else {
			b.WriteString(rest[:closing+1])
		}
		rest = rest[closing+1:]
	}
}
