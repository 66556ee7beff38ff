// Package mailtmpl renders HTML email templates that use {{key}} placeholders.
package mailtmpl

import (
	"embed"
	"fmt"
	"html"
	"regexp"
)

// ContactConfirmation is the template sent to both parties of a submission.
const ContactConfirmation = "contact-confirmation"

//go:embed templates/*.html
var files embed.FS

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Render substitutes every {{key}} in tmpl with vars[key]. Placeholders with
// no matching key are left untouched.
func Render(tmpl string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := vars[key]; ok {
			return v
		}
		return m
	})
}

// RenderHTML loads the named embedded template and renders it with
// HTML-escaped values.
func RenderHTML(name string, vars map[string]string) (string, error) {
	raw, err := files.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("load template %s: %w", name, err)
	}
	escaped := make(map[string]string, len(vars))
	for k, v := range vars {
		escaped[k] = html.EscapeString(v)
	}
	return Render(string(raw), escaped), nil
}

// Placeholders lists the distinct keys referenced by tmpl, in order of first use.
func Placeholders(tmpl string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}
