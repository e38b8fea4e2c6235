package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html
var files embed.FS

var parsed = template.Must(template.New("email").Funcs(template.FuncMap{
	"price": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).ParseFS(files, "*.html"))

var subjects = map[string]string{
	"confirmation": "Please confirm your reservation",
	"confirmed":    "Your reservation is confirmed",
}

// Render executes the named template and returns the subject line with the HTML body.
func Render(name string, data any) (subject, body string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}

	var buf bytes.Buffer
	if err := parsed.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render email template %q: %w", name, err)
	}

	return subject, buf.String(), nil
}
