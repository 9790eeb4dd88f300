// Package renderer turns reports into markdown.
package renderer

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/*.md
var templates embed.FS

// Now is the current time used in reports.
// it has to be overridable so that tests can pin it.
func Now() time.Time {
	if os.Getenv("WEEKLYPERF_TESTING_NOW") != "" {
		t, err := time.Parse("2006-01-02 15:04:05", os.Getenv("WEEKLYPERF_TESTING_NOW"))
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

// renderTemplate renders one embedded template file with the given data.
func renderTemplate(name string, data any) string {
	content, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", name, err)
	}
	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}
