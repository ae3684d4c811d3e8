// Package renderer turns performance reports into markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// PerformanceRenderOptions holds configuration for rendering a performance report.
type PerformanceRenderOptions struct {
	SkipDetails bool // Do not render the items of each category.
}

// RenderPerformance renders the Performance struct to a markdown string.
func RenderPerformance(p *Performance, opts PerformanceRenderOptions) string {
	partials := map[string]string{
		"performance_title":   "performance_title.md",
		"performance_summary": "performance_summary.md",
	}
	// An empty file name results in an empty template.
	if !opts.SkipDetails {
		partials["performance_details"] = "performance_details.md"
	} else {
		partials["performance_details"] = ""
	}
	return renderTemplate("performance", "performance.md", partials, p)
}

// RenderHolding renders the Holding struct to a markdown string.
func RenderHolding(h *Holding) string {
	partials := map[string]string{
		"holding_title":     "holding_title.md",
		"holding_accounts":  "holding_accounts.md",
		"holding_positions": "holding_positions.md",
	}
	return renderTemplate("holding", "holding.md", partials, h)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
