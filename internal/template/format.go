package template

import (
	"fmt"
	"html"
	"strings"

	"github.com/snagasawa/nippo/internal/dateutil"
)

// FormatOutput renders a filled template as text, markdown or html.
// Unknown formats render as text.
func FormatOutput(result *Result, format string) string {
	switch format {
	case "markdown":
		return formatMarkdown(result)
	case "html":
		return formatHTML(result)
	default:
		return formatText(result)
	}
}

func formatText(result *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "【%s】\n", result.TemplateName)
	fmt.Fprintf(&b, "作成日時: %s\n", dateutil.FormatJapaneseDateTime(result.GeneratedAt))
	for _, section := range result.Sections {
		fmt.Fprintf(&b, "\n■ %s\n", section.Title)
		for _, field := range section.Fields {
			if field.Value == "" {
				continue
			}
			if strings.Contains(field.Value, "\n") {
				fmt.Fprintf(&b, "%s:\n%s\n", field.Label, field.Value)
			} else {
				fmt.Fprintf(&b, "%s: %s\n", field.Label, field.Value)
			}
		}
	}
	return b.String()
}

func formatMarkdown(result *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", result.TemplateName)
	fmt.Fprintf(&b, "作成日時: %s\n", dateutil.FormatJapaneseDateTime(result.GeneratedAt))
	for _, section := range result.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n", section.Title)
		for _, field := range section.Fields {
			if field.Value == "" {
				continue
			}
			fmt.Fprintf(&b, "**%s**: %s\n\n", field.Label, field.Value)
		}
	}
	return b.String()
}

func formatHTML(result *Result) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"ja\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n</head>\n<body>\n", html.EscapeString(result.TemplateName))
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(result.TemplateName))
	fmt.Fprintf(&b, "<p>作成日時: %s</p>\n", dateutil.FormatJapaneseDateTime(result.GeneratedAt))
	for _, section := range result.Sections {
		fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(section.Title))
		b.WriteString("<dl>\n")
		for _, field := range section.Fields {
			if field.Value == "" {
				continue
			}
			fmt.Fprintf(&b, "<dt>%s</dt>\n<dd>%s</dd>\n",
				html.EscapeString(field.Label),
				strings.ReplaceAll(html.EscapeString(field.Value), "\n", "<br>"))
		}
		b.WriteString("</dl>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
