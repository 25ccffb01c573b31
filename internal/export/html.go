// Package export renders a document view to a standalone HTML page,
// preserving the article layout of the web portal for offline sharing.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"govlens/internal/session"
)

// pageTemplate is the standalone export page shell.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Language}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 760px; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
.meta { color: #555; font-size: 0.9rem; margin-bottom: 1.5rem; }
.phase { border-left: 3px solid #888; padding-left: 1rem; margin: 1rem 0; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`

type pageData struct {
	Language string
	Title    string
	Body     template.HTML
}

// HTML renders view as a complete HTML document. The view is composed
// into markdown first so the body goes through the same renderer as the
// rest of the portal's generated pages.
func HTML(view *session.DocumentView) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("no document view to export")
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	var htmlBuf bytes.Buffer
	if err := md.Convert([]byte(compose(view)), &htmlBuf); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	var out bytes.Buffer
	err = tmpl.Execute(&out, pageData{
		Language: view.Language,
		Title:    view.Title,
		Body:     template.HTML(htmlBuf.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	return out.Bytes(), nil
}

// compose lays the view out as markdown: title, metadata line, summary,
// key points, timeline phases, then the legislative journey.
func compose(view *session.DocumentView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", view.Title)

	var meta []string
	if view.Category != "" {
		meta = append(meta, view.Category)
	}
	if view.Ministry != "" {
		meta = append(meta, view.Ministry)
	}
	if view.Published != "" {
		meta = append(meta, view.Published)
	}
	if view.PageCount > 0 {
		meta = append(meta, fmt.Sprintf("%d pages", view.PageCount))
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "*%s*\n\n", strings.Join(meta, " | "))
	}

	fmt.Fprintf(&b, "%s\n\n", view.Summary)

	if len(view.KeyPoints) > 0 {
		b.WriteString("## Key points\n\n")
		for _, kp := range view.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", kp)
		}
		b.WriteString("\n")
	}

	for _, phase := range view.Phases {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", phase.Title, phase.Summary)
		for _, kp := range phase.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", kp)
		}
		b.WriteString("\n")
	}

	if view.Journey != "" {
		fmt.Fprintf(&b, "## Legislative journey\n\n%s\n", view.Journey)
	}

	return b.String()
}
