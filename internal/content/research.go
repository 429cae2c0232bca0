// Package content holds the narrative views of the application: the research
// proposal, the factory design reference tables and the bibliography. None of
// them depend on the metrics model.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed narrative/*.md
var narrative embed.FS

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// ResearchMarkdown returns the research proposal source.
func ResearchMarkdown() ([]byte, error) {
	data, err := narrative.ReadFile("narrative/research.md")
	if err != nil {
		return nil, fmt.Errorf("failed to read research proposal: %w", err)
	}
	return data, nil
}

// ResearchHTML renders the research proposal to HTML.
func ResearchHTML() (template.HTML, error) {
	source, err := ResearchMarkdown()
	if err != nil {
		return "", err
	}
	return RenderMarkdown(source)
}

// RenderMarkdown converts Markdown to HTML. Raw HTML in the source is not
// passed through.
func RenderMarkdown(source []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
