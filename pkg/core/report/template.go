package report

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Format is the markup a report template is written in.
type Format int

const (
	FormatHTML Format = iota
	FormatMarkdown
)

// ParseFormat accepts "html", "markdown" and "md"; empty means html.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return FormatHTML, fmt.Errorf("unknown template format %q", s)
}

// Template is a named report body with {key} placeholders.
type Template struct {
	Name   string
	Body   string
	Format Format
}

// Rendered is a substituted template ready for display.
type Rendered struct {
	HTML       string   `json:"html"`
	Unresolved []string `json:"unresolved"`
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9]*)\}`)

// Substitute replaces every {key} found in the table. Values are HTML-escaped.
// Unknown placeholders are left in place.
func Substitute(body string, table Table) string {
	return placeholderRe.ReplaceAllStringFunc(body, func(m string) string {
		key := m[1 : len(m)-1]
		if v, ok := table[key]; ok {
			return html.EscapeString(v)
		}
		return m
	})
}

// Unresolved lists the distinct placeholders left in the text of an HTML
// document, sorted.
func Unresolved(document string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parse report html: %w", err)
	}

	seen := make(map[string]struct{})
	for _, m := range placeholderRe.FindAllStringSubmatch(doc.Text(), -1) {
		seen[m[1]] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// RenderMarkdown converts a markdown report body to HTML. Raw HTML in the
// body is passed through.
func RenderMarkdown(body string) (string, error) {
	md := goldmark.New(goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Render substitutes the table into a template and reports what is left over.
func Render(tmpl Template, table Table) (*Rendered, error) {
	out := Substitute(tmpl.Body, table)
	if tmpl.Format == FormatMarkdown {
		var err error
		if out, err = RenderMarkdown(out); err != nil {
			return nil, fmt.Errorf("template %s: %w", tmpl.Name, err)
		}
	}
	unresolved, err := Unresolved(out)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", tmpl.Name, err)
	}
	return &Rendered{HTML: out, Unresolved: unresolved}, nil
}
