package main

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"sitefeeds/content"
)

// loadTemplates loads all HTML templates
func (b *builder) loadTemplates() error {
	basePath := filepath.Join(b.opts.TemplatesDir, "base.html")

	pageTemplates := []string{
		tmplHome + ".html",
		tmplPage + ".html",
		tmplBlogPost + ".html",
		tmplBlogIndex + ".html",
	}

	for _, name := range pageTemplates {
		tmplPath := filepath.Join(b.opts.TemplatesDir, name)
		tmpl, err := template.ParseFiles(basePath, tmplPath)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		b.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return nil
}

// templateName determines which template to use for an entry
func templateName(e *content.Entry) string {
	if e.Template != "" {
		return e.Template
	}

	switch e.Kind {
	case content.KindHome:
		return tmplHome
	case content.KindBlogIndex:
		return tmplBlogIndex
	case content.KindArticle:
		return tmplBlogPost
	default:
		return tmplPage
	}
}

// renderPages renders every page, article and translation
func (b *builder) renderPages(site *content.Site) error {
	sd := &siteData{Site: site, Settings: b.settings}

	for _, e := range slices.Concat(site.Pages, site.Articles, site.Translations) {
		outputPath := filepath.Join(b.opts.OutputDir, b.loader.OutputPath(e.Path))
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", outputPath, err)
		}

		name := templateName(e)
		tmpl, ok := b.templates[name]
		if !ok {
			if e.Template != "" {
				return fmt.Errorf("template %q not found for %s", name, e.Path)
			}
			tmpl = b.templates[tmplPage]
		}

		data := templateData{Page: e, Site: sd}
		if err := writeTemplate(outputPath, tmpl, data); err != nil {
			return fmt.Errorf("rendering %s: %w", e.Path, err)
		}

		// Write markdown version of the page
		if err := writeMarkdownPage(outputPath, e, site); err != nil {
			return fmt.Errorf("writing markdown for %s: %w", e.Path, err)
		}
	}
	return nil
}

// writeMarkdownPage writes the markdown version of a page next to its HTML
func writeMarkdownPage(htmlPath string, e *content.Entry, site *content.Site) error {
	mdOutputPath := strings.TrimSuffix(htmlPath, ".html") + ".md"

	var mdContent []byte
	if e.Kind == content.KindBlogIndex {
		mdContent = generateBlogIndexMarkdown(e, site)
	} else {
		// For regular pages, use the original markdown source
		mdContent = e.MarkdownSource
	}

	// Ensure file ends with a newline
	if len(mdContent) > 0 && mdContent[len(mdContent)-1] != '\n' {
		mdContent = append(mdContent, '\n')
	}

	return os.WriteFile(mdOutputPath, mdContent, 0644)
}

// yamlScalar formats a string as a properly escaped YAML scalar value
func yamlScalar(s string) string {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%q", s)
	}
	return strings.TrimSpace(string(data))
}

// writeFrontmatter writes YAML frontmatter with properly escaped values
func writeFrontmatter(sb *strings.Builder, e *content.Entry) {
	sb.WriteString("---\n")
	if e.Title != "" {
		sb.WriteString(fmt.Sprintf("title: %s\n", yamlScalar(e.Title)))
	}
	if e.Summary != "" {
		sb.WriteString(fmt.Sprintf("description: %s\n", yamlScalar(e.Summary)))
	}
	if !e.Date.IsZero() {
		sb.WriteString(fmt.Sprintf("date: %s\n", yamlScalar(e.Date.DateOnly())))
	}
	sb.WriteString("---\n\n")
}

// generateBlogIndexMarkdown generates markdown content for the blog index with articles
func generateBlogIndexMarkdown(e *content.Entry, site *content.Site) []byte {
	var sb strings.Builder

	writeFrontmatter(&sb, e)

	sb.WriteString("# blog\n\n")

	for _, a := range site.Articles {
		sb.WriteString(fmt.Sprintf("- %s [%s](%s)\n", a.Date.DateOnly(), a.Title, a.URL))
	}

	return []byte(sb.String())
}

// writeTemplate creates a file and executes a template to it
func writeTemplate[T interface{ Execute(w io.Writer, data any) error }](path string, tmpl T, data any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return tmpl.Execute(f, data)
}
