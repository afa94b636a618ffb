package content

import (
	"cmp"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Content paths
const (
	pathBlogDir = "blog"
	indexFile   = "index.md"
)

// Loader reads a content directory into a Site
type Loader struct {
	Dir         string
	DefaultLang string
	// Location is applied to dates written without an offset. Nil keeps them naive.
	Location *time.Location
}

// Load walks the content directory and collects all entries
func (l *Loader) Load() (*Site, error) {
	defaultLang, err := canonicalLang(l.DefaultLang)
	if err != nil {
		return nil, fmt.Errorf("default language: %w", err)
	}
	if defaultLang == "" {
		defaultLang = "en"
	}

	var entries []*Entry
	err = filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		e, err := l.loadEntry(path, defaultLang)
		if err != nil {
			return fmt.Errorf("collecting %s: %w", path, err)
		}
		if e != nil {
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if prev, ok := seen[e.URL]; ok {
			return nil, fmt.Errorf("%s and %s both resolve to %s", prev, e.Path, e.URL)
		}
		seen[e.URL] = e.Path
	}

	site := &Site{DefaultLang: defaultLang}

	articles := lo.Filter(entries, func(e *Entry, _ int) bool { return e.Kind == KindArticle })
	site.Pages = lo.Filter(entries, func(e *Entry, _ int) bool { return e.Kind != KindArticle })
	site.Articles, site.Translations = linkTranslations(articles, defaultLang)

	SortByDate(site.Articles)
	SortByDate(site.Translations)

	slog.Debug("content loaded",
		"articles", len(site.Articles),
		"translations", len(site.Translations),
		"pages", len(site.Pages))

	return site, nil
}

// loadEntry processes a single content file. Drafts return nil.
func (l *Loader) loadEntry(path, defaultLang string) (*Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	fm, body, _, err := splitFrontmatter(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}

	if fm.Draft {
		return nil, nil
	}

	e := &Entry{
		Title:          fm.Title,
		Summary:        fm.Description,
		Template:       fm.Template,
		MarkdownSource: raw,
		Content:        template.HTML(RenderMarkdown(body)),
		URL:            l.determineURL(path),
		Slug:           cmp.Or(fm.Slug, strings.TrimSuffix(filepath.Base(path), ".md")),
		Kind:           l.classifyPath(path),
		Path:           path,
		Category:       NewTaxon(fm.Category),
		Author:         NewTaxon(fm.Author),
	}

	if e.Date, err = ParseDate(fm.Date, l.Location); err != nil {
		return nil, err
	}
	if e.Modified, err = ParseDate(fm.Modified, l.Location); err != nil {
		return nil, err
	}

	if e.Lang, err = canonicalLang(fm.Lang); err != nil {
		return nil, err
	}
	if e.Lang == "" {
		e.Lang = defaultLang
	}

	for _, t := range fm.Tags {
		if tx := NewTaxon(t); !tx.IsZero() {
			e.Tags = append(e.Tags, tx)
		}
	}

	// For blog posts, derive title from filename if not set
	if e.Kind == KindArticle && e.Title == "" {
		e.Title = strings.ReplaceAll(e.Slug, "-", " ")
	}

	return e, nil
}

// linkTranslations splits articles into default-language articles and
// translations. Entries sharing a slug are versions of one article; the
// default-language version (or the first one found) owns the versions in
// other languages.
func linkTranslations(entries []*Entry, defaultLang string) (articles, translations []*Entry) {
	bySlug := lo.GroupBy(entries, func(e *Entry) string { return e.Slug })
	order := lo.Uniq(lo.Map(entries, func(e *Entry, _ int) string { return e.Slug }))

	for _, slug := range order {
		versions := bySlug[slug]
		idx := slices.IndexFunc(versions, func(e *Entry) bool { return e.Lang == defaultLang })
		if idx < 0 {
			idx = 0
		}

		primary := versions[idx]
		for i, v := range versions {
			if i == idx {
				continue
			}
			if v.Lang == primary.Lang {
				articles = append(articles, v)
				continue
			}
			primary.Translations = append(primary.Translations, v)
			translations = append(translations, v)
		}
		articles = append(articles, primary)
	}

	return articles, translations
}

// SortByDate stable-sorts entries newest first
func SortByDate(entries []*Entry) {
	slices.SortStableFunc(entries, func(a, b *Entry) int {
		return b.Date.Compare(a.Date)
	})
}

// classifyPath determines the type of content based on path
func (l *Loader) classifyPath(path string) Kind {
	rel := l.relPath(path)

	if rel == indexFile {
		return KindHome
	}

	if rel == pathBlogDir+string(filepath.Separator)+indexFile {
		return KindBlogIndex
	}

	if strings.HasPrefix(rel, pathBlogDir+string(filepath.Separator)) {
		return KindArticle
	}

	return KindPage
}

// relPath returns the path relative to the content directory
func (l *Loader) relPath(path string) string {
	rel, err := filepath.Rel(l.Dir, path)
	if err != nil {
		return path
	}
	return rel
}

// isDirIndex returns true if the path is a directory's index.md and extracts the directory name
func isDirIndex(rel string) (dir string, ok bool) {
	suffix := string(filepath.Separator) + indexFile
	if strings.HasSuffix(rel, suffix) {
		return strings.TrimSuffix(rel, suffix), true
	}
	return "", false
}

// OutputPath returns the HTML file path, relative to the output directory,
// for a content file
func (l *Loader) OutputPath(path string) string {
	rel := l.relPath(path)

	if rel == indexFile {
		return "index.html"
	}

	if dir, ok := isDirIndex(rel); ok {
		return dir + ".html"
	}

	return strings.TrimSuffix(rel, ".md") + ".html"
}

// determineURL determines the URL for a page
func (l *Loader) determineURL(path string) string {
	rel := l.relPath(path)

	if rel == indexFile {
		return "/"
	}

	if dir, ok := isDirIndex(rel); ok {
		return "/" + filepath.ToSlash(dir)
	}

	slug := strings.TrimSuffix(filepath.Base(rel), ".md")
	dir := filepath.Dir(rel)
	if dir == "." {
		return "/" + slug
	}
	return "/" + filepath.ToSlash(dir) + "/" + slug
}
