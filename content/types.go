package content

import (
	"html/template"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Kind represents the type of content path
type Kind int

const (
	KindHome Kind = iota
	KindBlogIndex
	KindArticle
	KindPage
)

// Entry represents a content file
type Entry struct {
	Title          string
	Summary        string
	Date           Date
	Modified       Date
	Content        template.HTML
	MarkdownSource []byte // Raw markdown content with frontmatter
	URL            string
	Slug           string
	Lang           string
	Template       string
	Draft          bool
	Kind           Kind
	Path           string // source path
	Category       Taxon
	Author         Taxon
	Tags           []Taxon

	// Translations holds the other-language versions of an article
	Translations []*Entry
}

// MarkdownURL returns the URL for the markdown version of this entry
func (e *Entry) MarkdownURL() string {
	if e.URL == "/" {
		return "/index.md"
	}
	return e.URL + ".md"
}

// TagNames returns the display names of the entry's tags
func (e *Entry) TagNames() []string {
	return lo.Map(e.Tags, func(t Taxon, _ int) string { return t.Name })
}

// Group is a named subset of entries
type Group struct {
	Taxon   Taxon
	Entries []*Entry
}

// Site holds everything loaded from the content directory
type Site struct {
	DefaultLang string

	// Articles are default-language blog posts, newest first
	Articles []*Entry

	// Translations are blog posts in other languages
	Translations []*Entry

	// Pages are all non-article entries
	Pages []*Entry
}

// Categories groups articles by category
func (s *Site) Categories() []Group {
	return groupBy(s.Articles, func(e *Entry) []Taxon {
		if e.Category.IsZero() {
			return nil
		}
		return []Taxon{e.Category}
	})
}

// Authors groups articles by author
func (s *Site) Authors() []Group {
	return groupBy(s.Articles, func(e *Entry) []Taxon {
		if e.Author.IsZero() {
			return nil
		}
		return []Taxon{e.Author}
	})
}

// Tags groups articles by tag, an article appears once under each of its tags
func (s *Site) Tags() []Group {
	return groupBy(s.Articles, func(e *Entry) []Taxon { return e.Tags })
}

// Languages groups articles and translations by language code
func (s *Site) Languages() []Group {
	all := slices.Concat(s.Articles, s.Translations)
	return groupBy(all, func(e *Entry) []Taxon {
		return []Taxon{{Name: e.Lang, Slug: e.Lang}}
	})
}

// AllArticles returns articles followed by each article's translations
func (s *Site) AllArticles() []*Entry {
	all := slices.Clone(s.Articles)
	for _, a := range s.Articles {
		all = append(all, a.Translations...)
	}
	return all
}

type membership struct {
	taxon Taxon
	entry *Entry
}

// groupBy collects entries under every taxon keys returns for them. Groups
// are ordered by slug and entries keep their input order.
func groupBy(entries []*Entry, keys func(*Entry) []Taxon) []Group {
	members := lo.FlatMap(entries, func(e *Entry, _ int) []membership {
		taxa := lo.UniqBy(keys(e), func(t Taxon) string { return t.Slug })
		return lo.Map(taxa, func(t Taxon, _ int) membership { return membership{taxon: t, entry: e} })
	})

	bySlug := lo.GroupBy(members, func(m membership) string { return m.taxon.Slug })

	groups := make([]Group, 0, len(bySlug))
	for _, ms := range bySlug {
		groups = append(groups, Group{
			Taxon:   ms[0].taxon,
			Entries: lo.Map(ms, func(m membership, _ int) *Entry { return m.entry }),
		})
	}

	slices.SortFunc(groups, func(a, b Group) int {
		return strings.Compare(a.Taxon.Slug, b.Taxon.Slug)
	})
	return groups
}
