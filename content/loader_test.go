package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}
}

func loadSite(t *testing.T, files map[string]string) *Site {
	t.Helper()
	dir := t.TempDir()
	writeContent(t, dir, files)

	site, err := (&Loader{Dir: dir, DefaultLang: "en"}).Load()
	require.NoError(t, err)
	return site
}

func slugs(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Lang + ":" + e.Slug
	}
	return out
}

func TestLoad(t *testing.T) {
	site := loadSite(t, map[string]string{
		"index.md":      "---\ntitle: home\n---\n\nwelcome",
		"about.md":      "---\ntitle: about\n---\n\nme",
		"blog/index.md": "---\ntitle: blog\n---\n",
		"blog/first.md": "---\ntitle: First\ndate: 2020-01-01\ncategory: Go Tips\nauthor: Ada\ntags: [a, b]\n---\n\n# Hi\n",
		"blog/second.md": "---\ntitle: Second\ndate: 2021-06-01T10:00:00+02:00\n" +
			"category: Go Tips\ntags: b, c\n---\n\ntext",
		"blog/second-fr.md": "---\ntitle: Deuxième\nslug: second\nlang: fr\ndate: 2021-06-02\n---\n\ntexte",
		"blog/draft.md":     "---\ntitle: Draft\ndraft: true\n---\n",
		"blog/untitled-post.md": "---\ndate: 2019-05-05\n---\n",
	})

	assert.Equal(t, "en", site.DefaultLang)
	assert.Equal(t, []string{"en:second", "en:first", "en:untitled-post"}, slugs(site.Articles))
	assert.Equal(t, []string{"fr:second"}, slugs(site.Translations))
	assert.Len(t, site.Pages, 3)

	second := site.Articles[0]
	require.Len(t, second.Translations, 1)
	assert.Equal(t, "Deuxième", second.Translations[0].Title)
	assert.True(t, second.Date.HasZone)
	assert.Equal(t, []string{"b", "c"}, second.TagNames())
	assert.Equal(t, "/blog/second", second.URL)

	first := site.Articles[1]
	assert.False(t, first.Date.HasZone)
	assert.Equal(t, Taxon{Name: "Go Tips", Slug: "go-tips"}, first.Category)
	assert.Equal(t, Taxon{Name: "Ada", Slug: "ada"}, first.Author)
	assert.Contains(t, string(first.Content), "<h1")

	assert.Equal(t, "untitled post", site.Articles[2].Title)
}

func TestLoadLocalizesNaiveDates(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, map[string]string{
		"blog/post.md": "---\ndate: 2020-01-01 12:00\n---\n",
	})

	loc := time.FixedZone("test", 3*60*60)
	site, err := (&Loader{Dir: dir, Location: loc}).Load()
	require.NoError(t, err)
	require.Len(t, site.Articles, 1)

	d := site.Articles[0].Date
	assert.True(t, d.HasZone)
	assert.Equal(t, "2020-01-01T12:00:00+03:00", d.String())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{name: "bad yaml", files: map[string]string{"blog/post.md": "---\ntitle: [\n---\n"}},
		{name: "bad date", files: map[string]string{"blog/post.md": "---\ndate: not a date\n---\n"}},
		{name: "bad lang", files: map[string]string{"blog/post.md": "---\nlang: not_a_language_code!\n---\n"}},
		{name: "bad tags", files: map[string]string{"blog/post.md": "---\ntags:\n  a: b\n---\n"}},
		{name: "duplicate url", files: map[string]string{
			"blog/hello.md":       "---\ndate: 2020-01-01\n---\n",
			"blog/hello/index.md": "---\ndate: 2020-01-01\n---\n",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeContent(t, dir, tt.files)

			_, err := (&Loader{Dir: dir}).Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDuplicateURLNamesBothFiles(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, map[string]string{
		"blog/hello.md":       "---\ntitle: One\n---\n",
		"blog/hello/index.md": "---\ntitle: Two\n---\n",
	})

	_, err := (&Loader{Dir: dir}).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join("blog", "hello.md"))
	assert.Contains(t, err.Error(), filepath.Join("blog", "hello", "index.md"))
	assert.Contains(t, err.Error(), "/blog/hello")
}

func TestGroupings(t *testing.T) {
	mk := func(slug, lang string, cat string, tags ...string) *Entry {
		e := &Entry{Slug: slug, Lang: lang, Category: NewTaxon(cat), Author: NewTaxon("Ada")}
		for _, tg := range tags {
			e.Tags = append(e.Tags, NewTaxon(tg))
		}
		return e
	}

	a := mk("a", "en", "Zeta", "x", "y")
	b := mk("b", "en", "Alpha", "y")
	c := mk("c", "en", "", "x", "X")
	fr := mk("a", "fr", "Zeta")
	a.Translations = []*Entry{fr}

	site := &Site{DefaultLang: "en", Articles: []*Entry{a, b, c}, Translations: []*Entry{fr}}

	cats := site.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "alpha", cats[0].Taxon.Slug)
	assert.Equal(t, []*Entry{b}, cats[0].Entries)
	assert.Equal(t, []*Entry{a}, cats[1].Entries)

	tags := site.Tags()
	require.Len(t, tags, 2)
	assert.Equal(t, []*Entry{a, c}, tags[0].Entries)
	assert.Equal(t, []*Entry{a, b}, tags[1].Entries)

	authors := site.Authors()
	require.Len(t, authors, 1)
	assert.Len(t, authors[0].Entries, 3)

	langs := site.Languages()
	require.Len(t, langs, 2)
	assert.Equal(t, "en", langs[0].Taxon.Slug)
	assert.Equal(t, []*Entry{fr}, langs[1].Entries)

	assert.Equal(t, []*Entry{a, b, c, fr}, site.AllArticles())
}

func TestSortByDateIsStable(t *testing.T) {
	day := func(d int) Date { return Date{Time: time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC)} }

	e1 := &Entry{Slug: "1", Date: day(1)}
	e2 := &Entry{Slug: "2", Date: day(2)}
	e3 := &Entry{Slug: "3", Date: day(2)}
	e4 := &Entry{Slug: "4", Date: day(3)}

	entries := []*Entry{e1, e2, e3, e4}
	SortByDate(entries)
	assert.Equal(t, []*Entry{e4, e2, e3, e1}, entries)
}
