package feeds

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitefeeds/config"
	"sitefeeds/content"
)

type written struct {
	path      string
	kind      Kind
	qualifier string
	entries   []*content.Entry
}

type recordingWriter struct {
	feeds  []written
	failOn string
}

func (r *recordingWriter) WriteFeed(entries []*content.Entry, path string, kind Kind, qualifier string) error {
	if path == r.failOn {
		return errors.New("disk full")
	}
	r.feeds = append(r.feeds, written{path: path, kind: kind, qualifier: qualifier, entries: entries})
	return nil
}

func (r *recordingWriter) byPath() map[string]written {
	out := make(map[string]written, len(r.feeds))
	for _, f := range r.feeds {
		out[f.path] = f
	}
	return out
}

func testSite() *content.Site {
	day := func(d int) time.Time { return time.Date(2022, 3, d, 12, 0, 0, 0, time.UTC) }

	a := entry("a", day(1), "go")
	a.Category = content.NewTaxon("Go Tips")
	b := entry("b", day(3), "go", "web")
	b.Category = content.NewTaxon("Web")
	c := entry("c", day(3), "web")
	c.Category = content.NewTaxon("Web")
	c.Author = content.NewTaxon("Grace Hopper")

	aFr := entry("a", day(5))
	aFr.Lang = "fr"
	aDe := entry("a", day(2))
	aDe.Lang = "de"
	a.Translations = []*content.Entry{aFr, aDe}

	return &content.Site{
		DefaultLang:  "en",
		Articles:     []*content.Entry{a, b, c},
		Translations: []*content.Entry{aFr, aDe},
	}
}

func allPaths() config.FeedPaths {
	return config.FeedPaths{
		Feed:        "feeds/index.json",
		All:         "feeds/all.json",
		Category:    "feeds/category/{slug}.json",
		Author:      "feeds/author/%s.json",
		Tag:         "feeds/tag/{slug}.json",
		Translation: "feeds/all-{slug}.json",
	}
}

func TestGenerate(t *testing.T) {
	s := config.Default()
	s.Feeds.JSON = allPaths()

	rec := &recordingWriter{}
	g := &Generator{Settings: s, Writer: rec}
	site := testSite()

	require.NoError(t, g.Generate(site, JSON))

	feeds := rec.byPath()
	assert.ElementsMatch(t, []string{
		"feeds/index.json",
		"feeds/all.json",
		"feeds/category/go-tips.json",
		"feeds/category/web.json",
		"feeds/author/ada.json",
		"feeds/author/grace-hopper.json",
		"feeds/tag/go.json",
		"feeds/tag/web.json",
		"feeds/all-de.json",
		"feeds/all-en.json",
		"feeds/all-fr.json",
	}, keys(feeds))

	for _, f := range rec.feeds {
		assert.Equal(t, JSON, f.kind)
	}

	// b and c share a date and keep their input order
	assert.Equal(t, []string{"b", "c", "a"}, entrySlugs(feeds["feeds/index.json"].entries))
	assert.Empty(t, feeds["feeds/index.json"].qualifier)

	all := feeds["feeds/all.json"].entries
	assert.Len(t, all, len(site.Articles)+len(site.Articles[0].Translations))
	assert.Equal(t, []string{"fr:a", "en:b", "en:c", "de:a", "en:a"}, langSlugs(all))

	assert.Equal(t, "Web", feeds["feeds/category/web.json"].qualifier)
	assert.Equal(t, "Grace Hopper", feeds["feeds/author/grace-hopper.json"].qualifier)
	assert.Equal(t, []string{"b", "a"}, entrySlugs(feeds["feeds/tag/go.json"].entries))
	assert.Empty(t, feeds["feeds/all-fr.json"].qualifier)
	assert.Len(t, feeds["feeds/all-en.json"].entries, 3)

	// the site itself is left in its loaded order
	assert.Equal(t, []string{"a", "b", "c"}, entrySlugs(site.Articles))
}

func TestGenerateSkipsDisabledFeeds(t *testing.T) {
	s := config.Default()
	s.Feeds.JSON = config.FeedPaths{Tag: "tags/{slug}.json"}

	rec := &recordingWriter{}
	g := &Generator{Settings: s, Writer: rec}
	require.NoError(t, g.Generate(testSite(), JSON))
	assert.ElementsMatch(t, []string{"tags/go.json", "tags/web.json"}, keys(rec.byPath()))

	rec = &recordingWriter{}
	g.Writer = rec
	require.NoError(t, g.Generate(testSite(), RSS))
	assert.Empty(t, rec.feeds)
}

func TestGenerateStopsOnError(t *testing.T) {
	s := config.Default()
	s.Feeds.JSON = allPaths()

	rec := &recordingWriter{failOn: "feeds/category/web.json"}
	g := &Generator{Settings: s, Writer: rec}

	err := g.GenerateAll(testSite())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	// feeds written before the failure are kept
	assert.Contains(t, keys(rec.byPath()), "feeds/category/go-tips.json")
	assert.NotContains(t, keys(rec.byPath()), "feeds/tag/go.json")
}

func TestGenerateAllWritesFiles(t *testing.T) {
	dir := t.TempDir()
	s := testSettings()
	s.Feeds.RSS.Feed = "feeds/all.rss.xml"

	g := &Generator{Settings: s, Writer: NewWriter(s, dir)}
	site := testSite()
	require.NoError(t, g.GenerateAll(site))

	for _, p := range []string{
		"feeds/all.json",
		"feeds/go-tips.json",
		"feeds/web.json",
		"feeds/all-fr.json",
		"feeds/all.atom.xml",
		"feeds/web.atom.xml",
		"feeds/all-de.atom.xml",
		"feeds/all.rss.xml",
	} {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(p)))
	}

	data, err := os.ReadFile(filepath.Join(dir, "feeds", "all.json"))
	require.NoError(t, err)

	var doc struct {
		Items []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Items, len(site.AllArticles()))
}

func keys(m map[string]written) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func entrySlugs(entries []*content.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Slug
	}
	return out
}

func langSlugs(entries []*content.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Lang + ":" + e.Slug
	}
	return out
}
