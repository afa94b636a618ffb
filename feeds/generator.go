package feeds

import (
	"fmt"
	"log/slog"
	"slices"

	"sitefeeds/config"
	"sitefeeds/content"
)

// FeedWriter writes one feed file
type FeedWriter interface {
	WriteFeed(entries []*content.Entry, path string, kind Kind, qualifier string) error
}

// Generator selects the feeds to write from the site settings
type Generator struct {
	Settings *config.Settings
	Writer   FeedWriter
}

// paths returns the path templates configured for kind
func (g *Generator) paths(kind Kind) config.FeedPaths {
	switch kind {
	case JSON:
		return g.Settings.Feeds.JSON
	case Atom:
		return g.Settings.Feeds.Atom
	default:
		return g.Settings.Feeds.RSS
	}
}

// GenerateAll writes the feeds of every kind
func (g *Generator) GenerateAll(site *content.Site) error {
	for _, kind := range Kinds {
		if err := g.Generate(site, kind); err != nil {
			return fmt.Errorf("%s feeds: %w", kind, err)
		}
	}
	return nil
}

// Generate writes every enabled feed of one kind. Entries are sorted newest
// first right before each feed is written; the site itself is not reordered.
func (g *Generator) Generate(site *content.Site, kind Kind) error {
	paths := g.paths(kind)
	count := 0

	write := func(entries []*content.Entry, path, qualifier string) error {
		sorted := slices.Clone(entries)
		content.SortByDate(sorted)
		count++
		return g.Writer.WriteFeed(sorted, path, kind, qualifier)
	}

	if paths.Feed != "" {
		if err := write(site.Articles, paths.Feed, ""); err != nil {
			return err
		}
	}

	if paths.All != "" {
		if err := write(site.AllArticles(), paths.All, ""); err != nil {
			return err
		}
	}

	grouped := []struct {
		tmpl   string
		groups func() []content.Group
		titled bool
	}{
		{paths.Category, site.Categories, true},
		{paths.Author, site.Authors, true},
		{paths.Tag, site.Tags, true},
		{paths.Translation, site.Languages, false},
	}

	for _, gr := range grouped {
		if gr.tmpl == "" {
			continue
		}
		for _, grp := range gr.groups() {
			qualifier := ""
			if gr.titled {
				qualifier = grp.Taxon.Name
			}
			if err := write(grp.Entries, config.Path(gr.tmpl, grp.Taxon.Slug), qualifier); err != nil {
				return err
			}
		}
	}

	slog.Info("generated feeds", "kind", kind, "count", count)
	return nil
}
