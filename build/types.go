package main

import (
	"cmp"

	"sitefeeds/config"
	"sitefeeds/content"
)

// feedLink is an alternate link advertised in page heads
type feedLink struct {
	Type  string
	Title string
	URL   string
}

// siteData holds global site data
type siteData struct {
	*content.Site
	Settings *config.Settings
}

// FeedLinks returns the site-wide feeds that are enabled
func (s *siteData) FeedLinks() []feedLink {
	var links []feedLink
	add := func(mime, path string) {
		if path == "" {
			return
		}
		links = append(links, feedLink{
			Type:  mime,
			Title: s.Settings.SiteName,
			URL:   s.Settings.SiteURL + "/" + path,
		})
	}

	f := s.Settings.Feeds
	add("application/feed+json", cmp.Or(f.JSON.Feed, f.JSON.All))
	add("application/atom+xml", cmp.Or(f.Atom.Feed, f.Atom.All))
	add("application/rss+xml", cmp.Or(f.RSS.Feed, f.RSS.All))
	return links
}

// templateData is passed to templates
type templateData struct {
	Page *content.Entry
	Site *siteData
}
