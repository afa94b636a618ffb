// Package feeds turns site content into feed files.
//
// Writer is the single place a feed file is created: it picks the feed
// implementation for a Kind (JSON Feed documents, or the gorilla/feeds
// backed RSS and Atom feeds for everything else), fills it and writes it.
// Generator decides which feeds exist and which entries go in each.
package feeds

import (
	"fmt"
	"io"
	"strings"

	"sitefeeds/content"
)

// Kind is a feed format
type Kind int

const (
	RSS Kind = iota
	Atom
	JSON
)

// Kinds lists every feed format in generation order
var Kinds = []Kind{JSON, Atom, RSS}

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case RSS:
		return "rss"
	case Atom:
		return "atom"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind returns the Kind named s
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "rss":
		return RSS, nil
	case "atom":
		return Atom, nil
	case "json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("unknown feed kind %q", s)
	}
}

// Item is one entry as handed to a feed
type Item struct {
	ID        string
	Link      string
	Title     string
	Content   string
	Summary   string
	Published content.Date
	Modified  content.Date
	Tags      []string
	Author    string
}

// Feed is a feed being built. It is filled item by item and written once.
type Feed interface {
	AddItem(item Item) error
	Len() int
	Write(w io.Writer) error
}

// Context is the site metadata feeds are decorated with
type Context struct {
	SiteName string
	SiteURL  string
	Subtitle string
	Author   string
	Favicon  string
	Logo     string
}

// Title returns the site name, followed by qualifier when one is given
func (c Context) Title(qualifier string) string {
	if qualifier == "" {
		return c.SiteName
	}
	return c.SiteName + " - " + qualifier
}

// URL returns the absolute URL of a site path
func (c Context) URL(path string) string {
	return c.SiteURL + "/" + strings.TrimPrefix(path, "/")
}
