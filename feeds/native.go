package feeds

import (
	"fmt"
	"io"

	gfeeds "github.com/gorilla/feeds"

	"sitefeeds/jsonfeed"
)

// Factory creates a feed of the given kind
type Factory interface {
	NewFeed(kind Kind, qualifier string, ctx Context, feedURL string) (Feed, error)
}

// NativeFactory builds the RSS and Atom feeds the generator supports on its own
type NativeFactory struct{}

// NewFeed creates an empty RSS or Atom feed
func (NativeFactory) NewFeed(kind Kind, qualifier string, ctx Context, feedURL string) (Feed, error) {
	if kind != RSS && kind != Atom {
		return nil, fmt.Errorf("no native %s feed", kind)
	}

	f := &gfeeds.Feed{
		Title:       jsonfeed.Strip(ctx.Title(qualifier)),
		Link:        &gfeeds.Link{Href: ctx.URL("")},
		Description: ctx.Subtitle,
		Id:          feedURL,
	}
	if ctx.Author != "" {
		f.Author = &gfeeds.Author{Name: ctx.Author}
	}
	if ctx.Logo != "" {
		f.Image = &gfeeds.Image{Url: ctx.Logo, Title: f.Title, Link: f.Link.Href}
	}

	return &NativeFeed{Kind: kind, Feed: f}, nil
}

// NativeFeed is an RSS or Atom feed backed by gorilla/feeds
type NativeFeed struct {
	Kind Kind
	Feed *gfeeds.Feed
}

// AddItem appends item and advances the feed updated time
func (n *NativeFeed) AddItem(item Item) error {
	gi := &gfeeds.Item{
		Id:          item.ID,
		Title:       item.Title,
		Link:        &gfeeds.Link{Href: item.Link},
		Description: item.Summary,
		Content:     item.Content,
		Created:     item.Published.Time,
		Updated:     item.Modified.Time,
	}
	if item.Author != "" {
		gi.Author = &gfeeds.Author{Name: item.Author}
	}

	n.Feed.Add(gi)
	if n.Feed.Updated.Before(gi.Created) {
		n.Feed.Updated = gi.Created
	}
	return nil
}

// Len returns the number of items
func (n *NativeFeed) Len() int {
	return len(n.Feed.Items)
}

// Write serializes the feed as Atom or RSS
func (n *NativeFeed) Write(w io.Writer) error {
	switch n.Kind {
	case Atom:
		return n.Feed.WriteAtom(w)
	default:
		return n.Feed.WriteRss(w)
	}
}
