package feeds

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"sitefeeds/config"
	"sitefeeds/content"
	"sitefeeds/jsonfeed"
)

// jsonFeed adapts a jsonfeed.Document to Feed
type jsonFeed struct {
	doc *jsonfeed.Document
}

// AddItem maps item onto the JSON feed item fields
func (j *jsonFeed) AddItem(item Item) error {
	return j.doc.AddItem(item.ID, jsonfeed.Values{
		"link":        item.Link,
		"title":       item.Title,
		"content":     item.Content,
		"summary":     item.Summary,
		"pubdate":     item.Published,
		"updateddate": item.Modified,
		"tags":        item.Tags,
		"author":      item.Author,
	})
}

// Len returns the number of items
func (j *jsonFeed) Len() int {
	return len(j.doc.Items())
}

// Write serializes the document
func (j *jsonFeed) Write(w io.Writer) error {
	return j.doc.Write(w)
}

// Document returns the underlying JSON feed document
func (j *jsonFeed) Document() *jsonfeed.Document {
	return j.doc
}

// Writer creates feed files under OutputDir
type Writer struct {
	OutputDir string
	Context   Context

	// MaxItems caps the items written per feed, 0 means no limit
	MaxItems int

	// Native builds every kind other than JSON
	Native Factory
}

// NewWriter creates a writer for the given settings
func NewWriter(s *config.Settings, outputDir string) *Writer {
	return &Writer{
		OutputDir: outputDir,
		Context: Context{
			SiteName: s.SiteName,
			SiteURL:  s.SiteURL,
			Subtitle: s.SiteSubtitle,
			Author:   s.Author,
			Favicon:  s.Favicon,
			Logo:     s.SiteLogo,
		},
		MaxItems: s.FeedMaxItems,
		Native:   NativeFactory{},
	}
}

// NewFeed creates an empty feed of kind for the file at feedPath. JSON
// feeds are built here, every other kind is left to the native factory.
func (w *Writer) NewFeed(kind Kind, qualifier, feedPath string) (Feed, error) {
	feedURL := w.Context.URL(feedPath)

	if kind != JSON {
		return w.native().NewFeed(kind, qualifier, w.Context, feedURL)
	}

	doc, err := jsonfeed.New(jsonfeed.Strip(w.Context.Title(qualifier)), jsonfeed.Values{
		"link":        w.Context.URL(""),
		"feed_url":    feedURL,
		"author":      w.Context.Author,
		"favicon":     w.Context.Favicon,
		"icon":        w.Context.Logo,
		"description": w.Context.Subtitle,
	})
	if err != nil {
		return nil, fmt.Errorf("creating json feed: %w", err)
	}

	return &jsonFeed{doc: doc}, nil
}

// native returns the factory for non-JSON kinds
func (w *Writer) native() Factory {
	if w.Native == nil {
		return NativeFactory{}
	}
	return w.Native
}

// WriteFeed writes entries, in the order given, as a kind feed at path
// relative to the output directory.
func (w *Writer) WriteFeed(entries []*content.Entry, path string, kind Kind, qualifier string) error {
	feed, err := w.NewFeed(kind, qualifier, path)
	if err != nil {
		return err
	}

	if w.MaxItems > 0 && len(entries) > w.MaxItems {
		entries = entries[:w.MaxItems]
	}

	for _, e := range entries {
		if err := feed.AddItem(w.item(e)); err != nil {
			slog.Error("adding feed item", "path", path, "entry", e.Path, "error", err)
			return fmt.Errorf("feed %s: %w", path, err)
		}
	}

	var buf bytes.Buffer
	if err := feed.Write(&buf); err != nil {
		slog.Error("serializing feed", "path", path, "error", err)
		return fmt.Errorf("feed %s: %w", path, err)
	}

	outputPath := filepath.Join(w.OutputDir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", outputPath, err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	slog.Debug("wrote feed", "kind", kind, "path", path, "items", feed.Len())
	return nil
}

// item converts an entry to a feed item
func (w *Writer) item(e *content.Entry) Item {
	link := w.Context.URL(e.URL)
	return Item{
		ID:        tagURI(link, e.Date),
		Link:      link,
		Title:     e.Title,
		Content:   string(e.Content),
		Summary:   e.Summary,
		Published: e.Date,
		Modified:  e.Modified,
		Tags:      e.TagNames(),
		Author:    e.Author.Name,
	}
}

// tagURI builds an RFC 4151 tag URI for link. Entries without a date or a
// host fall back to the link itself.
func tagURI(link string, date content.Date) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" || date.IsZero() {
		return link
	}
	path := u.Path
	if u.Fragment != "" {
		path += "/" + u.Fragment
	}
	return "tag:" + u.Hostname() + "," + date.DateOnly() + ":" + path
}
