// Package jsonfeed builds JSON Feed version 1 documents.
//
// A Document is filled from loosely named values (the names a site
// generator uses for its own entries) through the field tables in
// fields.go. Values that are missing or empty are left out of the output
// instead of being written as null.
package jsonfeed

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Version is the JSON Feed version URI written to every document
const Version = "https://jsonfeed.org/version/1"

// ErrMissingID is returned when an item is added without a unique id
var ErrMissingID = errors.New("item id is required")

// Document is a single JSON feed. It lives for one generation pass.
type Document struct {
	title string
	meta  *Object
	items []*Object
}

// New creates a document titled title with site metadata taken from values
// through TopLevelFields.
func New(title string, values Values) (*Document, error) {
	d := &Document{title: title, meta: NewObject()}
	if err := Enrich(d.meta, TopLevelFields, values); err != nil {
		return nil, err
	}
	return d, nil
}

// Title returns the feed title
func (d *Document) Title() string {
	return d.title
}

// Meta returns the top-level metadata set on the document
func (d *Document) Meta() *Object {
	return d.meta
}

// AddItem appends an item record built from values through ItemFields
func (d *Document) AddItem(id string, values Values) error {
	if id == "" {
		return ErrMissingID
	}

	item := NewObject()
	item.Set("id", id)
	if err := Enrich(item, ItemFields, values); err != nil {
		return fmt.Errorf("item %s: %w", id, err)
	}

	d.items = append(d.items, item)
	return nil
}

// Items returns the item records in the order they were added
func (d *Document) Items() []*Object {
	return d.items
}

// MarshalJSON writes version, title, metadata and items in that order
func (d *Document) MarshalJSON() ([]byte, error) {
	out := NewObject()
	out.Set("version", Version)
	out.Set("title", d.title)
	for _, k := range d.meta.Keys() {
		v, _ := d.meta.Get(k)
		out.Set(k, v)
	}

	items := d.items
	if items == nil {
		items = []*Object{}
	}
	out.Set("items", items)

	return out.MarshalJSON()
}

// Write serializes the document to w as UTF-8 JSON
func (d *Document) Write(w io.Writer) error {
	data, err := encode(d)
	if err != nil {
		slog.Error("encoding feed", "title", d.title, "error", err)
		return fmt.Errorf("encoding feed %q: %w", d.title, err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing feed %q: %w", d.title, err)
	}
	return nil
}
