package jsonfeed

import (
	"fmt"
	"log/slog"
)

// Field maps a named source value to a key of the output document
type Field struct {
	Source    string
	Key       string
	Transform Transform
}

// Values holds the named candidate values a record is built from
type Values map[string]any

// TopLevelFields maps site metadata onto the feed object
var TopLevelFields = []Field{
	{Source: "link", Key: "home_page_url"},
	{Source: "feed_url", Key: "feed_url"},
	{Source: "description", Key: "description", Transform: StripMarkup},
	{Source: "favicon", Key: "favicon"},
	{Source: "icon", Key: "icon"},
	{Source: "author", Key: "author", Transform: WrapAuthor},
}

// ItemFields maps entry attributes onto an item record. The unique id is
// not part of the table, it is always written first by AddItem.
var ItemFields = []Field{
	{Source: "link", Key: "url"},
	{Source: "title", Key: "title"},
	{Source: "content", Key: "content_html"},
	{Source: "summary", Key: "summary", Transform: StripMarkup},
	{Source: "pubdate", Key: "date_published", Transform: Timestamp},
	{Source: "updateddate", Key: "date_modified", Transform: Timestamp},
	{Source: "tags", Key: "tags", Transform: StringList},
	{Source: "author", Key: "author", Transform: WrapAuthor},
}

// Enrich copies every present and truthy value named in fields into dst.
// Missing or empty values leave no key behind.
func Enrich(dst *Object, fields []Field, values Values) error {
	for _, f := range fields {
		v, ok := values[f.Source]
		if !ok || !truthy(v) {
			continue
		}
		slog.Debug("mapping field", "source", f.Source, "key", f.Key, "value", v)

		out, err := Apply(f.Transform, v)
		if err != nil {
			slog.Error("transforming field", "source", f.Source, "value", fmt.Sprintf("%v", v), "error", err)
			return fmt.Errorf("field %s: %w", f.Source, err)
		}
		dst.Set(f.Key, out)
	}
	return nil
}
