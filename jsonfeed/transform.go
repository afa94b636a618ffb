package jsonfeed

import (
	"fmt"
	"html"
	"html/template"
	"reflect"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Transform names the conversion applied to a source value before it is stored
type Transform int

const (
	None Transform = iota
	StripMarkup
	Timestamp
	WrapAuthor
	StringList
)

// String returns the transform name
func (t Transform) String() string {
	switch t {
	case None:
		return "none"
	case StripMarkup:
		return "strip-markup"
	case Timestamp:
		return "timestamp"
	case WrapAuthor:
		return "wrap-author"
	case StringList:
		return "string-list"
	default:
		return fmt.Sprintf("transform(%d)", int(t))
	}
}

// Zoned is implemented by date values that may not carry a UTC offset.
// The boolean reports whether the returned time has a meaningful zone.
type Zoned interface {
	Zoned() (time.Time, bool)
}

// naiveOffset marks a timestamp whose offset is unknown (RFC 3339 section 4.3)
const naiveOffset = "-00:00"

var transforms = map[Transform]func(any) (any, error){
	None:        func(v any) (any, error) { return v, nil },
	StripMarkup: func(v any) (any, error) { return stripValue(v) },
	Timestamp:   func(v any) (any, error) { return timestampValue(v) },
	WrapAuthor:  func(v any) (any, error) { return map[string]string{"name": fmt.Sprint(v)}, nil },
	StringList:  func(v any) (any, error) { return stringList(v) },
}

// Apply runs transform t on v
func Apply(t Transform, v any) (any, error) {
	fn, ok := transforms[t]
	if !ok {
		return nil, fmt.Errorf("unknown transform %s", t)
	}
	return fn(v)
}

var strictPolicy = bluemonday.StrictPolicy()

// Strip removes markup from s and returns plain text with whitespace collapsed
func Strip(s string) string {
	text := html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

// stripValue strips markup from text values
func stripValue(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return Strip(s), nil
	case template.HTML:
		return Strip(string(s)), nil
	case fmt.Stringer:
		return Strip(s.String()), nil
	default:
		return "", fmt.Errorf("cannot strip markup from %T", v)
	}
}

// FormatTimestamp renders t as YYYY-MM-DDTHH:MM:SS±HH:MM, using -00:00 when zoned is false
func FormatTimestamp(t time.Time, zoned bool) string {
	if !zoned {
		return t.Format("2006-01-02T15:04:05") + naiveOffset
	}
	return t.Format("2006-01-02T15:04:05-07:00")
}

// timestampValue formats a date value as an RFC 3339 timestamp
func timestampValue(v any) (string, error) {
	switch d := v.(type) {
	case Zoned:
		t, zoned := d.Zoned()
		return FormatTimestamp(t, zoned), nil
	case time.Time:
		return FormatTimestamp(d, true), nil
	case *time.Time:
		if d == nil {
			return "", fmt.Errorf("nil time")
		}
		return FormatTimestamp(*d, true), nil
	default:
		return "", fmt.Errorf("cannot format %T as a timestamp", v)
	}
}

// stringList converts any slice or array to a list of strings
func stringList(v any) ([]string, error) {
	if ss, ok := v.([]string); ok {
		return append([]string(nil), ss...), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("cannot convert %T to a string list", v)
	}

	out := make([]string, rv.Len())
	for i := range rv.Len() {
		out[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return out, nil
}

// truthy reports whether v should be written to a document
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case template.HTML:
		return x != ""
	case bool:
		return x
	case time.Time:
		return !x.IsZero()
	case Zoned:
		t, _ := x.Zoned()
		return !t.IsZero()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return !rv.IsZero()
	}
}
