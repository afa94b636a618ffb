// Package config loads site settings from a YAML or TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // timezone lookups work in minimal containers

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Placeholder is replaced with a grouping slug in feed path templates
const Placeholder = "{slug}"

// FeedPaths holds the output path templates for one feed kind. An empty
// template disables that feed.
type FeedPaths struct {
	Feed        string `yaml:"feed" toml:"feed"`
	All         string `yaml:"all" toml:"all"`
	Category    string `yaml:"category" toml:"category"`
	Author      string `yaml:"author" toml:"author"`
	Tag         string `yaml:"tag" toml:"tag"`
	Translation string `yaml:"translation" toml:"translation"`
}

// Feeds holds path templates per feed kind
type Feeds struct {
	JSON FeedPaths `yaml:"json" toml:"json"`
	Atom FeedPaths `yaml:"atom" toml:"atom"`
	RSS  FeedPaths `yaml:"rss" toml:"rss"`
}

// Settings represents the site configuration file
type Settings struct {
	SiteName     string `yaml:"sitename" toml:"sitename"`
	SiteURL      string `yaml:"siteurl" toml:"siteurl"`
	SiteSubtitle string `yaml:"sitesubtitle" toml:"sitesubtitle"`
	Author       string `yaml:"author" toml:"author"`
	Favicon      string `yaml:"favicon" toml:"favicon"`
	SiteLogo     string `yaml:"sitelogo" toml:"sitelogo"`
	Timezone     string `yaml:"timezone" toml:"timezone"`
	DefaultLang  string `yaml:"default_lang" toml:"default_lang"`

	// FeedMaxItems caps the number of items per feed, 0 means no limit
	FeedMaxItems int   `yaml:"feed_max_items" toml:"feed_max_items"`
	Feeds        Feeds `yaml:"feeds" toml:"feeds"`
}

// Default returns settings with the default feed layout
func Default() *Settings {
	return &Settings{
		DefaultLang: "en",
		Feeds: Feeds{
			JSON: FeedPaths{
				All:         "feeds/all.json",
				Category:    "feeds/{slug}.json",
				Translation: "feeds/all-{slug}.json",
			},
			Atom: FeedPaths{
				All:         "feeds/all.atom.xml",
				Category:    "feeds/{slug}.atom.xml",
				Translation: "feeds/all-{slug}.atom.xml",
			},
		},
	}
}

// Load reads settings from path over the defaults. The format is chosen
// by file extension.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	s := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, s)
	case ".toml":
		err = toml.Unmarshal(data, s)
	default:
		return nil, fmt.Errorf("unsupported settings format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	s.SiteURL = strings.TrimSuffix(s.SiteURL, "/")

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks required settings and path templates
func (s *Settings) Validate() error {
	var errs []error

	if s.SiteName == "" {
		errs = append(errs, errors.New("sitename is required"))
	}
	if s.FeedMaxItems < 0 {
		errs = append(errs, fmt.Errorf("feed_max_items must not be negative, got %d", s.FeedMaxItems))
	}
	if _, err := s.Location(); err != nil {
		errs = append(errs, err)
	}

	kinds := []struct {
		name  string
		paths FeedPaths
	}{
		{"json", s.Feeds.JSON},
		{"atom", s.Feeds.Atom},
		{"rss", s.Feeds.RSS},
	}
	for _, k := range kinds {
		grouped := [][2]string{
			{"category", k.paths.Category},
			{"author", k.paths.Author},
			{"tag", k.paths.Tag},
			{"translation", k.paths.Translation},
		}
		for _, g := range grouped {
			if g[1] != "" && !hasPlaceholder(g[1]) {
				errs = append(errs, fmt.Errorf("feeds.%s.%s: %q has no %s placeholder", k.name, g[0], g[1], Placeholder))
			}
		}
	}

	return errors.Join(errs...)
}

// Location returns the configured timezone, nil when none is set
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// hasPlaceholder reports whether tmpl can be interpolated with a slug
func hasPlaceholder(tmpl string) bool {
	return strings.Contains(tmpl, Placeholder) || strings.Contains(tmpl, "%s")
}

// Path interpolates slug into a feed path template. Both {slug} and the
// printf style %s are accepted.
func Path(tmpl, slug string) string {
	if strings.Contains(tmpl, Placeholder) {
		return strings.ReplaceAll(tmpl, Placeholder, slug)
	}
	return strings.Replace(tmpl, "%s", slug, 1)
}
