package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sitefeeds/config"
	"sitefeeds/content"
	"sitefeeds/feeds"
)

// Template names
const (
	tmplHome      = "home"
	tmplPage      = "page"
	tmplBlogPost  = "blog-post"
	tmplBlogIndex = "blog-index"
)

// builder handles the site build process
type builder struct {
	opts      *options
	settings  *config.Settings
	loader    *content.Loader
	templates map[string]*template.Template
	feeds     *feeds.Generator
}

// newBuilder creates a new builder instance
func newBuilder(opts *options) (*builder, error) {
	slog.Info("building site", "config", opts.Config)

	settings, err := config.Load(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}

	b := &builder{
		opts:      opts,
		settings:  settings,
		templates: make(map[string]*template.Template),
		loader: &content.Loader{
			Dir:         opts.ContentDir,
			DefaultLang: settings.DefaultLang,
			Location:    loc,
		},
		feeds: &feeds.Generator{
			Settings: settings,
			Writer:   feeds.NewWriter(settings, opts.OutputDir),
		},
	}

	if err := b.loadTemplates(); err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	return b, nil
}

// build executes the full build process
func (b *builder) build() error {
	if err := os.MkdirAll(b.opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	slog.Info("copying static files")
	if err := b.copyStatic(); err != nil {
		return fmt.Errorf("copying static files: %w", err)
	}

	slog.Info("processing content")
	site, err := b.loader.Load()
	if err != nil {
		return fmt.Errorf("collecting content: %w", err)
	}

	if err := b.renderPages(site); err != nil {
		return fmt.Errorf("rendering pages: %w", err)
	}

	slog.Info("generating feeds")
	if err := b.feeds.GenerateAll(site); err != nil {
		return fmt.Errorf("building feeds: %w", err)
	}

	slog.Info("build complete",
		"pages", len(site.Pages),
		"articles", len(site.Articles),
		"translations", len(site.Translations))

	return nil
}

// copyStatic copies static files to output directory
func (b *builder) copyStatic() error {
	if _, err := os.Stat(b.opts.StaticDir); os.IsNotExist(err) {
		slog.Debug("no static directory", "path", b.opts.StaticDir)
		return nil
	}

	return filepath.WalkDir(b.opts.StaticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := strings.TrimPrefix(path, b.opts.StaticDir)
		if rel == "" {
			return nil
		}
		rel = strings.TrimPrefix(rel, string(filepath.Separator))
		outputPath := filepath.Join(b.opts.OutputDir, rel)

		if d.IsDir() {
			return os.MkdirAll(outputPath, 0755)
		}

		return copyFile(path, outputPath)
	})
}
