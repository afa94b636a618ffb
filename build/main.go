package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
)

// options holds the command line configuration
type options struct {
	ContentDir   string `long:"content" env:"SITE_CONTENT_DIR" default:"content" description:"Directory containing markdown content"`
	TemplatesDir string `long:"templates" env:"SITE_TEMPLATES_DIR" default:"templates" description:"Directory containing page templates"`
	StaticDir    string `long:"static" env:"SITE_STATIC_DIR" default:"static" description:"Directory copied verbatim to the output"`
	OutputDir    string `long:"output" env:"SITE_OUTPUT_DIR" default:"public" description:"Directory the site is written to"`
	Config       string `long:"config" env:"SITE_CONFIG" default:"site.yaml" description:"Site settings file (.yaml, .yml or .toml)"`
	Debug        bool   `long:"debug" env:"SITE_DEBUG" description:"Enable debug logging"`
}

// parseOptions parses args. A nil result with no error means help was shown.
func parseOptions(args []string) (*options, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, err
	}

	return &opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if opts == nil {
		return
	}

	if opts.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	b, err := newBuilder(opts)
	if err != nil {
		slog.Error("initialization failed", "error", err)
		os.Exit(1)
	}

	if err := b.build(); err != nil {
		slog.Error("build failed", "error", err)
		os.Exit(1)
	}
}
