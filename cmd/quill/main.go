// Package main is the entry point for the Quill editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quilltext/quill/internal/app"
	"github.com/quilltext/quill/internal/config"
	"github.com/quilltext/quill/internal/engine/document"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	readOnly   bool
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	doc, err := openDocument(opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	appOpts := []app.Option{app.WithConfig(cfg)}
	if opts.readOnly {
		appOpts = append(appOpts, app.WithReadOnly())
	}
	editor := app.New(doc, opts.file, appOpts...)

	if opts.configPath != "" {
		watcher, err := config.Watch(opts.configPath, editor.ApplyConfig, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: config watch disabled: %v\n", err)
		} else {
			defer watcher.Close()
		}
	}

	if err := editor.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func openDocument(path string) (*document.Document, error) {
	if path == "" {
		return document.NewDocument(), nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		// New file: start empty and create it on save.
		return document.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return document.NewDocumentFromReader(f)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.readOnly, "readonly", false, "Open the file in read-only mode")
	flag.BoolVar(&opts.readOnly, "R", false, "Open the file in read-only mode (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Quill - piece-table text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quill [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  quill                  Open a scratch buffer\n")
		fmt.Fprintf(os.Stderr, "  quill notes.txt        Open a file\n")
		fmt.Fprintf(os.Stderr, "  quill -R notes.txt     Open a file read-only\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Quill %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: at most one file may be given\n")
		os.Exit(1)
	}
	if flag.NArg() == 1 {
		opts.file = filepath.Clean(flag.Arg(0))
	}

	return opts
}
