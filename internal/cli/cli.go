// Package cli implements the laneviz command-line interface.
//
// This package provides commands for parsing lane diagrams, rendering them
// as SVG/PNG/PDF, browsing them interactively, serving the HTTP API, and
// managing the artifact cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - parse: Parse diagram notation and emit the layout document
//   - render: Generate SVG, PNG, PDF, JSON, or DOT output
//   - inspect: Browse lanes and nodes interactively
//   - serve: Run the HTTP render API
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/laneviz/laneviz/pkg/cache"
	"github.com/laneviz/laneviz/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "laneviz"

// newRunner creates a pipeline runner backed by the file cache.
// With noCache the runner uses a null cache and skips lookups entirely.
func newRunner(noCache bool, logger *log.Logger) *pipeline.Runner {
	return pipeline.NewRunner(newCache(noCache), nil, logger)
}

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG conventions (~/.cache/laneviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output carries a known format extension, that extension is stripped so
// per-format suffixes can be appended.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
