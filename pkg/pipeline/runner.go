package pipeline

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/laneviz/laneviz/pkg/cache"
	"github.com/laneviz/laneviz/pkg/layout"
	"github.com/laneviz/laneviz/pkg/model"
	"github.com/laneviz/laneviz/pkg/observability"
	"github.com/laneviz/laneviz/pkg/parser"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		SourceHash: cache.Hash([]byte(opts.Source)),
		Artifacts:  make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	lineCount := strings.Count(opts.Source, "\n") + 1
	observability.Pipeline().OnParseStart(ctx, lineCount)
	d := parser.Parse(opts.Source)
	result.Diagram = d
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.LaneCount = d.LaneCount()
	result.Stats.NodeCount = d.NodeCount()
	result.Stats.EdgeCount = d.EdgeCount()
	observability.Pipeline().OnParseComplete(ctx, d.NodeCount(), d.EdgeCount(), result.Stats.ParseTime)

	opts.Logger.Info("parsed diagram",
		"lanes", d.LaneCount(),
		"nodes", d.NodeCount(),
		"edges", d.EdgeCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, d.NodeCount())
	l := layout.Build(d)
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, l.Width, l.Height, result.Stats.LayoutTime)

	opts.Logger.Info("computed layout",
		"width", l.Width,
		"height", l.Height,
		"duration", result.Stats.LayoutTime)

	result.Document = model.FromDiagram(d, l.Width, l.Height)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.VizType, opts.Formats)
	artifacts, renderHit, err := r.renderWithCacheInfo(ctx, result, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.VizType, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Document runs parse and layout only, returning the layout document.
// The document is cached by source hash.
func (r *Runner) Document(ctx context.Context, opts Options) (model.Document, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return model.Document{}, false, err
	}
	r.applyLogger(&opts)

	sourceHash := cache.Hash([]byte(opts.Source))
	cacheKey := r.Keyer.DocumentKey(sourceHash)

	if !opts.NoCache {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			doc, err := model.ReadDocument(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "doc")
				return doc, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "doc")
	}

	d := parser.Parse(opts.Source)
	l := layout.Build(d)
	doc := model.FromDiagram(d, l.Width, l.Height)

	if !opts.NoCache {
		if data, err := model.MarshalDocument(doc); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDocument)
			observability.Cache().OnCacheSet(ctx, "doc", len(data))
		}
	}
	return doc, false, nil
}

// renderWithCacheInfo renders artifacts with per-format caching.
func (r *Runner) renderWithCacheInfo(ctx context.Context, res *Result, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte)

	// Try to get all formats from cache
	if !opts.NoCache {
		allCached := true
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(res.SourceHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	// Render all formats
	rendered, err := Render(res.Diagram, res.Layout, res.Document, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	if !opts.NoCache {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(res.SourceHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
