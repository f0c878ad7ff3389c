// Package pipeline provides the core diagram pipeline for laneviz.
//
// This package implements the complete parse → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Turn diagram notation into the in-memory model
//  2. Layout: Compute positions for lanes and nodes
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  src,
//	    VizType: "lane",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/laneviz/laneviz/pkg/cache"
	"github.com/laneviz/laneviz/pkg/errors"
	"github.com/laneviz/laneviz/pkg/layout"
	"github.com/laneviz/laneviz/pkg/model"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Visualization types.
const (
	// VizTypeLane is the swimlane view with positioned lanes and nodes.
	VizTypeLane = "lane"

	// VizTypeGraph is the node-link view rendered through Graphviz.
	VizTypeGraph = "graph"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeLane

// DefaultScale is the default raster scale factor for PNG output.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeLane:  true,
	VizTypeGraph: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the diagram pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source is the diagram notation text.
	Source string `json:"source"`

	// Layout / render options
	VizType      string   `json:"viz_type,omitempty"`
	Formats      []string `json:"formats,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
	NoEdges      bool     `json:"no_edges,omitempty"`
	NoEdgeLabels bool     `json:"no_edge_labels,omitempty"`
	Background   string   `json:"background,omitempty"`

	// NoCache bypasses cache reads and writes for this run.
	NoCache bool `json:"no_cache,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the parsed diagram model with positions applied.
	Diagram *model.Diagram

	// Layout is the computed canvas geometry.
	Layout layout.Layout

	// Document is the serializable layout document.
	Document model.Document

	// SourceHash is the content hash of the diagram source.
	SourceHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LaneCount  int
	NodeCount  int
	EdgeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits during Execute. Parse and layout always run
// (they are cheaper than a cache round trip); only rendered artifacts are
// cached, so the render stage is the only one that can hit.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: lane, graph)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source is required")
	}

	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// IsLane returns true if this is a swimlane visualization.
func (o *Options) IsLane() bool {
	return o.VizType == "" || o.VizType == VizTypeLane
}

// IsGraph returns true if this is a node-link visualization.
func (o *Options) IsGraph() bool {
	return o.VizType == VizTypeGraph
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		VizType:    o.VizType,
		Format:     format,
		Edges:      !o.NoEdges,
		EdgeLabels: !o.NoEdgeLabels,
		Scale:      o.Scale,
		Background: o.Background,
	}
}
