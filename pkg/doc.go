// Package pkg provides the core libraries for laneviz swimlane diagrams.
//
// # Overview
//
// laneviz turns a restricted text notation (nodes, grouped lanes, directed
// edges) into positioned swimlane diagrams. The pkg directory is organized
// into five main areas:
//
//  1. [model] - Diagram data model (lanes, nodes, edges, categories)
//  2. [parser] - Lexical parser for the lane notation
//  3. [layout] - Deterministic placement engine
//  4. [render] - SVG/DOT renderers and format conversion
//  5. [pipeline] - Orchestration (parse → layout → render) with caching
//
// # Architecture
//
// The typical data flow through laneviz:
//
//	Lane notation text
//	         ↓
//	    [parser] package (build lane/node/edge registries)
//	         ↓
//	    [layout] package (assign positions, compute canvas)
//	         ↓
//	    [render] packages (swimlane SVG or Graphviz node-link)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Parse, lay out, and render a diagram:
//
//	import (
//	    "github.com/laneviz/laneviz/pkg/layout"
//	    "github.com/laneviz/laneviz/pkg/parser"
//	    lanesvg "github.com/laneviz/laneviz/pkg/render/lane"
//	)
//
//	d := parser.Parse(src)
//	l := layout.Build(d)
//	svg := lanesvg.RenderSVG(d, l)
//
// Supporting packages: [cache] (file/Redis result caching), [store]
// (Mongo-backed render history for the HTTP server), [errors] (structured
// error codes), [observability] (instrumentation hooks), [buildinfo]
// (ldflags version metadata).
package pkg
