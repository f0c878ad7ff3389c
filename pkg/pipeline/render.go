package pipeline

import (
	"github.com/laneviz/laneviz/pkg/errors"
	"github.com/laneviz/laneviz/pkg/layout"
	"github.com/laneviz/laneviz/pkg/model"
	"github.com/laneviz/laneviz/pkg/render"
	"github.com/laneviz/laneviz/pkg/render/lane"
	"github.com/laneviz/laneviz/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats.
func Render(d *model.Diagram, l layout.Layout, doc model.Document, opts Options) (map[string][]byte, error) {
	if opts.IsGraph() {
		return renderGraph(d, doc, opts)
	}
	return renderLane(d, l, doc, opts)
}

// renderLane generates swimlane outputs.
func renderLane(d *model.Diagram, l layout.Layout, doc model.Document, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	var svg []byte
	needsSVG := func() []byte {
		if svg == nil {
			svg = lane.RenderSVG(d, l, svgOpts...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = needsSVG()
		case FormatPNG:
			data, err = render.ToPNG(needsSVG(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(needsSVG())
		case FormatJSON:
			data, err = model.MarshalDocument(doc)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(d))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported lane format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderGraph generates node-link outputs through Graphviz.
func renderGraph(d *model.Diagram, doc model.Document, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(d)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		case FormatJSON:
			data, err = model.MarshalDocument(doc)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds swimlane SVG rendering options.
func buildSVGOptions(opts Options) []lane.SVGOption {
	var svgOpts []lane.SVGOption
	if opts.NoEdges {
		svgOpts = append(svgOpts, lane.WithoutEdges())
	}
	if opts.NoEdgeLabels {
		svgOpts = append(svgOpts, lane.WithoutEdgeLabels())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, lane.WithBackground(opts.Background))
	}
	return svgOpts
}
