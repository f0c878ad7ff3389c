package lane

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/laneviz/laneviz/pkg/layout"
	"github.com/laneviz/laneviz/pkg/model"
)

const (
	fontFamily     = "Helvetica, Arial, sans-serif"
	headerFontSize = 15.0
	nodeFontSize   = 13.0
	edgeFontSize   = 11.0
	lineHeight     = 1.3 // em, for multi-line node labels
	cornerRadius   = 6.0
)

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	edges      bool
	edgeLabels bool
	background string
}

// WithoutEdges suppresses edge drawing.
func WithoutEdges() SVGOption { return func(r *svgRenderer) { r.edges = false } }

// WithoutEdgeLabels keeps edges but drops their labels.
func WithoutEdgeLabels() SVGOption { return func(r *svgRenderer) { r.edgeLabels = false } }

// WithBackground sets the canvas background color (default white).
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSVG draws the positioned diagram as an SVG document.
// Lanes are drawn first, then nodes, then edges, so arrows stay visible
// on top of the boxes they connect.
func RenderSVG(d *model.Diagram, l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{edges: true, edgeLabels: true, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", l.Width, l.Height, r.background)

	for _, ln := range d.Lanes() {
		renderLane(&buf, ln)
	}
	for _, n := range d.Nodes() {
		renderNode(&buf, n)
	}
	if r.edges {
		for _, e := range d.Edges() {
			renderEdge(&buf, d, e, r.edgeLabels)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="#374151"/>
    </marker>
  </defs>
`)
}

func renderLane(buf *bytes.Buffer, l *model.Lane) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" fill-opacity="0.35" stroke="%s" stroke-width="1.5"/>`+"\n",
		l.X, l.Y, l.W, l.H, cornerRadius, l.Category.Fill(), l.Category.Stroke())
	// Header band separator.
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
		l.X, l.Y+layout.HeaderHeight, l.X+l.W, l.Y+layout.HeaderHeight, l.Category.Stroke())
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`+"\n",
		l.X+l.W/2, l.Y+layout.HeaderHeight/2+headerFontSize/3, fontFamily, headerFontSize, l.Category.Stroke(), escape(firstLine(l.Label)))
}

func renderNode(buf *bytes.Buffer, n *model.Node) {
	fmt.Fprintf(buf, `  <rect id="node-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		escape(n.ID), n.X, n.Y, n.W, n.H, cornerRadius, n.Category.Fill(), n.Category.Stroke())
	renderNodeText(buf, n)
}

// renderNodeText centers the label inside the node box, one tspan per
// embedded line break.
func renderNodeText(buf *bytes.Buffer, n *model.Node) {
	lines := strings.Split(n.Label, "\n")
	box := layout.NodeBox(n)

	// Shift the first line up so the block of lines is vertically centered.
	startY := box.CenterY() + nodeFontSize/3 - float64(len(lines)-1)*nodeFontSize*lineHeight/2

	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" fill="#111827" text-anchor="middle">`,
		box.CenterX(), startY, fontFamily, nodeFontSize)
	for i, line := range lines {
		if i == 0 {
			fmt.Fprintf(buf, `<tspan x="%.1f">%s</tspan>`, box.CenterX(), escape(line))
			continue
		}
		fmt.Fprintf(buf, `<tspan x="%.1f" dy="%.2fem">%s</tspan>`, box.CenterX(), lineHeight, escape(line))
	}
	buf.WriteString("</text>\n")
}

func renderEdge(buf *bytes.Buffer, d *model.Diagram, e model.Edge, withLabel bool) {
	src, okS := d.Node(e.From)
	dst, okD := d.Node(e.To)
	if !okS || !okD {
		return
	}

	x1, y1, x2, y2 := clipSegment(layout.NodeBox(src), layout.NodeBox(dst))
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#374151" stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
		x1, y1, x2, y2)

	if withLabel && e.Label != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" fill="#374151" text-anchor="middle" paint-order="stroke" stroke="#ffffff" stroke-width="3">%s</text>`+"\n",
			(x1+x2)/2, (y1+y2)/2-4, fontFamily, edgeFontSize, escape(e.Label))
	}
}

// clipSegment trims the center-to-center segment of two boxes so the line
// starts and ends on the box borders instead of underneath them.
func clipSegment(from, to layout.Box) (x1, y1, x2, y2 float64) {
	fx, fy := from.CenterX(), from.CenterY()
	tx, ty := to.CenterX(), to.CenterY()

	x1, y1 = clipToBorder(fx, fy, tx, ty, from)
	x2, y2 = clipToBorder(tx, ty, fx, fy, to)
	return x1, y1, x2, y2
}

// clipToBorder moves point (cx, cy) along the direction of (ox, oy) until
// it sits on the border of box b. Degenerate segments (coincident centers)
// are returned unchanged.
func clipToBorder(cx, cy, ox, oy float64, b layout.Box) (float64, float64) {
	dx, dy := ox-cx, oy-cy
	if dx == 0 && dy == 0 {
		return cx, cy
	}

	t := 1.0
	if dx != 0 {
		t = min(t, (b.W/2)/abs(dx))
	}
	if dy != 0 {
		t = min(t, (b.H/2)/abs(dy))
	}
	return cx + dx*t, cy + dy*t
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// firstLine keeps lane headers to a single line even if the label carries
// break markers.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
