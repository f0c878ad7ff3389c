// Package nodelink renders a diagram as a classic node-link drawing.
//
// Unlike the swimlane sink, this view delegates placement entirely to
// Graphviz: lanes become clusters, nodes become boxes, and dot picks the
// positions. The lane layout engine is not involved. Use [ToDOT] to get
// the DOT source and [RenderSVG], [RenderPNG], or [RenderPDF] for output.
package nodelink
