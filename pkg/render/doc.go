// Package render holds format conversion helpers shared by the renderers.
//
// The actual drawing lives in the subpackages:
//   - lane: hand-written swimlane SVG sink consuming the computed layout
//   - nodelink: DOT export rendered through Graphviz
//
// Both produce SVG as the primary format; PDF and PNG are derived from the
// SVG via rsvg-convert (see [ToPDF] and [ToPNG]).
package render
