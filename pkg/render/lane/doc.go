// Package lane renders a positioned diagram as a swimlane SVG.
//
// The renderer consumes the model read-only: it draws lane rectangles with
// header bands, category-colored node boxes, and straight edges between
// node borders, all at the coordinates the layout engine computed. It never
// recomputes layout.
package lane
