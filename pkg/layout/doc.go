// Package layout assigns absolute positions and sizes to every lane and
// node of a parsed diagram and computes the overall canvas bounds.
//
// The placement rules are deliberately simple and deterministic:
//
//  1. Lanes go left-to-right in declaration order, sharing a fixed top
//     coordinate, each separated by a fixed gap.
//  2. A lane's height grows with its node count; an empty lane gets a
//     fixed minimum size.
//  3. Nodes stack top-to-bottom inside their lane, below the header band.
//  4. Free-standing nodes form a single column to the right of the last
//     lane.
//  5. The canvas is the bounding box of everything plus a fixed margin.
//
// Build is a pure function of the diagram registries: identical input
// yields bit-identical positions. There is no collision avoidance beyond
// the stacking rules and no edge routing; renderers draw edges between
// node centers.
package layout
