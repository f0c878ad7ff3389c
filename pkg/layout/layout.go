package layout

import "github.com/laneviz/laneviz/pkg/model"

// Geometry constants, in user units. All placement derives from these.
const (
	// CanvasMargin pads the bounding box of all placed elements.
	CanvasMargin = 24.0

	// LaneTop is the shared top coordinate of every lane.
	LaneTop = 24.0
	// LaneGap separates adjacent lanes horizontally.
	LaneGap = 24.0
	// LaneWidth is the fixed width of every lane.
	LaneWidth = 220.0
	// HeaderHeight is the lane's header band holding the label.
	HeaderHeight = 36.0
	// LanePadding pads the node stack at the top and bottom of a lane.
	LanePadding = 16.0

	// NodeWidth and NodeHeight are the fixed node box dimensions.
	NodeWidth  = 180.0
	NodeHeight = 56.0
	// NodeGap separates stacked nodes vertically.
	NodeGap = 16.0

	// MinLaneHeight is the fixed height of a lane that owns no nodes.
	MinLaneHeight = 120.0
)

// nodeInset centers the node stack horizontally inside its lane.
const nodeInset = (LaneWidth - NodeWidth) / 2

// Layout holds the computed canvas bounds. Positions and sizes are written
// directly into the diagram's lane and node records; renderers read them
// from there and must treat them as final.
type Layout struct {
	Width  float64
	Height float64
}

// Build assigns every lane and node a top-left position and size, and
// returns canvas dimensions large enough to contain every element plus
// CanvasMargin. It is deterministic: the same registries always produce
// bit-identical values.
func Build(d *model.Diagram) Layout {
	var maxRight, maxBottom float64

	x := CanvasMargin
	for _, l := range d.Lanes() {
		placeLane(l, x)
		x = l.X + l.W + LaneGap
		maxRight = max(maxRight, l.X+l.W)
		maxBottom = max(maxBottom, l.Y+l.H)
	}

	// Free-standing nodes form one column right of the last lane. With no
	// lanes at all, the column starts at the canvas margin.
	freeX := x
	if len(d.Lanes()) == 0 {
		freeX = CanvasMargin
	}
	y := LaneTop
	for _, n := range d.FreeNodes() {
		n.X, n.Y = freeX, y
		n.W, n.H = NodeWidth, NodeHeight
		y += NodeHeight + NodeGap
		maxRight = max(maxRight, n.X+n.W)
		maxBottom = max(maxBottom, n.Y+n.H)
	}

	return Layout{
		Width:  maxRight + CanvasMargin,
		Height: maxBottom + CanvasMargin,
	}
}

// placeLane positions a lane at horizontal offset x and stacks its owned
// nodes below the header band in declaration order.
func placeLane(l *model.Lane, x float64) {
	l.X, l.Y = x, LaneTop
	l.W = LaneWidth
	l.H = laneHeight(len(l.Nodes))

	y := l.Y + HeaderHeight + LanePadding
	for _, n := range l.Nodes {
		n.X, n.Y = l.X+nodeInset, y
		n.W, n.H = NodeWidth, NodeHeight
		y += NodeHeight + NodeGap
	}
}

// laneHeight derives a lane's height from its node count: header band plus
// one (node + gap) slot per node plus top/bottom padding. A lane with no
// nodes gets the fixed minimum instead.
func laneHeight(nodes int) float64 {
	if nodes == 0 {
		return MinLaneHeight
	}
	return HeaderHeight + float64(nodes)*(NodeHeight+NodeGap) + 2*LanePadding
}
