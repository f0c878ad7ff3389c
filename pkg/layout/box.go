package layout

import "github.com/laneviz/laneviz/pkg/model"

// Box is an axis-aligned rectangle in user units (pixels in SVG output).
// X and Y are the top-left corner.
type Box struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// NodeBox returns the positioned rectangle of a laid-out node.
func NodeBox(n *model.Node) Box { return Box{X: n.X, Y: n.Y, W: n.W, H: n.H} }

// LaneBox returns the positioned rectangle of a laid-out lane.
func LaneBox(l *model.Lane) Box { return Box{X: l.X, Y: l.Y, W: l.W, H: l.H} }
