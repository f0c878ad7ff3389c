package model

// Node represents a single labeled box in the diagram.
// Position and size fields are zero until the layout engine runs.
//
// A node either belongs to exactly one lane (Lane is non-nil) or is
// free-standing. Nodes are created by the parser and never deleted;
// a re-declared identifier updates the stored label in place.
type Node struct {
	ID       string   // unique identifier
	Label    string   // display text, may contain embedded line breaks
	Lane     *Lane    // owning lane, nil for free-standing nodes
	Category Category // inherited from the owning lane, or CategoryDefault

	// Set by the layout engine (top-left corner plus size).
	X, Y, W, H float64
}

// Free reports whether the node has no owning lane.
func (n *Node) Free() bool { return n.Lane == nil }

// Lane is a labeled rectangular grouping that owns an ordered sequence of
// nodes. The sequence grows only while the lane is open; once closed it is
// immutable except for position/size set by the layout engine.
type Lane struct {
	ID       string
	Label    string
	Category Category
	Nodes    []*Node // owned nodes in declaration order

	// Set by the layout engine.
	X, Y, W, H float64

	closed bool
}

// NewLane creates an open lane with the category inferred from its label.
func NewLane(id, label string) *Lane {
	return &Lane{ID: id, Label: label, Category: DetectCategory(label)}
}

// Append adds a node to the lane's owned sequence and records the ownership
// on the node. Appends after Close are ignored.
func (l *Lane) Append(n *Node) {
	if l.closed {
		return
	}
	n.Lane = l
	n.Category = l.Category
	l.Nodes = append(l.Nodes, n)
}

// Close finalizes the lane; no further nodes can be added.
func (l *Lane) Close() { l.closed = true }

// Closed reports whether the lane has been finalized.
func (l *Lane) Closed() bool { return l.closed }

// Edge represents a directed connection between two node identifiers.
// Edges are immutable once created.
type Edge struct {
	From  string // source node ID
	To    string // target node ID
	Label string // optional edge label
}

// Diagram owns the three registries produced by one parse. The zero value
// is not usable; use NewDiagram. Diagram is not safe for concurrent
// mutation, but independent diagrams can be built concurrently.
type Diagram struct {
	lanes []*Lane
	nodes []*Node
	edges []Edge
	byID  map[string]*Node
}

// NewDiagram creates an empty diagram.
func NewDiagram() *Diagram {
	return &Diagram{byID: make(map[string]*Node)}
}

// AddLane registers a lane in declaration order.
func (d *Diagram) AddLane(l *Lane) {
	d.lanes = append(d.lanes, l)
}

// AddNode registers a node in first-seen order and indexes it by ID.
// Duplicate identifiers are resolved before registration: callers look up
// the existing node via Node and update it in place instead.
func (d *Diagram) AddNode(n *Node) {
	d.nodes = append(d.nodes, n)
	d.byID[n.ID] = n
}

// Node returns the node with the given ID, or nil and false if unknown.
func (d *Diagram) Node(id string) (*Node, bool) {
	n, ok := d.byID[id]
	return n, ok
}

// AddEdge records an edge if and only if both endpoints are already-known
// node identifiers. It reports whether the edge was recorded. Dangling
// references are dropped silently, so edge declaration order matters.
func (d *Diagram) AddEdge(e Edge) bool {
	if _, ok := d.byID[e.From]; !ok {
		return false
	}
	if _, ok := d.byID[e.To]; !ok {
		return false
	}
	d.edges = append(d.edges, e)
	return true
}

// Lanes returns all lanes in declaration order.
// The returned slice is the diagram's own; treat it as read-only.
func (d *Diagram) Lanes() []*Lane { return d.lanes }

// Nodes returns all nodes (owned and free-standing) in first-seen order.
func (d *Diagram) Nodes() []*Node { return d.nodes }

// FreeNodes returns the free-standing nodes in first-seen order.
func (d *Diagram) FreeNodes() []*Node {
	var free []*Node
	for _, n := range d.nodes {
		if n.Free() {
			free = append(free, n)
		}
	}
	return free
}

// Edges returns all recorded edges in declaration order.
func (d *Diagram) Edges() []Edge { return d.edges }

// NodeCount returns the number of registered nodes.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of recorded edges.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// LaneCount returns the number of lanes.
func (d *Diagram) LaneCount() int { return len(d.lanes) }
