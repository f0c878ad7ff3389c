package parser

import (
	"strings"
	"testing"

	"github.com/laneviz/laneviz/pkg/model"
)

func TestParseLanesNodesAndEdge(t *testing.T) {
	src := `
subgraph A["Layer One"]
n1["Hello"]
n2["World"]
end
subgraph B["Layer Two"]
n3["Foo"]
end
n1 --> |go| n3
`
	d := Parse(src)

	lanes := d.Lanes()
	if len(lanes) != 2 {
		t.Fatalf("lane count = %d, want 2", len(lanes))
	}
	if lanes[0].ID != "A" || lanes[1].ID != "B" {
		t.Errorf("lane order = %s, %s, want A, B", lanes[0].ID, lanes[1].ID)
	}
	if lanes[0].Label != "Layer One" {
		t.Errorf("lane A label = %q, want %q", lanes[0].Label, "Layer One")
	}

	if d.NodeCount() != 3 {
		t.Fatalf("node count = %d, want 3", d.NodeCount())
	}
	if got := nodeIDs(lanes[0]); got != "n1,n2" {
		t.Errorf("lane A nodes = %s, want n1,n2", got)
	}
	if got := nodeIDs(lanes[1]); got != "n3" {
		t.Errorf("lane B nodes = %s, want n3", got)
	}

	edges := d.Edges()
	if len(edges) != 1 {
		t.Fatalf("edge count = %d, want 1", len(edges))
	}
	e := edges[0]
	if e.From != "n1" || e.To != "n3" || e.Label != "go" {
		t.Errorf("edge = %+v, want n1 -> n3 label go", e)
	}
}

func TestParseEdgeBeforeEndpointsIsDropped(t *testing.T) {
	src := `
x --> y
x["X"]
y["Y"]
`
	d := Parse(src)
	if d.EdgeCount() != 0 {
		t.Errorf("edge count = %d, want 0 (edge precedes endpoint declarations)", d.EdgeCount())
	}
	if d.NodeCount() != 2 {
		t.Errorf("node count = %d, want 2", d.NodeCount())
	}
}

func TestParseEdgeUnknownEndpointIsDropped(t *testing.T) {
	d := Parse("a[\"A\"]\na --> missing\n")
	if d.EdgeCount() != 0 {
		t.Errorf("edge count = %d, want 0", d.EdgeCount())
	}
}

func TestParseDuplicateNodeLastWriteWins(t *testing.T) {
	src := `
subgraph A["Domain Layer"]
n1["Hello"]
end
n1["Updated"]
`
	d := Parse(src)

	n, ok := d.Node("n1")
	if !ok {
		t.Fatal("node n1 not found")
	}
	if n.Label != "Updated" {
		t.Errorf("label = %q, want %q", n.Label, "Updated")
	}
	if n.Lane == nil || n.Lane.ID != "A" {
		t.Errorf("lane ownership not retained: %+v", n.Lane)
	}
	if d.NodeCount() != 1 {
		t.Errorf("node count = %d, want 1 (no duplicate entry)", d.NodeCount())
	}
}

func TestParseFreeNodeAdoptedOnRedeclaration(t *testing.T) {
	src := `
orphan["Alone"]
subgraph A["Application"]
orphan["Adopted"]
end
`
	d := Parse(src)
	n, _ := d.Node("orphan")
	if n.Lane == nil || n.Lane.ID != "A" {
		t.Fatalf("free node should be adopted by the open lane, got %+v", n.Lane)
	}
	if len(d.FreeNodes()) != 0 {
		t.Errorf("free nodes = %d, want 0", len(d.FreeNodes()))
	}
}

func TestParseNestedLaneReplacesContext(t *testing.T) {
	src := `
subgraph outer["Outer"]
subgraph inner["Inner"]
n1["In Inner"]
end
n2["After close"]
`
	d := Parse(src)

	if d.LaneCount() != 2 {
		t.Fatalf("lane count = %d, want 2", d.LaneCount())
	}
	outer, inner := d.Lanes()[0], d.Lanes()[1]
	if len(outer.Nodes) != 0 {
		t.Errorf("outer lane nodes = %d, want 0 (context was replaced)", len(outer.Nodes))
	}
	if got := nodeIDs(inner); got != "n1" {
		t.Errorf("inner lane nodes = %s, want n1", got)
	}
	// The single `end` cleared the context entirely, so n2 is free.
	n2, _ := d.Node("n2")
	if !n2.Free() {
		t.Errorf("n2 should be free-standing after lane close")
	}
}

func TestParseSkipsBlankCommentAndMalformedLines(t *testing.T) {
	src := `
%% a comment line
this line matches nothing at all
n1["Ok"
[missing-id]
n2["Fine"]
`
	d := Parse(src)
	if d.NodeCount() != 1 {
		t.Fatalf("node count = %d, want 1", d.NodeCount())
	}
	if _, ok := d.Node("n2"); !ok {
		t.Error("n2 should have been parsed")
	}
}

func TestParseLineBreakMarkers(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`n1["Hello<br>World"]`, "Hello\nWorld"},
		{`n2["Hello<br/>World"]`, "Hello\nWorld"},
		{`n3["Hello<br />World"]`, "Hello\nWorld"},
		{`n4["<b>Bold</b> stripped"]`, "Bold stripped"},
	}
	for _, tt := range tests {
		d := Parse(tt.line)
		id := tt.line[:2]
		n, ok := d.Node(id)
		if !ok {
			t.Fatalf("%s: node not parsed", tt.line)
		}
		if n.Label != tt.want {
			t.Errorf("%s: label = %q, want %q", tt.line, n.Label, tt.want)
		}
	}
}

func TestParseLaneLabelExtraction(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`subgraph a["Quoted Label"]`, "Quoted Label"},
		{`subgraph b[Bracketed Label]`, "Bracketed Label"},
		{`subgraph c`, "c"}, // neither quoted nor bracketed: identifier fallback
	}
	for _, tt := range tests {
		d := Parse(tt.line)
		if got := d.Lanes()[0].Label; got != tt.want {
			t.Errorf("%s: label = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestParseEdgeLabelTrimsPipesAndSpaces(t *testing.T) {
	d := Parse("a[\"A\"]\nb[\"B\"]\na --> | submit | b\n")
	edges := d.Edges()
	if len(edges) != 1 {
		t.Fatalf("edge count = %d, want 1", len(edges))
	}
	if edges[0].Label != "submit" {
		t.Errorf("label = %q, want %q", edges[0].Label, "submit")
	}
}

func TestParseStyleDirectiveIsRecognizedNoOp(t *testing.T) {
	src := `
n1["Hello"]
style n1 fill:#ff0000
`
	d, styles := ParseWithStyles(src)

	if len(styles) != 1 {
		t.Fatalf("style directives = %d, want 1", len(styles))
	}
	if styles[0].NodeID != "n1" || styles[0].Fill != "#ff0000" {
		t.Errorf("directive = %+v", styles[0])
	}
	// The directive has no visible effect on the model.
	if d.NodeCount() != 1 || d.EdgeCount() != 0 {
		t.Errorf("style directive altered the model: %d nodes, %d edges", d.NodeCount(), d.EdgeCount())
	}
}

func TestParseUnclosedLaneIsFinalized(t *testing.T) {
	d := Parse("subgraph a[\"Open\"]\nn1[\"X\"]\n")
	if !d.Lanes()[0].Closed() {
		t.Error("lane left open at EOF should be finalized")
	}
	if got := nodeIDs(d.Lanes()[0]); got != "n1" {
		t.Errorf("lane nodes = %s, want n1", got)
	}
}

// nodeIDs joins a lane's owned node IDs in stored order.
func nodeIDs(l *model.Lane) string {
	ids := make([]string, len(l.Nodes))
	for i, n := range l.Nodes {
		ids[i] = n.ID
	}
	return strings.Join(ids, ",")
}
