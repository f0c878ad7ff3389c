package parser

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/laneviz/laneviz/pkg/model"
)

// commentPrefix marks lines that are skipped entirely.
const commentPrefix = "%%"

// laneCloseKeyword is the exact reserved word that closes the current lane.
const laneCloseKeyword = "end"

var (
	laneOpenRE    = regexp.MustCompile(`^subgraph\s+([A-Za-z0-9_-]+)`)
	nodeRE        = regexp.MustCompile(`^([A-Za-z0-9_-]+)\[(.+)\]$`)
	labeledEdgeRE = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s*-->\s*\|([^|]*)\|\s*([A-Za-z0-9_-]+)$`)
	edgeRE        = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s*-->\s*([A-Za-z0-9_-]+)$`)
	styleRE       = regexp.MustCompile(`^style\s+([A-Za-z0-9_-]+)\s+fill:(#[0-9a-fA-F]+)`)

	quotedRE  = regexp.MustCompile(`"([^"]*)"`)
	bracketRE = regexp.MustCompile(`\[([^\]]*)\]`)

	// Both spellings of the inline break marker normalize to a newline.
	lineBreakRE = regexp.MustCompile(`<br\s*/?>`)
	// Any other bracket-delimited markup is stripped from display text.
	markupRE = regexp.MustCompile(`<[^>]*>`)
)

// StyleDirective is a recognized `style <id> fill:<hex>` line. Directives
// are parsed so they do not fall into the unparseable-line path, but they
// are a reserved extension hook and currently have no visible effect.
type StyleDirective struct {
	NodeID string
	Fill   string
}

// Parse scans the input text line by line and builds the diagram
// registries. It never fails: unrecognized lines contribute nothing.
func Parse(src string) *model.Diagram {
	d, _ := ParseWithStyles(src)
	return d
}

// ParseWithStyles is Parse plus the recognized style directives, for
// callers that want to act on the reserved hook once it gains semantics.
func ParseWithStyles(src string) (*model.Diagram, []StyleDirective) {
	p := &parser{diagram: model.NewDiagram()}

	sc := bufio.NewScanner(strings.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		p.line(strings.TrimSpace(sc.Text()))
	}

	// A lane left open at end of input is finalized as if closed.
	p.closeLane()
	return p.diagram, p.styles
}

// parser holds the single mutable piece of parse state: the current lane.
// There is deliberately no lane stack; nested lane-opens replace the
// context (see the package documentation).
type parser struct {
	diagram *model.Diagram
	lane    *model.Lane
	styles  []StyleDirective
}

// matchers are tried in priority order. The first one that recognizes the
// line consumes it; a line matching none of them is skipped silently.
var matchers = []func(*parser, string) bool{
	(*parser).matchLaneOpen,
	(*parser).matchLaneClose,
	(*parser).matchNode,
	(*parser).matchLabeledEdge,
	(*parser).matchEdge,
	(*parser).matchStyle,
}

func (p *parser) line(line string) {
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return
	}
	for _, match := range matchers {
		if match(p, line) {
			return
		}
	}
}

func (p *parser) matchLaneOpen(line string) bool {
	m := laneOpenRE.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	p.closeLane()
	p.lane = model.NewLane(m[1], extractLabel(line, m[1]))
	p.diagram.AddLane(p.lane)
	return true
}

func (p *parser) matchLaneClose(line string) bool {
	if line != laneCloseKeyword {
		return false
	}
	p.closeLane()
	return true
}

func (p *parser) matchNode(line string) bool {
	m := nodeRE.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	p.upsertNode(m[1], cleanLabel(m[2]))
	return true
}

func (p *parser) matchLabeledEdge(line string) bool {
	m := labeledEdgeRE.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	p.diagram.AddEdge(model.Edge{From: m[1], To: m[3], Label: strings.TrimSpace(m[2])})
	return true
}

func (p *parser) matchEdge(line string) bool {
	m := edgeRE.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	p.diagram.AddEdge(model.Edge{From: m[1], To: m[2]})
	return true
}

func (p *parser) matchStyle(line string) bool {
	m := styleRE.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	p.styles = append(p.styles, StyleDirective{NodeID: m[1], Fill: m[2]})
	return true
}

func (p *parser) closeLane() {
	if p.lane != nil {
		p.lane.Close()
		p.lane = nil
	}
}

// upsertNode creates the node or, for an already-seen identifier, updates
// the stored label in place (last-write-wins). A node that was free at its
// first declaration is adopted by the lane open at re-declaration time;
// established ownership is never changed.
func (p *parser) upsertNode(id, label string) {
	if n, ok := p.diagram.Node(id); ok {
		n.Label = label
		if n.Free() && p.lane != nil {
			p.lane.Append(n)
		}
		return
	}

	n := &model.Node{ID: id, Label: label, Category: model.CategoryDefault}
	if p.lane != nil {
		p.lane.Append(n)
	}
	p.diagram.AddNode(n)
}

// extractLabel pulls the lane label from the first quoted or bracketed run
// in the line. This is a best-effort pattern, not a grammar: a line with
// neither falls back to the lane identifier.
func extractLabel(line, fallback string) string {
	if m := quotedRE.FindStringSubmatch(line); m != nil {
		return cleanLabel(m[1])
	}
	if m := bracketRE.FindStringSubmatch(line); m != nil {
		return cleanLabel(m[1])
	}
	return fallback
}

// cleanLabel normalizes display text: surrounding quotes are dropped,
// inline break markers become newlines, remaining markup is stripped.
func cleanLabel(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = lineBreakRE.ReplaceAllString(s, "\n")
	s = markupRE.ReplaceAllString(s, "")
	return s
}
