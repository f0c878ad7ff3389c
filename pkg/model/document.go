package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Document - Canonical Serialization Format
// =============================================================================

// Document is the canonical serialization format for a positioned diagram.
// Used for JSON artifacts, API responses, caching, and the render store.
//
// The format carries final positions: consumers must treat the coordinate
// fields as already-computed and must not recompute layout.
type Document struct {
	Canvas Canvas     `json:"canvas" bson:"canvas"`
	Lanes  []LaneBox  `json:"lanes" bson:"lanes"`
	Nodes  []NodeBox  `json:"nodes" bson:"nodes"`
	Edges  []EdgeLink `json:"edges" bson:"edges"`
}

// Canvas is the overall drawing area in user units.
type Canvas struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// LaneBox is a positioned lane with the IDs of its owned nodes in order.
type LaneBox struct {
	ID       string   `json:"id" bson:"id"`
	Label    string   `json:"label" bson:"label"`
	Category string   `json:"category" bson:"category"`
	Nodes    []string `json:"nodes,omitempty" bson:"nodes,omitempty"`
	X        float64  `json:"x" bson:"x"`
	Y        float64  `json:"y" bson:"y"`
	Width    float64  `json:"width" bson:"width"`
	Height   float64  `json:"height" bson:"height"`
}

// NodeBox is a positioned node.
type NodeBox struct {
	ID       string  `json:"id" bson:"id"`
	Label    string  `json:"label" bson:"label"`
	Lane     string  `json:"lane,omitempty" bson:"lane,omitempty"` // empty for free-standing nodes
	Category string  `json:"category" bson:"category"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Width    float64 `json:"width" bson:"width"`
	Height   float64 `json:"height" bson:"height"`
}

// EdgeLink is a directed edge between node IDs.
type EdgeLink struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// FromDiagram converts a positioned diagram to its serialization format.
// Ordering is preserved: lanes and nodes appear in declaration order.
func FromDiagram(d *Diagram, canvasWidth, canvasHeight float64) Document {
	doc := Document{
		Canvas: Canvas{Width: canvasWidth, Height: canvasHeight},
		Lanes:  make([]LaneBox, 0, d.LaneCount()),
		Nodes:  make([]NodeBox, 0, d.NodeCount()),
		Edges:  make([]EdgeLink, 0, d.EdgeCount()),
	}

	for _, l := range d.Lanes() {
		box := LaneBox{
			ID:       l.ID,
			Label:    l.Label,
			Category: string(l.Category),
			X:        l.X, Y: l.Y,
			Width: l.W, Height: l.H,
		}
		for _, n := range l.Nodes {
			box.Nodes = append(box.Nodes, n.ID)
		}
		doc.Lanes = append(doc.Lanes, box)
	}

	for _, n := range d.Nodes() {
		box := NodeBox{
			ID:       n.ID,
			Label:    n.Label,
			Category: string(n.Category),
			X:        n.X, Y: n.Y,
			Width: n.W, Height: n.H,
		}
		if n.Lane != nil {
			box.Lane = n.Lane.ID
		}
		doc.Nodes = append(doc.Nodes, box)
	}

	for _, e := range d.Edges() {
		doc.Edges = append(doc.Edges, EdgeLink{From: e.From, To: e.To, Label: e.Label})
	}

	return doc
}

// =============================================================================
// Document I/O
// =============================================================================

// MarshalDocument converts a document to indented JSON bytes.
func MarshalDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocumentTo(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument writes a document as JSON to an io.Writer.
func WriteDocument(doc Document, w io.Writer) error {
	return writeDocumentTo(doc, w)
}

// WriteDocumentFile writes a document to a JSON file with 0644 permissions.
func WriteDocumentFile(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDocumentTo(doc, f)
}

// ReadDocument decodes a JSON document from an io.Reader.
func ReadDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

func writeDocumentTo(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
