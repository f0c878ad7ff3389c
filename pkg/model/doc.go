// Package model defines the diagram data model shared by the parser, the
// layout engine, and the renderers.
//
// A [Diagram] owns three ordered registries built during a single parse:
// lanes, nodes, and edges. The parser fills them in declaration order, the
// layout engine assigns positions and sizes, and renderers consume the
// positioned model read-only. Registries live for one parse+layout
// invocation; there is no cross-invocation state.
//
// # Structure
//
//   - [Lane]: a labeled rectangular grouping owning an ordered node sequence
//   - [Node]: a single labeled box, owned by at most one lane
//   - [Edge]: a directed, optionally labeled connection between node IDs
//   - [Category]: a semantic classification inferred from lane labels,
//     used to pick background colors downstream
//
// # Serialization
//
// [Document] is the canonical serialization format (JSON for files and API
// responses, BSON for the render store). Use [FromDiagram] together with
// [MarshalDocument] or [WriteDocument]:
//
//	doc := model.FromDiagram(d, canvas)
//	data, err := model.MarshalDocument(doc)
package model
