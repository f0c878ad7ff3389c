// Package parser converts the restricted lane notation into a
// [model.Diagram].
//
// The notation is line-oriented. Five line kinds are recognized, tried in a
// fixed priority order against each non-blank, non-comment line:
//
//	subgraph ui["Presentation Layer"]   lane-open
//	end                                 lane-close
//	login["Login<br>Form"]              node declaration
//	login --> |submit| auth             edge with label
//	login --> auth                      edge without label
//	style login fill:#ff0000            style directive (reserved, no-op)
//
// Parsing is a single forward pass with best-effort pattern matching: lines
// matching no pattern are skipped silently, edges referencing identifiers
// not yet declared are dropped silently, and a duplicate node identifier
// updates the stored label in place. There is no strict mode; malformed
// input degrades to partial output instead of failing.
//
// Lane contexts do not nest. A second lane-open before the matching close
// replaces the current context rather than pushing onto a stack.
package parser
