// Package layout provides position strategies for node sequences.
//
// A strategy computes canvas coordinates for an ordered slice of placements,
// either for every node (UpdatePositions) or for a target node and every node
// after it (UpdateTargetPosition). Strategies are pure functions of their
// input and configuration, so calling one twice on the same input yields the
// same result.
//
// ListManager lays nodes out left to right on a single row. GridManager wraps
// them row-major into a fixed number of columns.
package layout
