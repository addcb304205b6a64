package domain

// Position is a 2D canvas coordinate. Layout results always overwrite both
// axes; a position is never partially patched.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NewPosition creates a position
func NewPosition(x, y float64) Position {
	return Position{X: x, Y: y}
}

// Placement is a node's identity and current position, without its payload.
// Position strategies only need this much of a node.
type Placement struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
}
