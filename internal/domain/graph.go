package domain

import "fmt"

// Graph is the derived view handed to the canvas renderer
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphNode represents a node in the visualization
type GraphNode struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Position Position `json:"position"`
	Active   bool     `json:"active,omitempty"`
}

// GraphEdge is a directed edge from a node to its successor. When any edge
// is active the renderer dims the others.
type GraphEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Active bool   `json:"active,omitempty"`
}

// DeriveGraph converts a list's node sequence into a renderable graph. Edges
// pointing at the TAIL marker are suppressed. activeID and activeEdgeID, if
// non-empty, mark the node and the edge to highlight.
func DeriveGraph(nodes []ListNode, activeID, activeEdgeID string) *Graph {
	graph := &Graph{
		Nodes: make([]GraphNode, 0, len(nodes)),
		Edges: make([]GraphEdge, 0, len(nodes)),
	}

	for _, n := range nodes {
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:       n.ID,
			Label:    n.Value.Value,
			Position: n.Position,
			Active:   activeID != "" && n.ID == activeID,
		})

		next := n.Next()
		if next == "" || next == TailMarker {
			continue
		}
		id := EdgeID(n.ID, next)
		graph.Edges = append(graph.Edges, GraphEdge{
			ID:     id,
			Source: n.ID,
			Target: next,
			Active: activeEdgeID != "" && id == activeEdgeID,
		})
	}

	return graph
}

// Edge returns the edge with the given id
func (g *Graph) Edge(id string) (GraphEdge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return GraphEdge{}, false
}

// EdgeID names the edge from source to target, e.g. "ea-b"
func EdgeID(source, target string) string {
	return fmt.Sprintf("e%s-%s", source, target)
}
