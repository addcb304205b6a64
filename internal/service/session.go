package service

import (
	"sync"
	"time"

	"listeditor/internal/domain"
	"listeditor/internal/linkedlist"
)

// session is one editing session. mu serializes every access to list.
type session struct {
	mu       sync.Mutex
	id       string
	name     string
	list     *linkedlist.List
	activeID string
	// activeEdgeID is cleared by every structural edit
	activeEdgeID string
	updatedAt    time.Time
}

// Snapshot is the state of a session after an operation
type Snapshot struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Length       int               `json:"length"`
	ActiveID     string            `json:"active_id,omitempty"`
	ActiveEdgeID string            `json:"active_edge_id,omitempty"`
	Nodes        []domain.ListNode `json:"nodes"`
	Graph        *domain.Graph     `json:"graph"`
}

// SessionInfo summarizes a session for listings
type SessionInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Length    int       `json:"length"`
	UpdatedAt time.Time `json:"updated_at"`
}

// snapshot copies the session state. Callers hold s.mu.
func (s *session) snapshot() *Snapshot {
	nodes := make([]domain.ListNode, len(s.list.Nodes()))
	copy(nodes, s.list.Nodes())
	return &Snapshot{
		ID:           s.id,
		Name:         s.name,
		Length:       s.list.Len(),
		ActiveID:     s.activeID,
		ActiveEdgeID: s.activeEdgeID,
		Nodes:        nodes,
		Graph:        domain.DeriveGraph(nodes, s.activeID, s.activeEdgeID),
	}
}

func (s *session) info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionInfo{
		ID:        s.id,
		Name:      s.name,
		Length:    s.list.Len(),
		UpdatedAt: s.updatedAt,
	}
}

// nodeIDAt returns the id of nodes[index] (HEAD is 0), or "" if out of range
func (s *session) nodeIDAt(index int) string {
	nodes := s.list.Nodes()
	if index < 0 || index >= len(nodes) {
		return ""
	}
	return nodes[index].ID
}

func (s *session) lastID() string {
	if s.list.Len() == 0 {
		return ""
	}
	return s.nodeIDAt(s.list.Len())
}
