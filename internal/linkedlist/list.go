package linkedlist

import (
	"fmt"

	"listeditor/internal/domain"
	"listeditor/internal/idgen"
	"listeditor/internal/logical"
)

// List is a singly linked list of domain.ListNode values
type List struct {
	manager  *logical.Manager[domain.ListValue]
	newID    idgen.Generator
	revision uint64
}

type options struct {
	initial []domain.ListNode
	newID   idgen.Generator
}

// Option configures New
type Option func(*options)

// WithInitialNodes seeds the list. The nodes are chained in the given order.
func WithInitialNodes(nodes ...domain.ListNode) Option {
	return func(o *options) {
		o.initial = append(o.initial, nodes...)
	}
}

// WithValues seeds the list with one node per value
func WithValues(values ...string) Option {
	return func(o *options) {
		for _, v := range values {
			o.initial = append(o.initial, domain.NewListNode("", v, ""))
		}
	}
}

// WithIDGenerator replaces the default UUID generator
func WithIDGenerator(gen idgen.Generator) Option {
	return func(o *options) {
		o.newID = gen
	}
}

// New creates a list, synthesizes its HEAD node and lays it out
func New(pm logical.PositionManager, opts ...Option) (*List, error) {
	o := options{newID: idgen.New()}
	for _, opt := range opts {
		opt(&o)
	}

	for _, n := range o.initial {
		if err := checkValue(n.Value.Value); err != nil {
			return nil, err
		}
	}

	l := &List{newID: o.newID}

	head := domain.NewListNode(l.newID(), domain.HeadValue, domain.TailMarker)
	nodes := make([]domain.ListNode, 0, len(o.initial)+1)
	nodes = append(nodes, head)
	nodes = append(nodes, o.initial...)
	nodes = l.chain(l.uniqueIDs(nodes))

	l.manager = logical.New(pm, nodes...)
	if err := l.manager.UpdatePositions(); err != nil {
		return nil, fmt.Errorf("initial layout: %w", err)
	}
	return l, nil
}

// Nodes returns the node sequence, HEAD first. The slice must not be modified.
func (l *List) Nodes() []domain.ListNode {
	return l.manager.Nodes()
}

// Head returns the sentinel node
func (l *List) Head() domain.ListNode {
	return l.manager.Nodes()[0]
}

// Len returns the number of real nodes, HEAD excluded
func (l *List) Len() int {
	return len(l.manager.Nodes()) - 1
}

// AddNodeAtStart inserts a node directly after HEAD
func (l *List) AddNodeAtStart(value string) error {
	if err := checkValue(value); err != nil {
		return err
	}
	nodes := l.Nodes()
	id := l.freshID(takenIDs(nodes))

	out := make([]domain.ListNode, 0, len(nodes)+1)
	out = append(out, domain.Link(nodes[0], id))
	out = append(out, domain.NewListNode(id, value, successorOf(nodes, 0)))
	out = append(out, nodes[1:]...)

	return l.updateNodes(out)
}

// AddNodeAtEnd appends a node after the current last node
func (l *List) AddNodeAtEnd(value string) error {
	if err := checkValue(value); err != nil {
		return err
	}
	nodes := l.Nodes()
	id := l.freshID(takenIDs(nodes))
	last := len(nodes) - 1

	out := make([]domain.ListNode, 0, len(nodes)+1)
	out = append(out, nodes[:last]...)
	out = append(out, domain.Link(nodes[last], id))
	out = append(out, domain.NewListNode(id, value, domain.TailMarker))

	return l.updateNodes(out)
}

// AddNodeAtPosition inserts a node after nodes[index], where index 0 is HEAD.
// It fails with a *domain.ValidationError if index addresses no node.
func (l *List) AddNodeAtPosition(value string, index int) error {
	if err := checkValue(value); err != nil {
		return err
	}
	nodes := l.Nodes()
	if index < 0 || index >= len(nodes) {
		return invalidIndex()
	}

	id := l.freshID(takenIDs(nodes))
	out := make([]domain.ListNode, 0, len(nodes)+1)
	out = append(out, nodes[:index]...)
	out = append(out, domain.Link(nodes[index], id))
	out = append(out, domain.NewListNode(id, value, successorOf(nodes, index)))
	out = append(out, nodes[index+1:]...)

	return l.updateNodes(out)
}

// RemoveNodeAtStart drops the first real node. It does nothing on a
// HEAD-only list.
func (l *List) RemoveNodeAtStart() error {
	nodes := l.Nodes()
	if len(nodes) < 2 {
		return nil
	}

	out := make([]domain.ListNode, 0, len(nodes)-1)
	out = append(out, domain.Link(nodes[0], successorOf(nodes, 1)))
	out = append(out, nodes[2:]...)

	return l.updateNodes(out)
}

// RemoveNodeAtEnd drops the last node. It does nothing on a HEAD-only list.
func (l *List) RemoveNodeAtEnd() error {
	nodes := l.Nodes()
	if len(nodes) < 2 {
		return nil
	}

	last := len(nodes) - 2
	out := make([]domain.ListNode, 0, len(nodes)-1)
	out = append(out, nodes[:last]...)
	out = append(out, domain.Link(nodes[last], domain.TailMarker))

	return l.updateNodes(out)
}

// RemoveNodeAtPosition drops the real node at index, where index 0 is the
// first node after HEAD. It fails with a *domain.ValidationError if index is
// out of range.
func (l *List) RemoveNodeAtPosition(index int) error {
	nodes := l.Nodes()
	if index < 0 || index >= len(nodes)-1 {
		return invalidIndex()
	}

	pos := index + 1
	out := make([]domain.ListNode, 0, len(nodes)-1)
	out = append(out, nodes[:pos-1]...)
	out = append(out, domain.Link(nodes[pos-1], successorOf(nodes, pos)))
	out = append(out, nodes[pos+1:]...)

	return l.updateNodes(out)
}

// MoveNode overrides a node's position, as when a user drags it on the
// canvas. The next relayout discards the override.
func (l *List) MoveNode(id string, pos domain.Position) error {
	node, ok := l.manager.TargetNode(id)
	if !ok {
		return domain.NewNotFoundError("node %s not found", id)
	}
	node.Position = pos
	l.manager.SetTargetNode(node)
	return nil
}

// Relayout recomputes positions from the node with id fromID onward, leaving
// earlier nodes where they are. An empty fromID relays out the whole list.
func (l *List) Relayout(fromID string) error {
	if fromID == "" {
		return l.manager.UpdatePositions()
	}
	return l.manager.UpdateTargetPosition(fromID)
}

// Revision counts committed structural edits. It advances even when the
// layout after an edit fails.
func (l *List) Revision() uint64 {
	return l.revision
}

// updateNodes commits a new collection and lays it out. A layout failure
// leaves the new adjacency committed with stale positions.
func (l *List) updateNodes(nodes []domain.ListNode) error {
	l.manager.SetNodes(nodes)
	l.revision++
	return l.manager.UpdatePositions()
}

// chain rewires adjacency to follow slice order
func (l *List) chain(nodes []domain.ListNode) []domain.ListNode {
	for i := range nodes {
		nodes[i] = domain.Link(nodes[i], successorOf(nodes, i))
	}
	return nodes
}

// uniqueIDs replaces empty, reserved and duplicate ids with generated ones
func (l *List) uniqueIDs(nodes []domain.ListNode) []domain.ListNode {
	taken := takenIDs(nodes)
	seen := make(map[string]struct{}, len(nodes))
	for i := range nodes {
		id := nodes[i].ID
		if _, dup := seen[id]; dup || reservedID(id) {
			id = l.freshID(taken)
			nodes[i].ID = id
		}
		seen[id] = struct{}{}
	}
	return nodes
}

// freshID returns a generated, unreserved id not in taken and records it there
func (l *List) freshID(taken map[string]struct{}) string {
	for {
		id := l.newID()
		if _, ok := taken[id]; !ok && !reservedID(id) {
			taken[id] = struct{}{}
			return id
		}
	}
}

func takenIDs(nodes []domain.ListNode) map[string]struct{} {
	taken := make(map[string]struct{}, len(nodes)+1)
	for _, n := range nodes {
		taken[n.ID] = struct{}{}
	}
	return taken
}

// successorOf returns the id following nodes[i], or TAIL for the last node
func successorOf(nodes []domain.ListNode, i int) string {
	if i+1 < len(nodes) {
		return nodes[i+1].ID
	}
	return domain.TailMarker
}

// reservedID reports ids a node may not carry: empty, or either marker
func reservedID(id string) bool {
	return id == "" || id == domain.HeadValue || id == domain.TailMarker
}

// checkValue rejects the HEAD payload, which only the sentinel may carry
func checkValue(value string) error {
	if value == domain.HeadValue {
		return domain.NewValidationError("value", "HEAD is reserved for the sentinel node")
	}
	return nil
}

func invalidIndex() error {
	return domain.NewValidationError("index", "Invalid index")
}
