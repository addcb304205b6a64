package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"listeditor/internal/domain"
	"listeditor/internal/idgen"
	"listeditor/internal/linkedlist"
	"listeditor/internal/logical"
	"listeditor/internal/repository"
)

// ErrSessionNotFound is returned for unknown session ids. It matches
// domain.ErrNotFound.
var ErrSessionNotFound = &domain.NotFoundError{Err: errors.New("session not found")}

// errSessionExists is returned by create when the id is already live
var errSessionExists = errors.New("session already exists")

// StrategyFactory builds the position strategy for a new session
type StrategyFactory func() (logical.PositionManager, error)

// ServiceOption configures a ListService
type ServiceOption func(*ListService)

// WithLogger sets the service logger
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *ListService) {
		s.logger = logger
	}
}

// WithIDGenerator sets the generator used for session and node ids
func WithIDGenerator(gen idgen.Generator) ServiceOption {
	return func(s *ListService) {
		s.newID = gen
	}
}

// ListService owns the editing sessions. Each session has its own list and
// position strategy; edits to one session are serialized, different sessions
// proceed concurrently.
type ListService struct {
	repo     repository.Repository
	eventBus *EventBus
	factory  StrategyFactory
	logger   *slog.Logger
	newID    idgen.Generator

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewListService creates a new list service
func NewListService(repo repository.Repository, eventBus *EventBus, factory StrategyFactory, opts ...ServiceOption) *ListService {
	s := &ListService{
		repo:     repo,
		eventBus: eventBus,
		factory:  factory,
		logger:   slog.Default(),
		newID:    idgen.New(),
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a session, optionally seeded with records
func (s *ListService) Create(ctx context.Context, name string, records []domain.Record) (*Snapshot, error) {
	snap, err := s.create(ctx, s.newID(), name, records)
	recordOperation(OpCreate, err)
	return snap, err
}

// Open returns the session with the given id, creating an empty one named
// name if there is none
func (s *ListService) Open(ctx context.Context, id, name string) (*Snapshot, error) {
	if snap, err := s.current(id); err == nil {
		return snap, nil
	}
	snap, err := s.create(ctx, id, name, nil)
	if errors.Is(err, errSessionExists) {
		// another caller created it first
		return s.current(id)
	}
	recordOperation(OpCreate, err)
	return snap, err
}

// current returns the live snapshot of a session
func (s *ListService) current(id string) (*Snapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

func (s *ListService) create(ctx context.Context, id, name string, records []domain.Record) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		name = "Untitled"
	}

	list, err := s.newList()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		if err := list.SetNodesByJSON(records); err != nil {
			return nil, err
		}
	}

	sess := &session{id: id, name: name, list: list, updatedAt: time.Now()}

	s.mu.Lock()
	if _, exists := s.sessions[id]; exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", errSessionExists, id)
	}
	s.sessions[id] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	snap := sess.snapshot()
	listLength.WithLabelValues(id).Set(float64(snap.Length))
	s.publish(EventListCreated, OpCreate, snap)
	s.logger.Info("list created", "session", id, "name", name, "length", snap.Length)
	return snap, nil
}

// Get returns a session's current state
func (s *ListService) Get(ctx context.Context, id string) (*Snapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// List summarizes every session, ordered by name then id
func (s *ListService) List(ctx context.Context) []SessionInfo {
	s.mu.RLock()
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()

	infos := make([]SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		infos = append(infos, sess.info())
	}
	slices.SortFunc(infos, func(a, b SessionInfo) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return infos
}

// Delete ends a session and removes its saved document, if any
func (s *ListService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		err := fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		recordOperation(OpDelete, err)
		return err
	}

	listLength.DeleteLabelValues(id)
	err := s.repo.DeleteDocument(ctx, id)
	recordOperation(OpDelete, err)
	if err != nil {
		return fmt.Errorf("failed to delete saved list: %w", err)
	}

	s.eventBus.Publish(Event{
		Type:    EventListDeleted,
		Payload: ListEventPayload{SessionID: id, Operation: OpDelete},
	})
	s.logger.Info("list deleted", "session", id)
	return nil
}

// AddAtStart inserts value directly after HEAD
func (s *ListService) AddAtStart(ctx context.Context, id, value string) (*Snapshot, error) {
	return s.edit(ctx, id, OpAddAtStart, func(sess *session) (string, error) {
		err := sess.list.AddNodeAtStart(value)
		return sess.nodeIDAt(1), err
	})
}

// AddAtEnd appends value
func (s *ListService) AddAtEnd(ctx context.Context, id, value string) (*Snapshot, error) {
	return s.edit(ctx, id, OpAddAtEnd, func(sess *session) (string, error) {
		err := sess.list.AddNodeAtEnd(value)
		return sess.lastID(), err
	})
}

// AddAtPosition inserts value after the node at index, where index 0 is HEAD
func (s *ListService) AddAtPosition(ctx context.Context, id, value string, index int) (*Snapshot, error) {
	return s.edit(ctx, id, OpAddAtPosition, func(sess *session) (string, error) {
		err := sess.list.AddNodeAtPosition(value, index)
		return sess.nodeIDAt(index + 1), err
	})
}

// RemoveAtStart drops the first real node
func (s *ListService) RemoveAtStart(ctx context.Context, id string) (*Snapshot, error) {
	return s.edit(ctx, id, OpRemoveAtStart, func(sess *session) (string, error) {
		return "", sess.list.RemoveNodeAtStart()
	})
}

// RemoveAtEnd drops the last node
func (s *ListService) RemoveAtEnd(ctx context.Context, id string) (*Snapshot, error) {
	return s.edit(ctx, id, OpRemoveAtEnd, func(sess *session) (string, error) {
		return "", sess.list.RemoveNodeAtEnd()
	})
}

// RemoveAtPosition drops the real node at index, where index 0 is the first
// node after HEAD
func (s *ListService) RemoveAtPosition(ctx context.Context, id string, index int) (*Snapshot, error) {
	return s.edit(ctx, id, OpRemoveAtPosition, func(sess *session) (string, error) {
		return "", sess.list.RemoveNodeAtPosition(index)
	})
}

// Load replaces a session's list with the given records
func (s *ListService) Load(ctx context.Context, id string, records []domain.Record) (*Snapshot, error) {
	return s.edit(ctx, id, OpLoad, func(sess *session) (string, error) {
		return "", sess.list.SetNodesByJSON(records)
	})
}

// Emphasize highlights the real node at index without changing the list
func (s *ListService) Emphasize(ctx context.Context, id string, index int) (*Snapshot, error) {
	return s.edit(ctx, id, OpEmphasize, func(sess *session) (string, error) {
		node, err := sess.list.NodeAt(index)
		if err != nil {
			return "", err
		}
		return node.ID, nil
	})
}

// EmphasizeEdge highlights the edge with the given id ("e<source>-<target>")
// and dims the rest. The highlighted node is kept. Any structural edit clears
// the edge highlight.
func (s *ListService) EmphasizeEdge(ctx context.Context, id, edgeID string) (*Snapshot, error) {
	return s.edit(ctx, id, OpEmphasizeEdge, func(sess *session) (string, error) {
		graph := domain.DeriveGraph(sess.list.Nodes(), "", "")
		if _, ok := graph.Edge(edgeID); !ok {
			return "", domain.NewNotFoundError("edge %s not found", edgeID)
		}
		sess.activeEdgeID = edgeID
		return sess.activeID, nil
	})
}

// MoveNode overrides one node's position until the next relayout
func (s *ListService) MoveNode(ctx context.Context, id, nodeID string, pos domain.Position) (*Snapshot, error) {
	return s.edit(ctx, id, OpMoveNode, func(sess *session) (string, error) {
		if err := sess.list.MoveNode(nodeID, pos); err != nil {
			return "", err
		}
		return nodeID, nil
	})
}

// Relayout recomputes positions from fromID onward, or for the whole list
// when fromID is empty
func (s *ListService) Relayout(ctx context.Context, id, fromID string) (*Snapshot, error) {
	return s.edit(ctx, id, OpRelayout, func(sess *session) (string, error) {
		return sess.activeID, sess.list.Relayout(fromID)
	})
}

// Records returns a session's list in bulk-load form
func (s *ListService) Records(ctx context.Context, id string) ([]domain.Record, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.list.Records(), nil
}

// Save persists a session's records under the session id
func (s *ListService) Save(ctx context.Context, id string) error {
	err := s.save(ctx, id)
	recordOperation(OpSave, err)
	return err
}

func (s *ListService) save(ctx context.Context, id string) error {
	sess, err := s.session(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	doc := domain.NewDocument(sess.id, sess.name, sess.list.Records())
	if err := s.repo.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to save list: %w", err)
	}

	s.publish(EventListSaved, OpSave, sess.snapshot())
	s.logger.Info("list saved", "session", id, "length", len(doc.Records))
	return nil
}

// Restore reloads a session from its saved document. A saved list with no
// live session gets a new session under the same id.
func (s *ListService) Restore(ctx context.Context, id string) (*Snapshot, error) {
	snap, err := s.restore(ctx, id)
	recordOperation(OpRestore, err)
	return snap, err
}

func (s *ListService) restore(ctx context.Context, id string) (*Snapshot, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved list: %w", err)
	}
	if doc == nil {
		return nil, domain.NewNotFoundError("no saved list %s", id)
	}

	sess, err := s.session(id)
	if err != nil {
		snap, err := s.create(ctx, doc.ID, doc.Name, doc.Records)
		if !errors.Is(err, errSessionExists) {
			return snap, err
		}
		if sess, err = s.session(id); err != nil {
			return nil, err
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	list, err := s.newList()
	if err != nil {
		return nil, err
	}
	if len(doc.Records) > 0 {
		if err := list.SetNodesByJSON(doc.Records); err != nil {
			return nil, err
		}
	}
	sess.list = list
	sess.name = doc.Name
	sess.activeID = ""
	sess.activeEdgeID = ""
	sess.updatedAt = time.Now()

	snap := sess.snapshot()
	listLength.WithLabelValues(id).Set(float64(snap.Length))
	s.publish(EventListRestored, OpRestore, snap)
	s.logger.Info("list restored", "session", id, "length", snap.Length)
	return snap, nil
}

// SavedDocuments lists every saved document
func (s *ListService) SavedDocuments(ctx context.Context) ([]domain.Document, error) {
	return s.repo.ListDocuments(ctx)
}

// edit runs fn under the session lock. fn returns the id of the node to
// highlight. A failed edit publishes only if it still changed the list.
func (s *ListService) edit(ctx context.Context, id, op string, fn func(*session) (string, error)) (*Snapshot, error) {
	snap, err := s.apply(ctx, id, op, fn)
	recordOperation(op, err)
	if err != nil {
		s.logger.Debug("list operation failed", "session", id, "operation", op, "error", err)
		return nil, err
	}
	return snap, nil
}

func (s *ListService) apply(ctx context.Context, id, op string, fn func(*session) (string, error)) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	revision := sess.list.Revision()
	activeID, err := fn(sess)
	changed := sess.list.Revision() != revision
	if err != nil && !changed {
		return nil, err
	}

	// A layout failure after a structural edit still commits the new
	// adjacency, so subscribers hear about it either way.
	sess.activeID = activeID
	if changed {
		sess.activeEdgeID = ""
	}
	sess.updatedAt = time.Now()

	snap := sess.snapshot()
	listLength.WithLabelValues(id).Set(float64(snap.Length))
	s.publish(EventListUpdated, op, snap)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *ListService) session(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

func (s *ListService) newList() (*linkedlist.List, error) {
	pm, err := s.factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create layout strategy: %w", err)
	}
	return linkedlist.New(pm, linkedlist.WithIDGenerator(s.newID))
}

func (s *ListService) publish(t EventType, op string, snap *Snapshot) {
	s.eventBus.Publish(Event{
		Type: t,
		Payload: ListEventPayload{
			SessionID: snap.ID,
			Operation: op,
			Length:    snap.Length,
			ActiveID:  snap.ActiveID,
		},
	})
}
