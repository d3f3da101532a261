// Package memory provides the in-memory transactional node store used for
// tests and ephemeral environments, and as the state engine behind the
// persistent backends.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"cdscore/pkg/artifact"
)

// Compile-time contract assertion.
var _ artifact.Store = (*Store)(nil)

type memoryState struct {
	nodes map[string]artifact.Node
	terms map[string]artifact.Term
}

// Snapshot captures a point-in-time clone of the store state.
type Snapshot struct {
	Nodes map[string]artifact.Node `json:"nodes"`
	Terms map[string]artifact.Term `json:"terms"`
}

func newMemoryState() memoryState {
	return memoryState{
		nodes: make(map[string]artifact.Node),
		terms: make(map[string]artifact.Term),
	}
}

func (s memoryState) clone() memoryState {
	out := memoryState{
		nodes: make(map[string]artifact.Node, len(s.nodes)),
		terms: make(map[string]artifact.Term, len(s.terms)),
	}
	for k, v := range s.nodes {
		out.nodes[k] = v.Clone()
	}
	for k, v := range s.terms {
		out.terms[k] = v
	}
	return out
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	s := Snapshot{
		Nodes: make(map[string]artifact.Node, len(state.nodes)),
		Terms: make(map[string]artifact.Term, len(state.terms)),
	}
	for k, v := range state.nodes {
		s.Nodes[k] = v.Clone()
	}
	for k, v := range state.terms {
		s.Terms[k] = v
	}
	return s
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	for k, v := range s.Nodes {
		state.nodes[k] = v.Clone()
	}
	for k, v := range s.Terms {
		state.terms[k] = v
	}
	return state
}

// Store provides an in-memory transactional store for artifact nodes and
// vocabulary terms.
type Store struct {
	mu    sync.RWMutex
	state memoryState
	nowFn func() time.Time
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		state: newMemoryState(),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

// SetNowFunc overrides the store clock, for deterministic tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		s.nowFn = fn
	}
}

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(snapshot)
}

// RunInTransaction executes fn within a transactional copy of the store
// state. The copy becomes the new state only when fn returns nil.
func (s *Store) RunInTransaction(_ context.Context, fn func(tx artifact.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		state: s.state.clone(),
		now:   s.nowFn(),
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(v artifact.View) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(stateView{state: &snapshot})
}

// transaction is the mutable unit of work handed to RunInTransaction.
type transaction struct {
	state memoryState
	now   time.Time
}

// stateView exposes read operations over a transactional state.
type stateView struct {
	state *memoryState
}

func (tx *transaction) view() stateView { return stateView{state: &tx.state} }

// CreateNode assigns a fresh ID and stores the node.
func (tx *transaction) CreateNode(n artifact.Node) (artifact.Node, error) {
	if n.Type == "" {
		return artifact.Node{}, fmt.Errorf("memory: node type required")
	}
	n.ID = newID()
	n.CreatedAt = tx.now
	n.UpdatedAt = tx.now
	tx.state.nodes[n.ID] = n.Clone()
	return n, nil
}

// UpdateNode replaces a stored node in place, keeping its creation time.
func (tx *transaction) UpdateNode(n artifact.Node) (artifact.Node, error) {
	prev, ok := tx.state.nodes[n.ID]
	if !ok {
		return artifact.Node{}, fmt.Errorf("memory: node %s not found", n.ID)
	}
	n.Type = prev.Type
	n.CreatedAt = prev.CreatedAt
	n.UpdatedAt = tx.now
	tx.state.nodes[n.ID] = n.Clone()
	return n, nil
}

// CreateTerm assigns a fresh ID and stores the vocabulary term.
func (tx *transaction) CreateTerm(t artifact.Term) (artifact.Term, error) {
	if t.Vocabulary == "" || t.Name == "" {
		return artifact.Term{}, fmt.Errorf("memory: term vocabulary and name required")
	}
	t.ID = newID()
	tx.state.terms[t.ID] = t
	return t, nil
}

func (tx *transaction) GetNode(id string) (artifact.Node, bool) {
	return tx.view().GetNode(id)
}

func (tx *transaction) QueryByTitle(nodeType, title string) []artifact.Node {
	return tx.view().QueryByTitle(nodeType, title)
}

func (tx *transaction) ListTerms(vocabulary string) []artifact.Term {
	return tx.view().ListTerms(vocabulary)
}

func (v stateView) GetNode(id string) (artifact.Node, bool) {
	n, ok := v.state.nodes[id]
	if !ok {
		return artifact.Node{}, false
	}
	return n.Clone(), true
}

// QueryByTitle returns every node of the type whose title value matches,
// ordered by ascending ID so callers resolve collisions deterministically.
func (v stateView) QueryByTitle(nodeType, title string) []artifact.Node {
	var out []artifact.Node
	for _, n := range v.state.nodes {
		if n.Type != nodeType {
			continue
		}
		if t, ok := n.Values["title"].(string); ok && t == title {
			out = append(out, n.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListTerms returns the vocabulary's terms ordered by ascending ID.
func (v stateView) ListTerms(vocabulary string) []artifact.Term {
	var out []artifact.Term
	for _, t := range v.state.terms {
		if t.Vocabulary == vocabulary {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
