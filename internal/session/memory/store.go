package memory

import (
	"context"
	"sync"

	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/session"
)

// Store is an in-memory implementation of the session store
type Store struct {
	mu     sync.RWMutex
	edits  map[string]*model.GameEditState
	drafts map[string]*model.GameDraftState
}

// New creates a new in-memory session store
func New() *Store {
	return &Store{
		edits:  make(map[string]*model.GameEditState),
		drafts: make(map[string]*model.GameDraftState),
	}
}

// Ensure Store implements the interface
var _ session.Store = (*Store)(nil)

func (s *Store) GetEditState(ctx context.Context, conversationID string) (*model.GameEditState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.edits[conversationID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	cp := *state
	return &cp, nil
}

func (s *Store) SaveEditState(ctx context.Context, conversationID string, state *model.GameEditState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *state
	s.edits[conversationID] = &cp
	return nil
}

func (s *Store) DeleteEditState(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.edits, conversationID)
	return nil
}

func (s *Store) GetDraftState(ctx context.Context, conversationID string) (*model.GameDraftState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.drafts[conversationID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	cp := *state
	return &cp, nil
}

func (s *Store) SaveDraftState(ctx context.Context, conversationID string, state *model.GameDraftState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *state
	s.drafts[conversationID] = &cp
	return nil
}

func (s *Store) DeleteDraftState(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, conversationID)
	return nil
}
