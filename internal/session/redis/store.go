package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/session"
)

// Store is a Redis-backed implementation of the session store
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis session store
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis session store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ session.Store = (*Store)(nil)

// Game edit flow state

func (s *Store) GetEditState(ctx context.Context, conversationID string) (*model.GameEditState, error) {
	data, err := s.client.Get(ctx, editStateKey(conversationID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var state model.GameEditState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) SaveEditState(ctx context.Context, conversationID string, state *model.GameEditState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, editStateKey(conversationID), data, s.cfg.EditSessionTTL).Err()
}

func (s *Store) DeleteEditState(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, editStateKey(conversationID)).Err()
}

// Game creation flow state

func (s *Store) GetDraftState(ctx context.Context, conversationID string) (*model.GameDraftState, error) {
	data, err := s.client.Get(ctx, draftStateKey(conversationID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var state model.GameDraftState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) SaveDraftState(ctx context.Context, conversationID string, state *model.GameDraftState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, draftStateKey(conversationID), data, s.cfg.DraftSessionTTL).Err()
}

func (s *Store) DeleteDraftState(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, draftStateKey(conversationID)).Err()
}
