package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/courtside/rallybot/internal/dependencies/clock"
	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/store"
)

// Session represents an authenticated session
type Session struct {
	Token     string
	PlayerID  model.PlayerID
	Player    model.Player
	Admin     bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles authentication and session management. Tokens live in
// memory, so a restart logs everyone out.
type Service struct {
	store store.Store
	clock clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
	admins          map[string]struct{} // nicknames with admin rights
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	AdminNicknames  []string
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth service
func New(st store.Store, clk clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	admins := make(map[string]struct{}, len(cfg.AdminNicknames))
	for _, nickname := range cfg.AdminNicknames {
		admins[strings.TrimSpace(nickname)] = struct{}{}
	}
	return &Service{
		store:           st,
		clock:           clk,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
		admins:          admins,
	}
}

// Register creates a player account with credentials and opens a session
func (s *Service) Register(ctx context.Context, name, nickname, password string, level model.Level) (*Session, error) {
	name = strings.TrimSpace(name)
	nickname = strings.TrimSpace(nickname)
	if name == "" {
		return nil, model.NewValidationError("name", "must not be empty")
	}
	if nickname == "" {
		return nil, model.NewValidationError("nickname", "must not be empty")
	}
	if len(password) < 8 {
		return nil, model.NewValidationError("password", "must be at least 8 characters")
	}
	if _, err := model.ParseLevel(string(level)); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	player := &model.Player{
		Name:      name,
		Nickname:  nickname,
		Level:     level,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.CreatePlayer(ctx, player); err != nil {
			return err
		}
		return tx.SaveCredential(ctx, &model.Credential{
			PlayerID:     player.ID,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.createSession(player), nil
}

// Login authenticates a player by nickname and opens a session. Missing
// players and bad passwords read the same so nicknames can't be probed.
func (s *Service) Login(ctx context.Context, nickname, password string) (*Session, error) {
	player, err := s.store.GetPlayerByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}
	if !player.Active {
		return nil, model.ErrInvalidCredentials
	}

	cred, err := s.store.GetCredential(ctx, player.ID)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.createSession(player), nil
}

// ValidateToken checks a session token and returns the session
func (s *Service) ValidateToken(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrInvalidToken
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, model.ErrInvalidToken
	}

	return session, nil
}

// RequireAdmin validates a token and rejects non-admin sessions
func (s *Service) RequireAdmin(token string) (*Session, error) {
	session, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if !session.Admin {
		return nil, model.ErrNotAdmin
	}
	return session, nil
}

// Logout removes a session
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

func (s *Service) createSession(player *model.Player) *Session {
	now := s.clock.Now()
	_, admin := s.admins[player.Nickname]

	session := &Session{
		Token:     uuid.NewString(),
		PlayerID:  player.ID,
		Player:    *player,
		Admin:     admin,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// Interface for dependency injection
type ServiceInterface interface {
	Register(ctx context.Context, name, nickname, password string, level model.Level) (*Session, error)
	Login(ctx context.Context, nickname, password string) (*Session, error)
	ValidateToken(token string) (*Session, error)
	RequireAdmin(token string) (*Session, error)
	Logout(token string)
	CleanExpiredSessions()
}

var _ ServiceInterface = (*Service)(nil)
