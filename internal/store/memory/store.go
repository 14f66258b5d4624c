package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/store"
)

// Store is an in-memory implementation of the store interface
type Store struct {
	mu sync.RWMutex
	db *data
	tx bool // transactional view; the root store's lock is already held
}

type data struct {
	nextPlayerID       int64
	nextGameID         int64
	nextRegistrationID int64

	players       map[model.PlayerID]*model.Player
	credentials   map[model.PlayerID]*model.Credential
	games         map[model.GameID]*model.Game
	registrations map[model.RegistrationID]*model.Registration
}

// New creates a new in-memory store instance
func New() *Store {
	return &Store{
		db: &data{
			players:       make(map[model.PlayerID]*model.Player),
			credentials:   make(map[model.PlayerID]*model.Credential),
			games:         make(map[model.GameID]*model.Game),
			registrations: make(map[model.RegistrationID]*model.Registration),
		},
	}
}

// Ensure Store implements the interface
var _ store.Store = (*Store)(nil)

// WithTx serializes fn against all other callers by holding the store
// lock for its duration. Writes are applied directly; callers validate
// before their first write, so a failed fn leaves no partial state on
// the paths that use this.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.tx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Store{db: s.db, tx: true})
}

func (s *Store) lock() {
	if !s.tx {
		s.mu.Lock()
	}
}

func (s *Store) unlock() {
	if !s.tx {
		s.mu.Unlock()
	}
}

func (s *Store) rlock() {
	if !s.tx {
		s.mu.RLock()
	}
}

func (s *Store) runlock() {
	if !s.tx {
		s.mu.RUnlock()
	}
}

// Player operations

func (s *Store) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.lock()
	defer s.unlock()
	for _, existing := range s.db.players {
		if existing.Nickname == player.Nickname {
			return model.ErrNicknameTaken
		}
	}
	s.db.nextPlayerID++
	player.ID = model.PlayerID(s.db.nextPlayerID)
	cp := *player
	s.db.players[player.ID] = &cp
	return nil
}

func (s *Store) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.rlock()
	defer s.runlock()
	player, ok := s.db.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

func (s *Store) GetPlayerByNickname(ctx context.Context, nickname string) (*model.Player, error) {
	s.rlock()
	defer s.runlock()
	for _, player := range s.db.players {
		if player.Nickname == nickname {
			cp := *player
			return &cp, nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

func (s *Store) ListActivePlayers(ctx context.Context) ([]*model.Player, error) {
	s.rlock()
	defer s.runlock()
	var players []*model.Player
	for _, player := range s.db.players {
		if player.Active {
			cp := *player
			players = append(players, &cp)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

func (s *Store) UpdatePlayer(ctx context.Context, player *model.Player) error {
	s.lock()
	defer s.unlock()
	if _, ok := s.db.players[player.ID]; !ok {
		return model.ErrPlayerNotFound
	}
	for id, existing := range s.db.players {
		if id != player.ID && existing.Nickname == player.Nickname {
			return model.ErrNicknameTaken
		}
	}
	cp := *player
	s.db.players[player.ID] = &cp
	return nil
}

// Credential operations

func (s *Store) SaveCredential(ctx context.Context, cred *model.Credential) error {
	s.lock()
	defer s.unlock()
	cp := *cred
	s.db.credentials[cred.PlayerID] = &cp
	return nil
}

func (s *Store) GetCredential(ctx context.Context, playerID model.PlayerID) (*model.Credential, error) {
	s.rlock()
	defer s.runlock()
	cred, ok := s.db.credentials[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *cred
	return &cp, nil
}

// Game operations

func (s *Store) CreateGame(ctx context.Context, game *model.Game) error {
	s.lock()
	defer s.unlock()
	s.db.nextGameID++
	game.ID = model.GameID(s.db.nextGameID)
	cp := *game
	s.db.games[game.ID] = &cp
	return nil
}

func (s *Store) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.rlock()
	defer s.runlock()
	game, ok := s.db.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	cp := *game
	return &cp, nil
}

func (s *Store) ListUnfinishedGames(ctx context.Context) ([]*model.Game, error) {
	s.rlock()
	defer s.runlock()
	var games []*model.Game
	for _, game := range s.db.games {
		if !game.Finished() {
			cp := *game
			games = append(games, &cp)
		}
	}
	sortGames(games)
	return games, nil
}

func (s *Store) ListElapsedGames(ctx context.Context, now time.Time) ([]*model.Game, error) {
	s.rlock()
	defer s.runlock()
	var games []*model.Game
	for _, game := range s.db.games {
		if !game.Finished() && game.EndsAt().Before(now) {
			cp := *game
			games = append(games, &cp)
		}
	}
	sortGames(games)
	return games, nil
}

func (s *Store) ListUnannouncedGames(ctx context.Context, from, until time.Time) ([]*model.Game, error) {
	s.rlock()
	defer s.runlock()
	var games []*model.Game
	for _, game := range s.db.games {
		if game.Finished() || game.Announced {
			continue
		}
		start := game.StartsAt()
		if !start.Before(from) && !start.After(until) {
			cp := *game
			games = append(games, &cp)
		}
	}
	sortGames(games)
	return games, nil
}

func (s *Store) UpdateGame(ctx context.Context, game *model.Game) error {
	s.lock()
	defer s.unlock()
	if _, ok := s.db.games[game.ID]; !ok {
		return model.ErrGameNotFound
	}
	cp := *game
	s.db.games[game.ID] = &cp
	return nil
}

func (s *Store) DeleteGame(ctx context.Context, id model.GameID) error {
	s.lock()
	defer s.unlock()
	if _, ok := s.db.games[id]; !ok {
		return model.ErrGameNotFound
	}
	delete(s.db.games, id)
	for regID, reg := range s.db.registrations {
		if reg.GameID == id {
			delete(s.db.registrations, regID)
		}
	}
	return nil
}

// Registration operations

func (s *Store) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	s.lock()
	defer s.unlock()
	for _, existing := range s.db.registrations {
		if existing.GameID == reg.GameID && existing.PlayerID == reg.PlayerID {
			return model.ErrAlreadyRegistered
		}
	}
	s.db.nextRegistrationID++
	reg.ID = model.RegistrationID(s.db.nextRegistrationID)
	cp := *reg
	s.db.registrations[reg.ID] = &cp
	return nil
}

func (s *Store) GetRegistration(ctx context.Context, id model.RegistrationID) (*model.Registration, error) {
	s.rlock()
	defer s.runlock()
	reg, ok := s.db.registrations[id]
	if !ok {
		return nil, model.ErrRegistrationNotFound
	}
	cp := *reg
	return &cp, nil
}

func (s *Store) GetRegistrationForPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Registration, error) {
	s.rlock()
	defer s.runlock()
	for _, reg := range s.db.registrations {
		if reg.GameID == gameID && reg.PlayerID == playerID {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, model.ErrRegistrationNotFound
}

func (s *Store) ListRegistrationsForGame(ctx context.Context, gameID model.GameID) ([]*model.Registration, error) {
	s.rlock()
	defer s.runlock()
	var regs []*model.Registration
	for _, reg := range s.db.registrations {
		if reg.GameID == gameID {
			cp := *reg
			regs = append(regs, &cp)
		}
	}
	sortRegistrations(regs)
	return regs, nil
}

func (s *Store) ListRegistrationsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Registration, error) {
	s.rlock()
	defer s.runlock()
	var regs []*model.Registration
	for _, reg := range s.db.registrations {
		if reg.PlayerID == playerID {
			cp := *reg
			regs = append(regs, &cp)
		}
	}
	sortRegistrations(regs)
	return regs, nil
}

func (s *Store) CountRosterRegistrations(ctx context.Context, gameID model.GameID) (int, error) {
	s.rlock()
	defer s.runlock()
	count := 0
	for _, reg := range s.db.registrations {
		if reg.GameID == gameID && !reg.Waiting {
			count++
		}
	}
	return count, nil
}

func (s *Store) EarliestWaiting(ctx context.Context, gameID model.GameID) (*model.Registration, error) {
	s.rlock()
	defer s.runlock()
	var earliest *model.Registration
	for _, reg := range s.db.registrations {
		if reg.GameID != gameID || !reg.Waiting {
			continue
		}
		if earliest == nil || reg.ID < earliest.ID {
			earliest = reg
		}
	}
	if earliest == nil {
		return nil, model.ErrRegistrationNotFound
	}
	cp := *earliest
	return &cp, nil
}

func (s *Store) UpdateRegistration(ctx context.Context, reg *model.Registration) error {
	s.lock()
	defer s.unlock()
	if _, ok := s.db.registrations[reg.ID]; !ok {
		return model.ErrRegistrationNotFound
	}
	cp := *reg
	s.db.registrations[reg.ID] = &cp
	return nil
}

func (s *Store) DeleteRegistration(ctx context.Context, id model.RegistrationID) error {
	s.lock()
	defer s.unlock()
	if _, ok := s.db.registrations[id]; !ok {
		return model.ErrRegistrationNotFound
	}
	delete(s.db.registrations, id)
	return nil
}

func (s *Store) DeleteRegistrationsForPlayer(ctx context.Context, playerID model.PlayerID) error {
	s.lock()
	defer s.unlock()
	for id, reg := range s.db.registrations {
		if reg.PlayerID == playerID {
			delete(s.db.registrations, id)
		}
	}
	return nil
}

func sortGames(games []*model.Game) {
	sort.Slice(games, func(i, j int) bool {
		if !games[i].EventDate.Equal(games[j].EventDate) {
			return games[i].EventDate.Before(games[j].EventDate)
		}
		return games[i].StartTime < games[j].StartTime
	})
}

func sortRegistrations(regs []*model.Registration) {
	sort.Slice(regs, func(i, j int) bool { return regs[i].ID < regs[j].ID })
}
