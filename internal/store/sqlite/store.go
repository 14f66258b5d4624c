package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/store"
)

const (
	timestampLayout = time.RFC3339
	instantLayout   = "2006-01-02 15:04" // event_date || ' ' || time columns
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a SQLite implementation of the store interface
type Store struct {
	db *sql.DB // nil on transactional views
	q  querier
}

// Ensure Store implements the interface
var _ store.Store = (*Store)(nil)

// New opens (or creates) the database at path and applies migrations
func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA foreign_keys = ON`,
		`PRAGMA busy_timeout = 5000`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}
	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, q: db}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// WithTx runs fn inside a database transaction. Calls on an already
// transactional view reuse the open transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&Store{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Player operations

func (s *Store) CreatePlayer(ctx context.Context, player *model.Player) error {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO players (name, nickname, level, active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		player.Name, player.Nickname, string(player.Level), player.Active,
		player.CreatedAt.Format(timestampLayout), player.UpdatedAt.Format(timestampLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrNicknameTaken
		}
		return fmt.Errorf("insert player: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("player insert id: %w", err)
	}
	player.ID = model.PlayerID(id)
	return nil
}

const playerColumns = `id, name, nickname, level, active, created_at, updated_at`

func (s *Store) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, int64(id))
	return scanPlayer(row)
}

func (s *Store) GetPlayerByNickname(ctx context.Context, nickname string) (*model.Player, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE nickname = ?`, nickname)
	return scanPlayer(row)
}

func (s *Store) ListActivePlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+playerColumns+` FROM players WHERE active = 1 ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []*model.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func (s *Store) UpdatePlayer(ctx context.Context, player *model.Player) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE players SET name = ?, nickname = ?, level = ?, active = ?, updated_at = ? WHERE id = ?`,
		player.Name, player.Nickname, string(player.Level), player.Active,
		player.UpdatedAt.Format(timestampLayout), int64(player.ID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrNicknameTaken
		}
		return fmt.Errorf("update player: %w", err)
	}
	return requireRow(res, model.ErrPlayerNotFound)
}

// Credential operations

func (s *Store) SaveCredential(ctx context.Context, cred *model.Credential) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO credentials (player_id, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (player_id) DO UPDATE SET password_hash = excluded.password_hash, updated_at = excluded.updated_at`,
		int64(cred.PlayerID), cred.PasswordHash,
		cred.CreatedAt.Format(timestampLayout), cred.UpdatedAt.Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *Store) GetCredential(ctx context.Context, playerID model.PlayerID) (*model.Credential, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT player_id, password_hash, created_at, updated_at FROM credentials WHERE player_id = ?`,
		int64(playerID),
	)
	var cred model.Credential
	var playerIDRaw int64
	var createdAt, updatedAt string
	if err := row.Scan(&playerIDRaw, &cred.PasswordHash, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("scan credential: %w", err)
	}
	cred.PlayerID = model.PlayerID(playerIDRaw)
	cred.CreatedAt = parseTimestamp(createdAt)
	cred.UpdatedAt = parseTimestamp(updatedAt)
	return &cred, nil
}

// Game operations

func (s *Store) CreateGame(ctx context.Context, game *model.Game) error {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO games (event_date, start_time, end_time, venue, capacity, announced, finished_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.EventDate.Format(model.DateLayout), string(game.StartTime), string(game.EndTime),
		game.Venue, game.Capacity, game.Announced, timePtrValue(game.FinishedAt),
		game.CreatedAt.Format(timestampLayout), game.UpdatedAt.Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("game insert id: %w", err)
	}
	game.ID = model.GameID(id)
	return nil
}

const gameColumns = `id, event_date, start_time, end_time, venue, capacity, announced, finished_at, created_at, updated_at`

func (s *Store) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, int64(id))
	return scanGame(row)
}

func (s *Store) ListUnfinishedGames(ctx context.Context) ([]*model.Game, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE finished_at IS NULL ORDER BY event_date ASC, start_time ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return collectGames(rows)
}

func (s *Store) ListElapsedGames(ctx context.Context, now time.Time) ([]*model.Game, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE finished_at IS NULL AND (event_date || ' ' || end_time) < ?`,
		now.Format(instantLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("list elapsed games: %w", err)
	}
	return collectGames(rows)
}

func (s *Store) ListUnannouncedGames(ctx context.Context, from, until time.Time) ([]*model.Game, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games
		 WHERE finished_at IS NULL AND announced = 0
		   AND (event_date || ' ' || start_time) >= ? AND (event_date || ' ' || start_time) <= ?
		 ORDER BY event_date ASC, start_time ASC`,
		from.Format(instantLayout), until.Format(instantLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("list unannounced games: %w", err)
	}
	return collectGames(rows)
}

func (s *Store) UpdateGame(ctx context.Context, game *model.Game) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE games SET event_date = ?, start_time = ?, end_time = ?, venue = ?, capacity = ?, announced = ?, finished_at = ?, updated_at = ?
		 WHERE id = ?`,
		game.EventDate.Format(model.DateLayout), string(game.StartTime), string(game.EndTime),
		game.Venue, game.Capacity, game.Announced, timePtrValue(game.FinishedAt),
		game.UpdatedAt.Format(timestampLayout), int64(game.ID),
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	return requireRow(res, model.ErrGameNotFound)
}

func (s *Store) DeleteGame(ctx context.Context, id model.GameID) error {
	// registrations cascade via foreign key
	res, err := s.q.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return requireRow(res, model.ErrGameNotFound)
}

// Registration operations

func (s *Store) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO registrations (game_id, player_id, confirmed, waiting, swap_requested, registered_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		int64(reg.GameID), int64(reg.PlayerID), reg.Confirmed, reg.Waiting, reg.SwapRequested,
		reg.RegisteredAt.Format(timestampLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("registration insert id: %w", err)
	}
	reg.ID = model.RegistrationID(id)
	return nil
}

const registrationColumns = `id, game_id, player_id, confirmed, waiting, swap_requested, registered_at`

func (s *Store) GetRegistration(ctx context.Context, id model.RegistrationID) (*model.Registration, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE id = ?`, int64(id))
	return scanRegistration(row)
}

func (s *Store) GetRegistrationForPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Registration, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE game_id = ? AND player_id = ?`,
		int64(gameID), int64(playerID),
	)
	return scanRegistration(row)
}

func (s *Store) ListRegistrationsForGame(ctx context.Context, gameID model.GameID) ([]*model.Registration, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE game_id = ? ORDER BY id ASC`,
		int64(gameID),
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return collectRegistrations(rows)
}

func (s *Store) ListRegistrationsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Registration, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE player_id = ? ORDER BY id ASC`,
		int64(playerID),
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return collectRegistrations(rows)
}

func (s *Store) CountRosterRegistrations(ctx context.Context, gameID model.GameID) (int, error) {
	var count int
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE game_id = ? AND waiting = 0`,
		int64(gameID),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count roster: %w", err)
	}
	return count, nil
}

func (s *Store) EarliestWaiting(ctx context.Context, gameID model.GameID) (*model.Registration, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE game_id = ? AND waiting = 1 ORDER BY id ASC LIMIT 1`,
		int64(gameID),
	)
	return scanRegistration(row)
}

func (s *Store) UpdateRegistration(ctx context.Context, reg *model.Registration) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE registrations SET confirmed = ?, waiting = ?, swap_requested = ? WHERE id = ?`,
		reg.Confirmed, reg.Waiting, reg.SwapRequested, int64(reg.ID),
	)
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	return requireRow(res, model.ErrRegistrationNotFound)
}

func (s *Store) DeleteRegistration(ctx context.Context, id model.RegistrationID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM registrations WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return requireRow(res, model.ErrRegistrationNotFound)
}

func (s *Store) DeleteRegistrationsForPlayer(ctx context.Context, playerID model.PlayerID) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM registrations WHERE player_id = ?`, int64(playerID))
	if err != nil {
		return fmt.Errorf("delete registrations: %w", err)
	}
	return nil
}

// Scan helpers

type rowScanner interface{ Scan(dest ...any) error }

func scanPlayer(scanner rowScanner) (*model.Player, error) {
	var player model.Player
	var id int64
	var level, createdAt, updatedAt string
	if err := scanner.Scan(&id, &player.Name, &player.Nickname, &level, &player.Active, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	player.ID = model.PlayerID(id)
	player.Level = model.Level(level)
	player.CreatedAt = parseTimestamp(createdAt)
	player.UpdatedAt = parseTimestamp(updatedAt)
	return &player, nil
}

func scanGame(scanner rowScanner) (*model.Game, error) {
	var game model.Game
	var id int64
	var eventDate, startTime, endTime, createdAt, updatedAt string
	var finishedAt sql.NullString
	if err := scanner.Scan(&id, &eventDate, &startTime, &endTime, &game.Venue, &game.Capacity,
		&game.Announced, &finishedAt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, fmt.Errorf("scan game: %w", err)
	}
	game.ID = model.GameID(id)
	if parsed, err := time.Parse(model.DateLayout, eventDate); err == nil {
		game.EventDate = parsed
	}
	game.StartTime = model.DayTime(startTime)
	game.EndTime = model.DayTime(endTime)
	if finishedAt.Valid {
		t := parseTimestamp(finishedAt.String)
		game.FinishedAt = &t
	}
	game.CreatedAt = parseTimestamp(createdAt)
	game.UpdatedAt = parseTimestamp(updatedAt)
	return &game, nil
}

func scanRegistration(scanner rowScanner) (*model.Registration, error) {
	var reg model.Registration
	var id, gameID, playerID int64
	var registeredAt string
	if err := scanner.Scan(&id, &gameID, &playerID, &reg.Confirmed, &reg.Waiting, &reg.SwapRequested, &registeredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	reg.ID = model.RegistrationID(id)
	reg.GameID = model.GameID(gameID)
	reg.PlayerID = model.PlayerID(playerID)
	reg.RegisteredAt = parseTimestamp(registeredAt)
	return &reg, nil
}

func collectGames(rows *sql.Rows) ([]*model.Game, error) {
	defer rows.Close()
	var games []*model.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func collectRegistrations(rows *sql.Rows) ([]*model.Registration, error) {
	defer rows.Close()
	var regs []*model.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func requireRow(res sql.Result, missing error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return missing
	}
	return nil
}

func timePtrValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timestampLayout)
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(timestampLayout, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
