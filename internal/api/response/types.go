package response

import (
	"time"

	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/services/auth"
)

// Player represents a club member in API responses
type Player struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Level    string `json:"level"`
	Active   bool   `json:"active"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:       int64(p.ID),
		Name:     p.Name,
		Nickname: p.Nickname,
		Level:    string(p.Level),
		Active:   p.Active,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player Player    `json:"player"`
	Token  string    `json:"token"`
	Admin  bool      `json:"admin"`
	Expires time.Time `json:"expires"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:  PlayerFromModel(&s.Player),
		Token:   s.Token,
		Admin:   s.Admin,
		Expires: s.ExpiresAt,
	}
}

// Game represents a game in API responses
type Game struct {
	ID         int64      `json:"id"`
	EventDate  string     `json:"event_date"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	Venue      string     `json:"venue"`
	Capacity   int        `json:"capacity"`
	Announced  bool       `json:"announced"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Label      string     `json:"label"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:         int64(g.ID),
		EventDate:  g.EventDate.Format(model.DateLayout),
		StartTime:  string(g.StartTime),
		EndTime:    string(g.EndTime),
		Venue:      g.Venue,
		Capacity:   g.Capacity,
		Announced:  g.Announced,
		FinishedAt: g.FinishedAt,
		Label:      g.Label(),
	}
}

// GamesFromModel converts a slice of games
func GamesFromModel(games []*model.Game) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g)
	}
	return out
}

// Registration represents a registration in API responses
type Registration struct {
	ID            int64     `json:"id"`
	GameID        int64     `json:"game_id"`
	PlayerID      int64     `json:"player_id"`
	Confirmed     bool      `json:"confirmed"`
	Waiting       bool      `json:"waiting"`
	SwapRequested bool      `json:"swap_requested"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// RegistrationFromModel converts a model.Registration
func RegistrationFromModel(r *model.Registration) Registration {
	return Registration{
		ID:            int64(r.ID),
		GameID:        int64(r.GameID),
		PlayerID:      int64(r.PlayerID),
		Confirmed:     r.Confirmed,
		Waiting:       r.Waiting,
		SwapRequested: r.SwapRequested,
		RegisteredAt:  r.RegisteredAt,
	}
}

// AdmissionResponse is the response after registering for a game
type AdmissionResponse struct {
	Outcome      string       `json:"outcome"`
	Registration Registration `json:"registration"`
}

// RosterEntry pairs a registration with its player
type RosterEntry struct {
	Registration Registration `json:"registration"`
	Player       Player       `json:"player"`
}

// Roster represents the full registration picture of a game
type Roster struct {
	Game     Game          `json:"game"`
	Playing  []RosterEntry `json:"playing"`
	Waitlist []RosterEntry `json:"waitlist"`
}

// RosterFromModel converts a model.Roster
func RosterFromModel(r *model.Roster) Roster {
	convert := func(entries []model.RosterEntry) []RosterEntry {
		out := make([]RosterEntry, len(entries))
		for i, e := range entries {
			out[i] = RosterEntry{
				Registration: RegistrationFromModel(e.Registration),
				Player:       PlayerFromModel(e.Player),
			}
		}
		return out
	}
	return Roster{
		Game:     GameFromModel(r.Game),
		Playing:  convert(r.Playing),
		Waitlist: convert(r.Waitlist),
	}
}

// PlayerRegistration pairs a registration with its game
type PlayerRegistration struct {
	Registration Registration `json:"registration"`
	Game         Game         `json:"game"`
}

// PlayerRegistrationsFromModel converts a player's registration list
func PlayerRegistrationsFromModel(regs []model.PlayerRegistration) []PlayerRegistration {
	out := make([]PlayerRegistration, len(regs))
	for i, r := range regs {
		out[i] = PlayerRegistration{
			Registration: RegistrationFromModel(r.Registration),
			Game:         GameFromModel(r.Game),
		}
	}
	return out
}

// Promotion describes a waitlisted registration moving onto the roster
type Promotion struct {
	RegistrationID int64 `json:"registration_id"`
	GameID         int64 `json:"game_id"`
	PlayerID       int64 `json:"player_id"`
}

// CancelResponse is the response after cancelling a registration
type CancelResponse struct {
	Promotion *Promotion `json:"promotion,omitempty"`
}

// CancelResponseFromModel converts an optional promotion
func CancelResponseFromModel(p *model.Promotion) CancelResponse {
	if p == nil {
		return CancelResponse{}
	}
	return CancelResponse{Promotion: &Promotion{
		RegistrationID: int64(p.RegistrationID),
		GameID:         int64(p.GameID),
		PlayerID:       int64(p.PlayerID),
	}}
}
