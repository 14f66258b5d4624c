package model

import "time"

// RegistrationID uniquely identifies a registration row
type RegistrationID int64

// Registration ties a player to a game, either on the roster or waitlisted
type Registration struct {
	ID            RegistrationID
	GameID        GameID
	PlayerID      PlayerID
	Confirmed     bool // player has re-affirmed attendance
	Waiting       bool // true while on the waitlist
	SwapRequested bool // advisory flag; the player seeks a replacement
	RegisteredAt  time.Time
}

// OnRoster reports whether the registration occupies a capacity slot
func (r *Registration) OnRoster() bool {
	return !r.Waiting
}

// AdmissionOutcome is the result of an admission attempt
type AdmissionOutcome string

const (
	OutcomeAdmitted   AdmissionOutcome = "admitted"
	OutcomeWaitlisted AdmissionOutcome = "waitlisted"
)

// Promotion records a waitlisted registration moving onto the roster
type Promotion struct {
	RegistrationID RegistrationID
	GameID         GameID
	PlayerID       PlayerID
}

// PlayerRegistration pairs a registration with its game for the
// per-player schedule view
type PlayerRegistration struct {
	Registration *Registration
	Game         *Game
}

// RosterEntry pairs a registration with its player for display
type RosterEntry struct {
	Registration *Registration
	Player       *Player
}

// Roster is the full registration picture for one game
type Roster struct {
	Game     *Game
	Playing  []RosterEntry // waiting=false, ordered by registration id
	Waitlist []RosterEntry // waiting=true, ordered by registration id
}

// ConfirmedCount counts roster entries the player has confirmed
func (r *Roster) ConfirmedCount() int {
	n := 0
	for _, e := range r.Playing {
		if e.Registration.Confirmed {
			n++
		}
	}
	return n
}

// OpenSlots returns remaining roster capacity
func (r *Roster) OpenSlots() int {
	open := r.Game.Capacity - len(r.Playing)
	if open < 0 {
		return 0
	}
	return open
}
