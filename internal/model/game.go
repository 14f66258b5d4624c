package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GameID uniquely identifies a scheduled game
type GameID int64

// DateLayout is the wire and display format for event dates
const DateLayout = "2006-01-02"

// DayTime is a wall-clock time of day in 24h "HH:MM" form
type DayTime string

// ParseDayTime validates a raw "HH:MM" string
func ParseDayTime(raw string) (DayTime, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return "", NewValidationError("time", "must be 24h HH:MM")
	}
	return DayTime(t.Format("15:04")), nil
}

// At anchors the time of day onto the given date
func (d DayTime) At(date time.Time) time.Time {
	t, err := time.Parse("15:04", string(d))
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// ParseEventDate validates a raw ISO date string
func ParseEventDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, NewValidationError("event_date", "must be YYYY-MM-DD")
	}
	return t, nil
}

// ParseCapacity validates a raw capacity string
func ParseCapacity(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, NewValidationError("capacity", "must be a positive integer")
	}
	return n, nil
}

// Game represents one scheduled court booking players register for
type Game struct {
	ID         GameID
	EventDate  time.Time // date portion only, midnight in the club's zone
	StartTime  DayTime
	EndTime    DayTime
	Venue      string
	Capacity   int // roster slots; waitlist is unbounded
	Announced  bool
	FinishedAt *time.Time // nil while the game is open for registration
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Finished reports whether the game is closed to registration
func (g *Game) Finished() bool {
	return g.FinishedAt != nil
}

// EndsAt returns the absolute end instant of the booking
func (g *Game) EndsAt() time.Time {
	return g.EndTime.At(g.EventDate)
}

// StartsAt returns the absolute start instant of the booking
func (g *Game) StartsAt() time.Time {
	return g.StartTime.At(g.EventDate)
}

// Label renders the short one-line form used in pickers and announcements
func (g *Game) Label() string {
	return fmt.Sprintf("%s %s-%s @ %s", g.EventDate.Format("Mon 02 Jan"), g.StartTime, g.EndTime, g.Venue)
}

// GameAttribute names a game field editable through the edit flow.
// Updates go through typed setters keyed on this set; raw attribute
// strings never reach the storage layer.
type GameAttribute string

const (
	GameAttributeEventDate GameAttribute = "event_date"
	GameAttributeStartTime GameAttribute = "start_time"
	GameAttributeEndTime   GameAttribute = "end_time"
	GameAttributeVenue     GameAttribute = "venue"
	GameAttributeCapacity  GameAttribute = "capacity"
)

// GameAttributes returns the closed set of editable game fields
func GameAttributes() []GameAttribute {
	return []GameAttribute{
		GameAttributeEventDate,
		GameAttributeStartTime,
		GameAttributeEndTime,
		GameAttributeVenue,
		GameAttributeCapacity,
	}
}

// ParseGameAttribute validates a raw attribute name
func ParseGameAttribute(raw string) (GameAttribute, error) {
	for _, a := range GameAttributes() {
		if string(a) == raw {
			return a, nil
		}
	}
	return "", NewValidationError("attribute", fmt.Sprintf("must be one of %v", GameAttributes()))
}
