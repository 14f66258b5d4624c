package model

import (
	"fmt"
	"time"
)

// PlayerID uniquely identifies a player across the system
type PlayerID int64

// Level is a player's self-reported skill rating on the club's fixed scale
type Level string

const (
	LevelNovice    Level = "Novice"
	LevelDMinus    Level = "D-"
	LevelD         Level = "D"
	LevelDPlus     Level = "D+"
	LevelCMinus    Level = "C-"
	LevelC         Level = "C"
	LevelCPlus     Level = "C+"
)

// Levels returns the full scale in ascending order
func Levels() []Level {
	return []Level{LevelNovice, LevelDMinus, LevelD, LevelDPlus, LevelCMinus, LevelC, LevelCPlus}
}

// ParseLevel validates a raw level string against the scale
func ParseLevel(raw string) (Level, error) {
	for _, l := range Levels() {
		if string(l) == raw {
			return l, nil
		}
	}
	return "", NewValidationError("level", fmt.Sprintf("must be one of %v", Levels()))
}

// Player represents a club member who can register for games
type Player struct {
	ID        PlayerID
	Name      string
	Nickname  string // unique handle used in chat and admin commands
	Level     Level
	Active    bool // false once removed by an admin
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credential holds a player's authentication data
// Stored separately so the password hash never travels with the profile
type Credential struct {
	PlayerID     PlayerID
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlayerAttribute names a player field editable through the admin flow
type PlayerAttribute string

const (
	PlayerAttributeName     PlayerAttribute = "name"
	PlayerAttributeNickname PlayerAttribute = "nickname"
	PlayerAttributeLevel    PlayerAttribute = "level"
)

// PlayerAttributes returns the closed set of editable player fields
func PlayerAttributes() []PlayerAttribute {
	return []PlayerAttribute{PlayerAttributeName, PlayerAttributeNickname, PlayerAttributeLevel}
}

// ParsePlayerAttribute validates a raw attribute name
func ParsePlayerAttribute(raw string) (PlayerAttribute, error) {
	for _, a := range PlayerAttributes() {
		if string(a) == raw {
			return a, nil
		}
	}
	return "", NewValidationError("attribute", fmt.Sprintf("must be one of %v", PlayerAttributes()))
}
