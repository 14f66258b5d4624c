package model

import "time"

// EditPhase is the state of an admin's game edit conversation
type EditPhase string

const (
	EditPhaseSelectingGame      EditPhase = "selecting_game"
	EditPhaseSelectingAttribute EditPhase = "selecting_attribute"
	EditPhaseAwaitingValue      EditPhase = "awaiting_value"
)

// GameEditState is the single session record behind a game edit
// conversation. One attribute is edited at a time; each accepted value
// is committed immediately and the phase loops back to attribute
// selection.
type GameEditState struct {
	Phase     EditPhase     `json:"phase"`
	GameID    GameID        `json:"game_id,omitempty"`   // zero until a game is selected
	Attribute GameAttribute `json:"attribute,omitempty"` // set only in awaiting_value
	StartedAt time.Time     `json:"started_at"`
}

// CreateStep is the field the game creation conversation is waiting on
type CreateStep string

const (
	CreateStepEventDate CreateStep = "event_date"
	CreateStepStartTime CreateStep = "start_time"
	CreateStepEndTime   CreateStep = "end_time"
	CreateStepVenue     CreateStep = "venue"
	CreateStepCapacity  CreateStep = "capacity"
)

// GameDraftState accumulates the fields of a game being created step by
// step. Nothing is persisted to the data store until the final step
// validates.
type GameDraftState struct {
	Step      CreateStep `json:"step"`
	EventDate string     `json:"event_date,omitempty"` // DateLayout form
	StartTime DayTime    `json:"start_time,omitempty"`
	EndTime   DayTime    `json:"end_time,omitempty"`
	Venue     string     `json:"venue,omitempty"`
	StartedAt time.Time  `json:"started_at"`
}
