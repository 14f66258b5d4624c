package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
	Level    string `json:"level"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// CreatePlayerRequest is the request body for an admin adding a member
type CreatePlayerRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Level    string `json:"level"`
}

// UpdateAttributeRequest is the request body for single-attribute edits
// of players and games
type UpdateAttributeRequest struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// CreateGameRequest is the request body for creating a game directly
type CreateGameRequest struct {
	EventDate string `json:"event_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Venue     string `json:"venue"`
	Capacity  int    `json:"capacity"`
}

// AdminAdmitRequest is the request body for registering a player on
// their behalf
type AdminAdmitRequest struct {
	Nickname string `json:"nickname"`
}

// SelectGameRequest is the request body for binding an edit
// conversation to a game
type SelectGameRequest struct {
	GameID int64 `json:"game_id"`
}

// SelectAttributeRequest is the request body for picking the next
// attribute in an edit conversation
type SelectAttributeRequest struct {
	Attribute string `json:"attribute"`
}

// SubmitValueRequest is the request body for answering a conversation
// prompt
type SubmitValueRequest struct {
	Value string `json:"value"`
}
