package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		printPlayer(v)
	case []Player:
		if len(v) == 0 {
			fmt.Println("No players")
			return
		}
		for _, p := range v {
			fmt.Println(playerLine(p))
		}
	case AuthResult:
		printPlayer(v.Player)
		fmt.Printf("Admin: %t\n", v.Admin)
		fmt.Printf("Token: %s\n", v.Token)
		fmt.Printf("Expires: %s\n", v.Expires.Format(time.RFC3339))
	case Game:
		printGame(v)
	case []Game:
		if len(v) == 0 {
			fmt.Println("No games")
			return
		}
		for _, g := range v {
			fmt.Println(gameLine(g))
		}
	case Roster:
		printRoster(v)
	case Admission:
		if v.Outcome == "admitted" {
			fmt.Println("You're in!")
		} else {
			fmt.Println("Roster is full; you're on the waitlist.")
		}
		fmt.Printf("Registration ID: %d\n", v.Registration.ID)
	case []PlayerRegistration:
		if len(v) == 0 {
			fmt.Println("No registrations")
			return
		}
		for _, r := range v {
			fmt.Printf("[%d] %s  %s\n", r.Registration.ID, r.Game.Label, registrationStatus(r.Registration))
		}
	case CancelResult:
		fmt.Println("Registration cancelled")
		if v.Promotion != nil {
			fmt.Printf("Player %d promoted from the waitlist\n", v.Promotion.PlayerID)
		}
	case EditPrompt:
		printEditPrompt(v)
	case CreatePrompt:
		printCreatePrompt(v)
	case SweepResult:
		fmt.Printf("Finished: %d\n", v.Finished)
		fmt.Printf("Announced: %d\n", v.Announced)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fall back to JSON for anything unhandled
		o.printJSON(data)
	}
}

func printPlayer(p Player) {
	fmt.Printf("ID: %d\n", p.ID)
	fmt.Printf("Name: %s\n", p.Name)
	fmt.Printf("Nickname: %s\n", p.Nickname)
	fmt.Printf("Level: %s\n", p.Level)
	if !p.Active {
		fmt.Println("Active: false")
	}
}

func playerLine(p Player) string {
	line := fmt.Sprintf("[%d] %s (%s) %s", p.ID, p.Name, p.Nickname, p.Level)
	if !p.Active {
		line += " [inactive]"
	}
	return line
}

func printGame(g Game) {
	fmt.Printf("ID: %d\n", g.ID)
	fmt.Printf("Game: %s\n", g.Label)
	fmt.Printf("Capacity: %d\n", g.Capacity)
	fmt.Printf("Announced: %t\n", g.Announced)
	if g.FinishedAt != nil {
		fmt.Printf("Finished: %s\n", g.FinishedAt.Format(time.RFC3339))
	}
}

func gameLine(g Game) string {
	line := fmt.Sprintf("[%d] %s (%d spots)", g.ID, g.Label, g.Capacity)
	if g.FinishedAt != nil {
		line += " [finished]"
	}
	return line
}

func printRoster(r Roster) {
	fmt.Printf("Game: %s\n", r.Game.Label)
	fmt.Printf("Playing (%d/%d):\n", len(r.Playing), r.Game.Capacity)
	for i, e := range r.Playing {
		fmt.Printf("  %d. %s %s\n", i+1, e.Player.Nickname, registrationStatus(e.Registration))
	}
	if len(r.Waitlist) > 0 {
		fmt.Println("Waitlist:")
		for i, e := range r.Waitlist {
			fmt.Printf("  %d. %s\n", i+1, e.Player.Nickname)
		}
	}
}

func registrationStatus(r Registration) string {
	var tags []string
	if r.Waiting {
		tags = append(tags, "waiting")
	} else if r.Confirmed {
		tags = append(tags, "confirmed")
	}
	if r.SwapRequested {
		tags = append(tags, "swap requested")
	}
	if len(tags) == 0 {
		return ""
	}
	return "(" + strings.Join(tags, ", ") + ")"
}

func printEditPrompt(p EditPrompt) {
	fmt.Println(p.Message)
	for _, g := range p.Games {
		fmt.Printf("  [%d] %s %s-%s @ %s\n",
			g.ID, g.EventDate.Format("2006-01-02"), g.StartTime, g.EndTime, g.Venue)
	}
	for _, a := range p.Attributes {
		fmt.Printf("  - %s\n", a)
	}
	if p.Done {
		fmt.Println("Conversation finished")
	}
}

func printCreatePrompt(p CreatePrompt) {
	fmt.Println(p.Message)
	if p.Done && p.Game != nil {
		fmt.Printf("Created game %d\n", p.Game.ID)
	}
}

// Player mirrors the API's player representation
type Player struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Level    string `json:"level"`
	Active   bool   `json:"active"`
}

// AuthResult mirrors the API's authentication response
type AuthResult struct {
	Player  Player    `json:"player"`
	Token   string    `json:"token"`
	Admin   bool      `json:"admin"`
	Expires time.Time `json:"expires"`
}

// Game mirrors the API's game representation
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

// Registration mirrors the API's registration representation
type Registration struct {
	ID            int64     `json:"id"`
	GameID        int64     `json:"game_id"`
	PlayerID      int64     `json:"player_id"`
	Confirmed     bool      `json:"confirmed"`
	Waiting       bool      `json:"waiting"`
	SwapRequested bool      `json:"swap_requested"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// Admission mirrors the API's admission response
type Admission struct {
	Outcome      string       `json:"outcome"`
	Registration Registration `json:"registration"`
}

// RosterEntry pairs a registration with its player
type RosterEntry struct {
	Registration Registration `json:"registration"`
	Player       Player       `json:"player"`
}

// Roster mirrors the API's roster response
type Roster struct {
	Game     Game          `json:"game"`
	Playing  []RosterEntry `json:"playing"`
	Waitlist []RosterEntry `json:"waitlist"`
}

// PlayerRegistration pairs a registration with its game
type PlayerRegistration struct {
	Registration Registration `json:"registration"`
	Game         Game         `json:"game"`
}

// Promotion mirrors the API's promotion record
type Promotion struct {
	RegistrationID int64 `json:"registration_id"`
	GameID         int64 `json:"game_id"`
	PlayerID       int64 `json:"player_id"`
}

// CancelResult mirrors the API's cancel response
type CancelResult struct {
	Promotion *Promotion `json:"promotion,omitempty"`
}

// PromptGame mirrors the game embedded in conversation prompts
type PromptGame struct {
	ID        int64
	EventDate time.Time
	StartTime string
	EndTime   string
	Venue     string
	Capacity  int
}

// EditPrompt mirrors a game edit conversation prompt
type EditPrompt struct {
	Phase      string       `json:"phase,omitempty"`
	Message    string       `json:"message"`
	Games      []PromptGame `json:"games,omitempty"`
	Attributes []string     `json:"attributes,omitempty"`
	Game       *PromptGame  `json:"game,omitempty"`
	Done       bool         `json:"done,omitempty"`
}

// CreatePrompt mirrors a game creation conversation prompt
type CreatePrompt struct {
	Step    string      `json:"step,omitempty"`
	Message string      `json:"message"`
	Game    *PromptGame `json:"game,omitempty"`
	Done    bool        `json:"done,omitempty"`
}

// SweepResult mirrors the admin sweep response
type SweepResult struct {
	Finished  int `json:"finished"`
	Announced int `json:"announced"`
}

// HealthResult mirrors the health check response
type HealthResult struct {
	Status string `json:"status"`
}
