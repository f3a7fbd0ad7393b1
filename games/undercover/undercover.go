// Undercover game engine
//
// Players are secretly assigned one of three roles. Civilians share a secret
// word, Undercover players get a different-but-related word, and Mr. White
// gets no word at all. Players describe their word aloud and vote someone
// out each round; eliminations continue until a win condition triggers.
// An eliminated Mr. White gets one last chance to win outright by guessing
// the civilian word.
//
// This package owns the authoritative game state. Everything
// presentation-facing (modals, the one-seat-at-a-time reveal cursor, route
// wiring) lives with the caller; the engine only answers per-seat queries
// and applies state transitions.

package undercover

import "time"

// Role identifies which of the three camps a player belongs to.
type Role string

const (
	RoleCivilian   Role = "Civilian"
	RoleUndercover Role = "Undercover"
	RoleMrWhite    Role = "Mr. White"
)

// HasWord reports whether players of this role carry a secret word.
func (r Role) HasWord() bool {
	return r != RoleMrWhite
}

// GameActive and GameCompleted are the two game states. Completed is
// terminal.
const (
	GameActive    = "active"
	GameCompleted = "completed"
)

// Reasons a winner can be declared.
const (
	ReasonElimination = "elimination"
	ReasonSurvival    = "survival"
	ReasonGuess       = "guess"
)

// Player is one seat in a game. Word is empty exactly when the role is
// Mr. White. Color is a non-semantic presentation tag.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Word         string `json:"word,omitempty"`
	IsEliminated bool   `json:"isEliminated"`
	Color        string `json:"color"`
}

// GameLog records a single elimination.
type GameLog struct {
	Round      int       `json:"round"`
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Role       Role      `json:"role"`
	Word       string    `json:"word,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Winner declares which role won and why. At most one winner exists per
// game; once set it never changes.
type Winner struct {
	Role   Role   `json:"role"`
	Reason string `json:"reason"`
}

// Game is the full aggregate. Membership is fixed after creation; round and
// log stay in lockstep (len(Logs) == Round-1).
type Game struct {
	ID             string    `json:"id"`
	CivilianWord   string    `json:"civilianWord"`
	UndercoverWord string    `json:"undercoverWord"`
	Round          int       `json:"round"`
	Status         string    `json:"status"`
	Players        []Player  `json:"players"`
	Logs           []GameLog `json:"gameLogs"`
	Winner         *Winner   `json:"winner,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`

	lastActive time.Time
}

// Tally counts the post-elimination roster.
type Tally struct {
	Round           int `json:"round"`
	ActivePlayers   int `json:"activePlayers"`
	TotalPlayers    int `json:"totalPlayers"`
	CivilianCount   int `json:"civilianCount"`
	UndercoverCount int `json:"undercoverCount"`
	MrWhiteCount    int `json:"mrWhiteCount"`
}

// EliminationResult is returned by Store.Eliminate.
type EliminationResult struct {
	EliminatedPlayer Player  `json:"eliminatedPlayer"`
	GameStatus       Tally   `json:"gameStatus"`
	Winner           *Winner `json:"winner,omitempty"`
}

// GuessResult is returned by Store.Guess. Word is only revealed on a
// correct guess.
type GuessResult struct {
	IsCorrect bool    `json:"isCorrect"`
	Word      string  `json:"word,omitempty"`
	Winner    *Winner `json:"winner,omitempty"`
}

// SeatReveal is the engine half of the role-reveal sequence: role and word
// for a single seat, exposing nothing about the rest of the roster.
type SeatReveal struct {
	Seat int    `json:"seat"`
	Name string `json:"name"`
	Role Role   `json:"role"`
	Word string `json:"word,omitempty"`
}

// playerColors are cycled across seats in order. Presentation only.
var playerColors = []string{
	"primary",
	"secondary",
	"purple-500",
	"indigo-500",
	"blue-500",
	"green-500",
	"yellow-500",
	"orange-500",
	"red-500",
	"pink-500",
}
