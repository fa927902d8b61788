package game

import (
	"time"

	"littlego/internal/errors"
)

// Position is the board to move on plus the board that existed before the
// opponent's last move. Previous is only consulted by the repeat rule.
type Position struct {
	Current  Board
	Previous Board
}

func (p Position) Validate() error {
	if err := p.Current.Validate(); err != nil {
		return err
	}
	return p.Previous.Validate()
}

// Next is the position the opponent faces after the mover turns Current into board.
func (p Position) Next(board Board) Position {
	return Position{Current: board, Previous: p.Current}
}

// GameContext holds the values fixed for one turn.
type GameContext struct {
	Player      Player
	Komi        float64
	MovesPlayed int
}

// KomiFor returns +magnitude when the engine plays White (moves second) and
// -magnitude when it plays Black.
func KomiFor(player Player, magnitude float64) float64 {
	if player == White {
		return magnitude
	}
	return -magnitude
}

func NewGameContext(player Player, komiMagnitude float64, movesPlayed int) (GameContext, error) {
	if !player.Valid() {
		return GameContext{}, &errors.InvalidPositionError{Reason: "player must be 1 (black) or 2 (white)"}
	}
	if movesPlayed < 0 {
		return GameContext{}, &errors.InvalidPositionError{Reason: "moves played must not be negative"}
	}
	return GameContext{
		Player:      player,
		Komi:        KomiFor(player, komiMagnitude),
		MovesPlayed: movesPlayed,
	}, nil
}

// HistoryEntry records one placement: the board it was played on, the point
// in "rc" form and the player who made it.
type HistoryEntry struct {
	Board  string `json:"board" bson:"board"`
	Point  string `json:"point" bson:"point"`
	Player Player `json:"player" bson:"player"`
}

// MarshalJSON keeps the compact [board, point, player] triple of the side file.
func (h HistoryEntry) MarshalJSON() ([]byte, error) {
	return marshalHistoryEntry(h)
}

func (h *HistoryEntry) UnmarshalJSON(data []byte) error {
	return unmarshalHistoryEntry(data, h)
}

// TurnState is what survives between invocations: the number of moves played
// before the engine's next turn and the placements seen so far, newest first.
type TurnState struct {
	Moves   int            `json:"moves" bson:"moves"`
	History []HistoryEntry `json:"history" bson:"history"`
}

// DecisionRecord is one row of the decision log.
type DecisionRecord struct {
	GameID      string    `json:"game_id" bson:"game_id"`
	MovesPlayed int       `json:"moves_played" bson:"moves_played"`
	Player      Player    `json:"player" bson:"player"`
	Previous    string    `json:"previous" bson:"previous"`
	Board       string    `json:"board" bson:"board"`
	Move        string    `json:"move" bson:"move"`
	Score       float64   `json:"score" bson:"score"`
	Strategy    string    `json:"strategy" bson:"strategy"`
	Komi        float64   `json:"komi" bson:"komi"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// @name DecideRequest
type DecideRequest struct {
	GameID   string   `json:"game_id,omitempty"`
	Player   int      `json:"player"`
	Previous []string `json:"previous"`
	Current  []string `json:"current"`
}

// @name DecideResponse
type DecideResponse struct {
	GameID      string  `json:"game_id"`
	Move        string  `json:"move"`
	Pass        bool    `json:"pass"`
	Row         int     `json:"row"`
	Col         int     `json:"col"`
	Score       float64 `json:"score"`
	Strategy    string  `json:"strategy"`
	MovesPlayed int     `json:"moves_played"`
}

// Parse validates the request and converts it into domain values.
func (r DecideRequest) Parse() (Player, Position, error) {
	player := Player(r.Player)
	if r.Player < 0 || r.Player > 255 || !player.Valid() {
		return 0, Position{}, &errors.InvalidPositionError{Reason: "player must be 1 (black) or 2 (white)"}
	}
	current, err := ParseRows(r.Current)
	if err != nil {
		return 0, Position{}, err
	}
	previous, err := ParseRows(r.Previous)
	if err != nil {
		return 0, Position{}, err
	}
	return player, Position{Current: current, Previous: previous}, nil
}
