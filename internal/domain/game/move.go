package game

import (
	"fmt"
	"strconv"
	"strings"

	"littlego/internal/errors"
)

const PassText = "PASS"

// @name Move
type Move struct {
	Pass  bool  `json:"pass" bson:"pass"`
	Point Point `json:"point" bson:"point"`
}

func PassMove() Move {
	return Move{Pass: true}
}

func PlaceMove(row, col int) Move {
	return Move{Point: Point{Row: row, Col: col}}
}

func (m Move) String() string {
	if m.Pass {
		return PassText
	}
	return fmt.Sprintf("%d,%d", m.Point.Row, m.Point.Col)
}

// ParseMove accepts "PASS" or "row,col" (spaces around the numbers are allowed).
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, PassText) {
		return PassMove(), nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Move{}, &errors.InvalidPositionError{Reason: "malformed move " + strconv.Quote(s)}
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Move{}, &errors.InvalidPositionError{Reason: "malformed row in " + strconv.Quote(s)}
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Move{}, &errors.InvalidPositionError{Reason: "malformed column in " + strconv.Quote(s)}
	}
	m := PlaceMove(row, col)
	if !m.Point.OnBoard() {
		return Move{}, &errors.InvalidPositionError{Reason: "move off the board " + strconv.Quote(s)}
	}
	return m, nil
}

// SGFCoordinates renders the move the way SGF expects: column letter then row letter,
// empty for a pass.
func (m Move) SGFCoordinates() string {
	if m.Pass {
		return ""
	}
	return string([]byte{'a' + byte(m.Point.Col), 'a' + byte(m.Point.Row)})
}

// Key is the two-digit "rc" form used by history entries and action tables.
func (p Point) Key() string {
	return strconv.Itoa(p.Row) + strconv.Itoa(p.Col)
}

func ParsePointKey(key string) (Point, bool) {
	if len(key) != 2 || key[0] < '0' || key[0] > '4' || key[1] < '0' || key[1] > '4' {
		return Point{}, false
	}
	return Point{Row: int(key[0] - '0'), Col: int(key[1] - '0')}, true
}
