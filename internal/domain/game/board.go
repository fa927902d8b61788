package game

import (
	"strings"

	"littlego/internal/errors"
)

const BoardSize = 5

type Cell uint8

const (
	Empty Cell = iota
	BlackStone
	WhiteStone
)

// Player is encoded the same way as the stones it owns: 1 for Black, 2 for White.
type Player uint8

const (
	Black Player = 1
	White Player = 2
)

func (p Player) Opponent() Player {
	if p == Black {
		return White
	}
	return Black
}

func (p Player) Stone() Cell {
	return Cell(p)
}

func (p Player) Valid() bool {
	return p == Black || p == White
}

// SGF color letter
func (p Player) Letter() string {
	if p == Black {
		return "B"
	}
	return "W"
}

func (p Player) String() string {
	if p == Black {
		return "black"
	}
	return "white"
}

type Point struct {
	Row int `json:"row" bson:"row"`
	Col int `json:"col" bson:"col"`
}

func (p Point) OnBoard() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Neighbors returns the up to four orthogonal neighbours of p, without wraparound.
func Neighbors(p Point) []Point {
	neighbors := make([]Point, 0, 4)
	if p.Row > 0 {
		neighbors = append(neighbors, Point{p.Row - 1, p.Col})
	}
	if p.Row < BoardSize-1 {
		neighbors = append(neighbors, Point{p.Row + 1, p.Col})
	}
	if p.Col > 0 {
		neighbors = append(neighbors, Point{p.Row, p.Col - 1})
	}
	if p.Col < BoardSize-1 {
		neighbors = append(neighbors, Point{p.Row, p.Col + 1})
	}
	return neighbors
}

// Board is a value type: assigning or passing it copies all 25 cells.
type Board [BoardSize][BoardSize]Cell

func (b Board) At(p Point) Cell {
	return b[p.Row][p.Col]
}

// Place returns a copy of b with p set to the player's stone.
func Place(b Board, p Point, player Player) Board {
	b[p.Row][p.Col] = player.Stone()
	return b
}

func (b Board) Count(c Cell) int {
	n := 0
	for r := 0; r < BoardSize; r++ {
		for col := 0; col < BoardSize; col++ {
			if b[r][col] == c {
				n++
			}
		}
	}
	return n
}

func (b Board) Stones() int {
	return BoardSize*BoardSize - b.Count(Empty)
}

func (b Board) IsEmpty() bool {
	return b == Board{}
}

// ColorSwap exchanges black and white stones.
func (b Board) ColorSwap() Board {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			switch b[r][c] {
			case BlackStone:
				b[r][c] = WhiteStone
			case WhiteStone:
				b[r][c] = BlackStone
			}
		}
	}
	return b
}

// String renders the board row-major as 25 digits, the key used by history
// entries and action tables.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize * BoardSize)
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			sb.WriteByte('0' + byte(b[r][c]))
		}
	}
	return sb.String()
}

// Rows renders the board as five lines of five digits.
func (b Board) Rows() []string {
	s := b.String()
	rows := make([]string, BoardSize)
	for r := range rows {
		rows[r] = s[r*BoardSize : (r+1)*BoardSize]
	}
	return rows
}

func (b Board) Validate() error {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b[r][c] > WhiteStone {
				return &errors.InvalidPositionError{Reason: "cell value out of range"}
			}
		}
	}
	return nil
}

// ParseBoard reads 25 row-major digits; whitespace is ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	s = strings.Join(strings.Fields(s), "")
	if len(s) != BoardSize*BoardSize {
		return b, &errors.InvalidPositionError{Reason: "board must have 25 cells"}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '2' {
			return b, &errors.InvalidPositionError{Reason: "unexpected cell value " + string(s[i])}
		}
		b[i/BoardSize][i%BoardSize] = Cell(s[i] - '0')
	}
	return b, nil
}

// ParseRows reads five rows of five digits each.
func ParseRows(rows []string) (Board, error) {
	if len(rows) != BoardSize {
		return Board{}, &errors.InvalidPositionError{Reason: "board must have 5 rows"}
	}
	for _, row := range rows {
		if len(strings.TrimSpace(row)) != BoardSize {
			return Board{}, &errors.InvalidPositionError{Reason: "row must have 5 cells: " + row}
		}
	}
	return ParseBoard(strings.Join(rows, ""))
}
