package rules

import "littlego/internal/domain/game"

// Candidate is a legal placement together with the board it produces.
type Candidate struct {
	Board game.Board
	Move  game.Move
}

// LegalMoves scans the board in row-major order and returns every legal
// placement for player. The order is fixed so that searches are reproducible.
func LegalMoves(pos game.Position, player game.Player) []Candidate {
	moves := make([]Candidate, 0, game.BoardSize*game.BoardSize)
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			if pos.Current[r][c] != game.Empty {
				continue
			}
			if next, _, ok := PlayLegal(pos, game.Point{Row: r, Col: c}, player); ok {
				moves = append(moves, Candidate{Board: next, Move: game.PlaceMove(r, c)})
			}
		}
	}
	return moves
}

// AnyLegalMove stops at the first legal placement instead of building the list.
func AnyLegalMove(pos game.Position, player game.Player) bool {
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			if pos.Current[r][c] != game.Empty {
				continue
			}
			if IsLegal(pos, game.Point{Row: r, Col: c}, player) {
				return true
			}
		}
	}
	return false
}
