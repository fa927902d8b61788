package rules

import "littlego/internal/domain/game"

// ResolveCaptures removes every group, of either color, that has no liberty.
// Liberties are judged on the input board, so applying it twice changes nothing.
func ResolveCaptures(b game.Board) game.Board {
	result := b
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			if b[r][c] != game.Empty && !HasLiberty(b, game.Point{Row: r, Col: c}) {
				result[r][c] = game.Empty
			}
		}
	}
	return result
}

// removeDead clears the player's stones that have no liberty and reports how
// many were removed.
func removeDead(b game.Board, player game.Player) (game.Board, int) {
	stone := player.Stone()
	result := b
	removed := 0
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			if b[r][c] == stone && !HasLiberty(b, game.Point{Row: r, Col: c}) {
				result[r][c] = game.Empty
				removed++
			}
		}
	}
	return result, removed
}

// Play places the player's stone at p and resolves captures. Opponent groups
// are taken off first so that a stone filling its own last liberty while
// capturing survives; the uniform pass then clears whatever is still dead.
func Play(b game.Board, p game.Point, player game.Player) (game.Board, int) {
	next := game.Place(b, p, player)
	next, captured := removeDead(next, player.Opponent())
	return ResolveCaptures(next), captured
}
