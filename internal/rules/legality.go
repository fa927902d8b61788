package rules

import "littlego/internal/domain/game"

// IsPlacementLegal applies the suicide rule to an empty point: the placed
// stone's group needs a liberty, or the placement must leave an adjacent
// opponent group without one.
func IsPlacementLegal(b game.Board, p game.Point, player game.Player) bool {
	if b.At(p) != game.Empty {
		return false
	}
	next := game.Place(b, p, player)
	if HasLiberty(next, p) {
		return true
	}

	opponent := player.Opponent().Stone()
	for _, adj := range game.Neighbors(p) {
		if next.At(adj) == opponent && !HasLiberty(next, adj) {
			return true
		}
	}
	return false
}

// IsLegal checks the suicide rule and then forbids recreating the board that
// existed before the opponent's last move. Only that single board is
// compared, not the whole game history.
func IsLegal(pos game.Position, p game.Point, player game.Player) bool {
	_, _, ok := PlayLegal(pos, p, player)
	return ok
}

// PlayLegal plays p when it is legal and returns the resulting board and the
// number of opponent stones captured.
func PlayLegal(pos game.Position, p game.Point, player game.Player) (game.Board, int, bool) {
	if !IsPlacementLegal(pos.Current, p, player) {
		return game.Board{}, 0, false
	}
	next, captured := Play(pos.Current, p, player)
	if next == pos.Previous {
		return game.Board{}, 0, false
	}
	return next, captured, true
}
