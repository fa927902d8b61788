package engine

import (
	"littlego/internal/domain/game"
	"littlego/internal/rules"
)

// Evaluator scores a board for one player. Higher is better for that player.
type Evaluator struct {
	LibertyWeight float64
	GroupWeight   float64
}

func NewEvaluator(libertyWeight, groupWeight float64) Evaluator {
	return Evaluator{LibertyWeight: libertyWeight, GroupWeight: groupWeight}
}

// Evaluate combines material, liberties and largest group size. The positional
// terms are divided by movesPlayed, so they weigh less as the game goes on;
// with no moves played only material and komi count.
func (e Evaluator) Evaluate(b game.Board, player game.Player, komi float64, movesPlayed int) float64 {
	opponent := player.Opponent()
	material := float64(b.Count(player.Stone()) - b.Count(opponent.Stone()))
	if movesPlayed == 0 {
		return material + komi
	}

	moves := float64(movesPlayed)
	score := material + komi
	if e.LibertyWeight != 0 {
		libs := rules.CountLiberties(b, player) - rules.CountLiberties(b, opponent)
		score += e.LibertyWeight * float64(libs) / moves
	}
	if e.GroupWeight != 0 {
		groups := rules.LargestGroup(b, player) - rules.LargestGroup(b, opponent)
		score += e.GroupWeight * float64(groups) / moves
	}
	return score
}
