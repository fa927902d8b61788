package engine

import (
	"math"

	"littlego/internal/domain/game"
	"littlego/internal/rules"
)

type SearchStats struct {
	Nodes   int `json:"nodes"`
	Leaves  int `json:"leaves"`
	Cutoffs int `json:"cutoffs"`
}

// searcher runs one minimax search with alpha-beta pruning for the player in
// gc. The maximizer is always that player; leaves are scored from its side.
type searcher struct {
	eval   Evaluator
	limits Limits
	gc     game.GameContext
	stats  SearchStats
}

func newSearcher(eval Evaluator, limits Limits, gc game.GameContext) *searcher {
	return &searcher{eval: eval, limits: limits, gc: gc}
}

// run searches from the root at depth 1 with a full window. ok is false when
// the controlled player has no legal placement.
func (s *searcher) run(pos game.Position) (score float64, move game.Move, ok bool) {
	return s.maxValue(pos, math.Inf(-1), math.Inf(1), 1)
}

// terminal is true at the depth cap for the current game phase, once the game
// length is reached, and, with StopWhenStuck, when mover cannot place a stone.
func (s *searcher) terminal(pos game.Position, mover game.Player, depth int) bool {
	moves := s.gc.MovesPlayed
	if moves+depth >= s.limits.MoveCeiling {
		return true
	}
	if moves < s.limits.LateGameFrom {
		if depth >= s.limits.MaxDepth {
			return true
		}
	} else if depth >= s.limits.LateMaxDepth {
		return true
	}
	return s.limits.StopWhenStuck && !rules.AnyLegalMove(pos, mover)
}

func (s *searcher) leaf(pos game.Position, depth int) float64 {
	s.stats.Leaves++
	return s.eval.Evaluate(pos.Current, s.gc.Player, s.gc.Komi, s.gc.MovesPlayed+depth)
}

func (s *searcher) maxValue(pos game.Position, alpha, beta float64, depth int) (float64, game.Move, bool) {
	s.stats.Nodes++
	player := s.gc.Player
	if s.terminal(pos, player, depth) {
		return s.leaf(pos, depth), game.Move{}, false
	}

	candidates := rules.LegalMoves(pos, player)
	if len(candidates) == 0 {
		// nothing to place: the maximizer passes and the board goes to the opponent
		v, _, _ := s.minValue(pos.Next(pos.Current), alpha, beta, depth+1)
		return v, game.Move{}, false
	}

	v := math.Inf(-1)
	var best game.Move
	found := false
	for _, c := range candidates {
		value, _, _ := s.minValue(pos.Next(c.Board), alpha, beta, depth+1)
		if value > v {
			v = value
		}
		if v >= beta {
			s.stats.Cutoffs++
			return v, c.Move, true
		}
		if v > alpha {
			alpha = v
			best = c.Move
			found = true
		}
	}
	return v, best, found
}

func (s *searcher) minValue(pos game.Position, alpha, beta float64, depth int) (float64, game.Move, bool) {
	s.stats.Nodes++
	opponent := s.gc.Player.Opponent()
	if s.terminal(pos, opponent, depth) {
		return s.leaf(pos, depth), game.Move{}, false
	}

	candidates := rules.LegalMoves(pos, opponent)
	if len(candidates) == 0 {
		v, _, _ := s.maxValue(pos.Next(pos.Current), alpha, beta, depth+1)
		return v, game.Move{}, false
	}

	v := math.Inf(1)
	var best game.Move
	found := false
	for _, c := range candidates {
		value, _, _ := s.maxValue(pos.Next(c.Board), alpha, beta, depth+1)
		if value < v {
			v = value
		}
		if v <= alpha {
			s.stats.Cutoffs++
			return v, c.Move, true
		}
		if v < beta {
			beta = v
			best = c.Move
			found = true
		}
	}
	return v, best, found
}
