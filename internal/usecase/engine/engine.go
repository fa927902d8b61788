package engine

import (
	"context"

	"go.uber.org/zap"

	"littlego/internal/domain/game"
	"littlego/internal/rules"
)

// Decision is the outcome of one turn.
type Decision struct {
	Move      game.Move
	Score     float64
	PassScore float64
	Strategy  string
	Stats     SearchStats
}

// Engine picks a move for one turn. It holds only configuration, so a single
// Engine can serve concurrent callers.
type Engine struct {
	cfg        Config
	eval       Evaluator
	strategies []Strategy
	log        *zap.SugaredLogger
}

func NewEngine(cfg Config, log *zap.SugaredLogger, strategies ...Strategy) *Engine {
	return &Engine{
		cfg:        cfg,
		eval:       NewEvaluator(cfg.LibertyWeight, cfg.GroupWeight),
		strategies: strategies,
		log:        log,
	}
}

// NewGameContext derives komi from the controlled player.
func (e *Engine) NewGameContext(player game.Player, movesPlayed int) (game.GameContext, error) {
	return game.NewGameContext(player, e.cfg.KomiMagnitude, movesPlayed)
}

func (e *Engine) Evaluate(b game.Board, gc game.GameContext) float64 {
	return e.eval.Evaluate(b, gc.Player, gc.Komi, gc.MovesPlayed)
}

// Search runs alpha-beta from pos for gc.Player. ok is false when the player
// has no legal placement.
func (e *Engine) Search(pos game.Position, gc game.GameContext) (float64, game.Move, bool, SearchStats) {
	s := newSearcher(e.eval, e.cfg.Limits, gc)
	score, move, ok := s.run(pos)
	return score, move, ok, s.stats
}

// Decide tries the strategies in order, then searches. The searched move is
// played only if it scores at least as well as passing (strictly better when
// TiePrefersMove is off). Decide always returns a move; with no legal
// placement it passes.
func (e *Engine) Decide(ctx context.Context, pos game.Position, gc game.GameContext) Decision {
	passScore := e.Evaluate(pos.Current, gc)

	for _, strategy := range e.strategies {
		move, ok := strategy.TryDecide(ctx, pos, gc)
		if !ok {
			continue
		}
		next, _ := rules.Play(pos.Current, move.Point, gc.Player)
		e.log.Infof("strategy %s chose %s", strategy.Name(), move)
		return Decision{
			Move:      move,
			Score:     e.eval.Evaluate(next, gc.Player, gc.Komi, gc.MovesPlayed+1),
			PassScore: passScore,
			Strategy:  strategy.Name(),
		}
	}

	score, move, ok, stats := e.Search(pos, gc)
	e.log.Debugw("search finished",
		"moves_played", gc.MovesPlayed,
		"nodes", stats.Nodes,
		"leaves", stats.Leaves,
		"cutoffs", stats.Cutoffs,
		"score", score,
		"pass_score", passScore,
	)

	decision := Decision{Move: game.PassMove(), Score: score, PassScore: passScore, Strategy: StrategyPass, Stats: stats}
	if !ok {
		return decision
	}
	if score > passScore || (e.cfg.TiePrefersMove && score == passScore) {
		decision.Move = move
		decision.Strategy = StrategySearch
	}
	e.log.Infof("search chose %s (score %.3f, pass %.3f)", decision.Move, score, passScore)
	return decision
}
