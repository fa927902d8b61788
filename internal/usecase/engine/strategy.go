package engine

import (
	"context"
	"errors"
	"math"
	"sort"

	"go.uber.org/zap"

	"littlego/internal/domain/game"
	ownErrors "littlego/internal/errors"
	"littlego/internal/rules"
)

const (
	StrategyGreedy = "greedy"
	StrategyTable  = "table"
	StrategySearch = "search"
	StrategyPass   = "pass"
)

// Strategy is a shortcut tried before the search. Strategies run in order and
// the first one that returns ok decides the turn.
type Strategy interface {
	Name() string
	TryDecide(ctx context.Context, pos game.Position, gc game.GameContext) (game.Move, bool)
}

// GreedyCapture plays the liberty of an opponent group in atari when taking it
// is legal, choosing the capture that removes the most stones.
type GreedyCapture struct{}

func (GreedyCapture) Name() string {
	return StrategyGreedy
}

func (GreedyCapture) TryDecide(_ context.Context, pos game.Position, gc game.GameContext) (game.Move, bool) {
	most := 0
	var move game.Move
	for _, group := range rules.Groups(pos.Current, gc.Player.Opponent()) {
		liberties := rules.GroupLiberties(pos.Current, group[0])
		if len(liberties) != 1 {
			continue
		}
		p := liberties[0]
		_, captured, ok := rules.PlayLegal(pos, p, gc.Player)
		if ok && captured > most {
			most = captured
			move = game.PlaceMove(p.Row, p.Col)
		}
	}
	return move, most > 0
}

// ActionLookup returns the action values stored for a board string, keyed by
// "rc" point. It returns ErrTableEntryNotFound for unknown boards.
type ActionLookup interface {
	Actions(ctx context.Context, board string) (map[string]float64, error)
}

// ActionTable plays a precomputed action when the table is confident about it.
// Values are from Black's side: Black takes the largest, White the smallest.
type ActionTable struct {
	lookup    ActionLookup
	threshold float64
	log       *zap.SugaredLogger
}

func NewActionTable(lookup ActionLookup, threshold float64, log *zap.SugaredLogger) *ActionTable {
	return &ActionTable{lookup: lookup, threshold: threshold, log: log}
}

func (a *ActionTable) Name() string {
	return StrategyTable
}

func (a *ActionTable) TryDecide(ctx context.Context, pos game.Position, gc game.GameContext) (game.Move, bool) {
	actions, err := a.lookup.Actions(ctx, pos.Current.String())
	if errors.Is(err, ownErrors.ErrTableEntryNotFound) {
		return game.Move{}, false
	}
	if err != nil {
		a.log.Warnf("action table lookup failed: %v", err)
		return game.Move{}, false
	}

	key, value, ok := extremeAction(actions, gc.Player)
	if !ok || math.Abs(value) <= a.threshold {
		return game.Move{}, false
	}
	p, ok := game.ParsePointKey(key)
	if !ok {
		a.log.Warnf("action table has malformed action %q", key)
		return game.Move{}, false
	}
	if !rules.IsLegal(pos, p, gc.Player) {
		return game.Move{}, false
	}
	return game.PlaceMove(p.Row, p.Col), true
}

func extremeAction(actions map[string]float64, player game.Player) (string, float64, bool) {
	keys := make([]string, 0, len(actions))
	for k := range actions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var bestKey string
	best := math.Inf(-1)
	if player == game.White {
		best = math.Inf(1)
	}
	for _, k := range keys {
		v := actions[k]
		if (player == game.Black && v > best) || (player == game.White && v < best) {
			best, bestKey = v, k
		}
	}
	return bestKey, best, bestKey != ""
}
