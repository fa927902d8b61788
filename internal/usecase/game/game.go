package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"littlego/internal/domain/game"
	ownErrors "littlego/internal/errors"
	"littlego/internal/usecase/engine"
)

// CounterStore persists the turn state between invocations.
type CounterStore interface {
	Load(ctx context.Context, gameID string) (game.TurnState, error)
	Save(ctx context.Context, gameID string, state game.TurnState) error
}

// DecisionStore is the decision log.
type DecisionStore interface {
	PutDecision(ctx context.Context, record game.DecisionRecord) error
	GetDecisionsByGame(ctx context.Context, gameID string) ([]game.DecisionRecord, error)
}

type Decider interface {
	NewGameContext(player game.Player, movesPlayed int) (game.GameContext, error)
	Decide(ctx context.Context, pos game.Position, gc game.GameContext) engine.Decision
}

type TurnResult struct {
	GameID      string
	Decision    engine.Decision
	MovesPlayed int
	State       game.TurnState
}

type TurnUseCase struct {
	engine    Decider
	counters  CounterStore
	decisions DecisionStore
	log       *zap.SugaredLogger
	now       func() time.Time
}

// NewTurnUseCase builds the turn use case. decisions may be nil when no
// decision log is configured.
func NewTurnUseCase(decider Decider, counters CounterStore, decisions DecisionStore, log *zap.SugaredLogger) *TurnUseCase {
	return &TurnUseCase{
		engine:    decider,
		counters:  counters,
		decisions: decisions,
		log:       log,
		now:       time.Now,
	}
}

// PlayTurn decides the engine's move for one turn and records it.
func (t *TurnUseCase) PlayTurn(ctx context.Context, gameID string, player game.Player, pos game.Position) (TurnResult, error) {
	if err := pos.Validate(); err != nil {
		return TurnResult{}, err
	}

	state := t.loadState(ctx, gameID, pos.Current)

	if p, ok := game.LastPlacement(pos.Previous, pos.Current); ok {
		state.History = prepend(state.History, game.HistoryEntry{
			Board:  pos.Previous.String(),
			Point:  p.Key(),
			Player: player.Opponent(),
		})
	}

	gc, err := t.engine.NewGameContext(player, state.Moves)
	if err != nil {
		return TurnResult{}, err
	}

	decision := t.engine.Decide(ctx, pos, gc)

	next := game.TurnState{Moves: state.Moves + 2, History: state.History}
	if !decision.Move.Pass {
		next.History = prepend(next.History, game.HistoryEntry{
			Board:  pos.Current.String(),
			Point:  decision.Move.Point.Key(),
			Player: player,
		})
	}

	// the move is already chosen; a failed save only costs the counter, which
	// the next turn rebuilds from the stone count
	if err := t.counters.Save(ctx, gameID, next); err != nil {
		t.log.Errorf("failed to save turn state of game %s: %v", gameID, err)
	}

	t.logDecision(ctx, gameID, pos, gc, decision)

	return TurnResult{
		GameID:      gameID,
		Decision:    decision,
		MovesPlayed: gc.MovesPlayed,
		State:       next,
	}, nil
}

// loadState derives the number of moves played so far: 0 on an empty board,
// 1 when a single stone is down, otherwise the stored counter.
func (t *TurnUseCase) loadState(ctx context.Context, gameID string, current game.Board) game.TurnState {
	stones := current.Stones()
	if stones <= 1 {
		return game.TurnState{Moves: stones}
	}

	state, err := t.counters.Load(ctx, gameID)
	if err == nil {
		return state
	}
	if !errors.Is(err, ownErrors.ErrCounterNotFound) {
		t.log.Errorf("failed to load turn state of game %s: %v", gameID, err)
	}
	return game.TurnState{Moves: stones}
}

func (t *TurnUseCase) logDecision(ctx context.Context, gameID string, pos game.Position, gc game.GameContext, d engine.Decision) {
	if t.decisions == nil {
		return
	}
	record := game.DecisionRecord{
		GameID:      gameID,
		MovesPlayed: gc.MovesPlayed,
		Player:      gc.Player,
		Previous:    pos.Previous.String(),
		Board:       pos.Current.String(),
		Move:        d.Move.String(),
		Score:       d.Score,
		Strategy:    d.Strategy,
		Komi:        gc.Komi,
		CreatedAt:   t.now(),
	}
	if err := t.decisions.PutDecision(ctx, record); err != nil {
		t.log.Errorf("failed to log decision of game %s: %v", gameID, err)
	}
}

// Decide runs a turn for a wire request. A request without a game id starts
// a new game under a fresh uuid.
func (t *TurnUseCase) Decide(ctx context.Context, req game.DecideRequest) (game.DecideResponse, error) {
	player, pos, err := req.Parse()
	if err != nil {
		return game.DecideResponse{}, err
	}
	gameID := req.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}

	res, err := t.PlayTurn(ctx, gameID, player, pos)
	if err != nil {
		return game.DecideResponse{}, err
	}

	move := res.Decision.Move
	resp := game.DecideResponse{
		GameID:      gameID,
		Move:        move.String(),
		Pass:        move.Pass,
		Row:         -1,
		Col:         -1,
		Score:       res.Decision.Score,
		Strategy:    res.Decision.Strategy,
		MovesPlayed: res.MovesPlayed,
	}
	if !move.Pass {
		resp.Row, resp.Col = move.Point.Row, move.Point.Col
	}
	return resp, nil
}

// GameRecord returns the SGF text of a game from its decision log.
func (t *TurnUseCase) GameRecord(ctx context.Context, gameID string) (string, error) {
	if t.decisions == nil {
		return "", ownErrors.ErrGameNotFound
	}
	records, err := t.decisions.GetDecisionsByGame(ctx, gameID)
	if err != nil {
		return "", err
	}
	record, err := PrepareSgfFile(gameID, records)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ownErrors.ErrInternal, err)
	}
	return record.String(), nil
}

func prepend(history []game.HistoryEntry, entry game.HistoryEntry) []game.HistoryEntry {
	out := make([]game.HistoryEntry, 0, len(history)+1)
	out = append(out, entry)
	return append(out, history...)
}
