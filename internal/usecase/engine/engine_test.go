package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"littlego/internal/domain/game"
	ownErrors "littlego/internal/errors"
	"littlego/internal/rules"
)

func mustBoard(t *testing.T, rows ...string) game.Board {
	t.Helper()
	b, err := game.ParseRows(rows)
	if err != nil {
		t.Fatalf("bad test board: %v", err)
	}
	return b
}

func mustContext(t *testing.T, player game.Player, moves int) game.GameContext {
	t.Helper()
	gc, err := game.NewGameContext(player, 2.5, moves)
	if err != nil {
		t.Fatalf("NewGameContext: %v", err)
	}
	return gc
}

func newTestEngine(cfg Config, strategies ...Strategy) *Engine {
	return NewEngine(cfg, zap.NewNop().Sugar(), strategies...)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEvaluateOpeningIsMaterialPlusKomi(t *testing.T) {
	e := NewEvaluator(0.5, 0.2)
	if got := e.Evaluate(game.Board{}, game.Black, -2.5, 0); got != -2.5 {
		t.Fatalf("empty board for black = %v, want -2.5", got)
	}
	b := mustBoard(t, "00000", "00000", "00100", "00000", "00000")
	if got := e.Evaluate(b, game.White, 2.5, 0); got != 1.5 {
		t.Fatalf("one black stone for white at move 0 = %v, want 1.5", got)
	}
}

func TestEvaluateWeightsPositionalTerms(t *testing.T) {
	b := mustBoard(t, "00000", "00000", "00100", "00000", "00000")
	tests := []struct {
		name  string
		eval  Evaluator
		moves int
		want  float64
	}{
		{"full formula", NewEvaluator(0.5, 0.2), 2, 1 + 0.5*4/2 + 0.2*1/2 - 2.5},
		{"without group term", NewEvaluator(0.5, 0), 2, 1 + 0.5*4/2 - 2.5},
		{"damped by moves", NewEvaluator(0.5, 0.2), 8, 1 + 0.5*4/8 + 0.2*1/8 - 2.5},
	}
	for _, tt := range tests {
		if got := tt.eval.Evaluate(b, game.Black, -2.5, tt.moves); !almostEqual(got, tt.want) {
			t.Errorf("%s: Evaluate = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// minimax is the unpruned reference the alpha-beta search must agree with.
func minimax(s *searcher, pos game.Position, depth int, maximizing bool) float64 {
	mover := s.gc.Player
	if !maximizing {
		mover = mover.Opponent()
	}
	if s.terminal(pos, mover, depth) {
		return s.leaf(pos, depth)
	}
	candidates := rules.LegalMoves(pos, mover)
	if len(candidates) == 0 {
		return minimax(s, pos.Next(pos.Current), depth+1, !maximizing)
	}
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, c := range candidates {
		v := minimax(s, pos.Next(c.Board), depth+1, !maximizing)
		if (maximizing && v > best) || (!maximizing && v < best) {
			best = v
		}
	}
	return best
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		player game.Player
		moves  int
		limits Limits
	}{
		{
			name:   "sparse board, two plies",
			rows:   []string{"00000", "00000", "00100", "00000", "00000"},
			player: game.White,
			moves:  1,
			limits: Limits{MaxDepth: 3, LateMaxDepth: 3, LateGameFrom: 11, MoveCeiling: 25, StopWhenStuck: true},
		},
		{
			name:   "middle game, three plies",
			rows:   []string{"12100", "21200", "12010", "00000", "20002"},
			player: game.Black,
			moves:  10,
			limits: DefaultLimits(),
		},
		{
			name:   "capture race",
			rows:   []string{"00000", "00200", "02120", "00000", "01010"},
			player: game.White,
			moves:  10,
			limits: DefaultLimits(),
		},
		{
			name:   "crowded late game",
			rows:   []string{"11220", "10120", "21102", "02210", "12100"},
			player: game.Black,
			moves:  17,
			limits: DefaultLimits(),
		},
		{
			name:   "pass plies allowed",
			rows:   []string{"11220", "10120", "21102", "02210", "12100"},
			player: game.White,
			moves:  17,
			limits: Limits{MaxDepth: 4, LateMaxDepth: 5, LateGameFrom: 11, MoveCeiling: 25, StopWhenStuck: false},
		},
	}
	eval := NewEvaluator(0.5, 0.2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := game.Position{Current: mustBoard(t, tt.rows...)}
			gc := mustContext(t, tt.player, tt.moves)

			pruned := newSearcher(eval, tt.limits, gc)
			got, _, _ := pruned.run(pos)

			full := newSearcher(eval, tt.limits, gc)
			want := minimax(full, pos, 1, true)

			if got != want {
				t.Fatalf("alpha-beta = %v, minimax = %v", got, want)
			}
			if pruned.stats.Leaves > full.stats.Leaves {
				t.Fatalf("alpha-beta visited more leaves (%d) than minimax (%d)", pruned.stats.Leaves, full.stats.Leaves)
			}
		})
	}
}

func TestDecideOnEmptyBoardDoesNotPass(t *testing.T) {
	e := newTestEngine(DefaultConfig())
	gc := mustContext(t, game.Black, 0)

	d := e.Decide(context.Background(), game.Position{}, gc)
	if d.Move.Pass {
		t.Fatalf("engine passed on an empty board (score %v, pass %v)", d.Score, d.PassScore)
	}
	if !rules.IsLegal(game.Position{}, d.Move.Point, game.Black) {
		t.Fatalf("engine chose an illegal move %v", d.Move)
	}
	if d.Strategy != StrategySearch {
		t.Fatalf("strategy = %q, want %q", d.Strategy, StrategySearch)
	}
}

// atariBoard: the black stone at (2,2) has a single liberty at (3,2).
func atariBoard(t *testing.T) game.Board {
	return mustBoard(t,
		"00000",
		"00200",
		"02120",
		"00000",
		"00000",
	)
}

func TestDecideCapturesStoneInAtari(t *testing.T) {
	e := newTestEngine(DefaultConfig())
	gc := mustContext(t, game.White, 10)

	d := e.Decide(context.Background(), game.Position{Current: atariBoard(t)}, gc)
	if d.Move != game.PlaceMove(3, 2) {
		t.Fatalf("engine chose %v, want the capture at 3,2 (score %v)", d.Move, d.Score)
	}
	if d.Strategy != StrategySearch {
		t.Fatalf("strategy = %q, want %q", d.Strategy, StrategySearch)
	}
}

func TestGreedyCaptureShortcut(t *testing.T) {
	e := newTestEngine(DefaultConfig(), GreedyCapture{})
	gc := mustContext(t, game.White, 10)

	d := e.Decide(context.Background(), game.Position{Current: atariBoard(t)}, gc)
	if d.Move != game.PlaceMove(3, 2) || d.Strategy != StrategyGreedy {
		t.Fatalf("Decide = %v via %q, want 3,2 via greedy", d.Move, d.Strategy)
	}
	if d.Stats.Nodes != 0 {
		t.Fatalf("greedy decision should not search, got %d nodes", d.Stats.Nodes)
	}
}

func TestGreedyCapturePrefersLargestCapture(t *testing.T) {
	b := mustBoard(t,
		"12000",
		"00000",
		"00000",
		"00222",
		"02110",
	)
	move, ok := GreedyCapture{}.TryDecide(context.Background(), game.Position{Current: b}, mustContext(t, game.White, 12))
	if !ok || move != game.PlaceMove(4, 4) {
		t.Fatalf("TryDecide = %v, %v; want 4,4", move, ok)
	}

	_, ok = GreedyCapture{}.TryDecide(context.Background(), game.Position{Current: atariBoard(t)}, mustContext(t, game.Black, 10))
	if ok {
		t.Fatalf("black has nothing to capture")
	}
}

func onlyCellRepeats(t *testing.T) game.Position {
	return game.Position{
		Current:  mustBoard(t, "02111", "11111", "11111", "11111", "11111"),
		Previous: mustBoard(t, "10111", "11111", "11111", "11111", "11111"),
	}
}

func TestDecidePassesWhenOnlyMoveRepeats(t *testing.T) {
	e := newTestEngine(DefaultConfig(), GreedyCapture{})
	gc := mustContext(t, game.Black, 20)

	d := e.Decide(context.Background(), onlyCellRepeats(t), gc)
	if !d.Move.Pass || d.Strategy != StrategyPass {
		t.Fatalf("Decide = %v via %q, want PASS", d.Move, d.Strategy)
	}
}

func TestTerminalBoundaries(t *testing.T) {
	limits := Limits{MaxDepth: 4, LateMaxDepth: 6, LateGameFrom: 11, MoveCeiling: 25}
	tests := []struct {
		moves int
		depth int
		want  bool
	}{
		{10, 3, false},
		{10, 4, true},
		{11, 4, false},
		{11, 5, false},
		{11, 6, true},
		{20, 4, false},
		{20, 5, true},
		{21, 3, false},
		{21, 4, true},
		{24, 1, true},
		{25, 1, true},
	}
	for _, tt := range tests {
		s := newSearcher(NewEvaluator(0.5, 0.2), limits, game.GameContext{Player: game.Black, MovesPlayed: tt.moves})
		if got := s.terminal(game.Position{}, game.Black, tt.depth); got != tt.want {
			t.Errorf("terminal(moves=%d, depth=%d) = %v, want %v", tt.moves, tt.depth, got, tt.want)
		}
	}

	stuck := limits
	stuck.StopWhenStuck = true
	s := newSearcher(NewEvaluator(0.5, 0.2), stuck, game.GameContext{Player: game.Black, MovesPlayed: 20})
	if !s.terminal(onlyCellRepeats(t), game.Black, 1) {
		t.Errorf("a mover without legal placements should be terminal")
	}
	if s.terminal(game.Position{}, game.Black, 1) {
		t.Errorf("empty board at depth 1 should not be terminal")
	}
}

func TestDecideTieRule(t *testing.T) {
	// one ply each way with no positional terms: material returns to where it
	// started, so the searched move ties with passing
	cfg := DefaultConfig()
	cfg.Limits = Limits{MaxDepth: 3, LateMaxDepth: 3, LateGameFrom: 11, MoveCeiling: 25, StopWhenStuck: true}
	cfg.LibertyWeight = 0
	cfg.GroupWeight = 0
	pos := game.Position{Current: mustBoard(t, "00000", "01000", "00000", "00020", "00000")}
	gc := mustContext(t, game.Black, 2)

	cfg.TiePrefersMove = true
	d := newTestEngine(cfg).Decide(context.Background(), pos, gc)
	if d.Score != d.PassScore {
		t.Fatalf("expected a tie, got score %v vs pass %v", d.Score, d.PassScore)
	}
	if d.Move.Pass {
		t.Fatalf("TiePrefersMove should play on a tie")
	}

	cfg.TiePrefersMove = false
	d = newTestEngine(cfg).Decide(context.Background(), pos, gc)
	if !d.Move.Pass {
		t.Fatalf("strict rule should pass on a tie, got %v", d.Move)
	}
}

type mapLookup struct {
	actions map[string]map[string]float64
	err     error
}

func (m mapLookup) Actions(_ context.Context, board string) (map[string]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.actions[board]
	if !ok {
		return nil, ownErrors.ErrTableEntryNotFound
	}
	return a, nil
}

func TestActionTable(t *testing.T) {
	empty := game.Board{}.String()
	occupied := mustBoard(t, "00000", "00000", "00100", "00000", "00000")
	lookup := mapLookup{actions: map[string]map[string]float64{
		empty:             {"22": 0.5, "00": -0.3, "11": 0.05},
		occupied.String(): {"22": 0.9},
	}}
	table := NewActionTable(lookup, 0.1, zap.NewNop().Sugar())
	ctx := context.Background()

	if m, ok := table.TryDecide(ctx, game.Position{}, mustContext(t, game.Black, 0)); !ok || m != game.PlaceMove(2, 2) {
		t.Errorf("black TryDecide = %v, %v; want 2,2", m, ok)
	}
	if m, ok := table.TryDecide(ctx, game.Position{}, mustContext(t, game.White, 0)); !ok || m != game.PlaceMove(0, 0) {
		t.Errorf("white TryDecide = %v, %v; want 0,0", m, ok)
	}
	if _, ok := table.TryDecide(ctx, game.Position{Current: occupied}, mustContext(t, game.White, 1)); ok {
		t.Errorf("tabled action on an occupied point must be ignored")
	}

	confident := NewActionTable(lookup, 0.6, zap.NewNop().Sugar())
	if _, ok := confident.TryDecide(ctx, game.Position{}, mustContext(t, game.Black, 0)); ok {
		t.Errorf("values under the threshold must be ignored")
	}

	unknown := mustBoard(t, "10000", "00000", "00000", "00000", "00000")
	if _, ok := table.TryDecide(ctx, game.Position{Current: unknown}, mustContext(t, game.White, 1)); ok {
		t.Errorf("unknown boards must fall through")
	}

	broken := NewActionTable(mapLookup{err: errors.New("connection refused")}, 0.1, zap.NewNop().Sugar())
	if _, ok := broken.TryDecide(ctx, game.Position{}, mustContext(t, game.Black, 0)); ok {
		t.Errorf("lookup errors must fall through")
	}

	e := newTestEngine(DefaultConfig(), GreedyCapture{}, table)
	d := e.Decide(ctx, game.Position{}, mustContext(t, game.Black, 0))
	if d.Strategy != StrategyTable || d.Move != game.PlaceMove(2, 2) {
		t.Errorf("Decide = %v via %q, want 2,2 via table", d.Move, d.Strategy)
	}
}
