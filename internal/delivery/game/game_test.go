package game

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"littlego/internal/domain/game"
	ownErrors "littlego/internal/errors"
	"littlego/internal/usecase/engine"
	gameuc "littlego/internal/usecase/game"
)

type memCounters struct {
	mu     sync.Mutex
	states map[string]game.TurnState
}

func (m *memCounters) Load(_ context.Context, gameID string) (game.TurnState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[gameID]
	if !ok {
		return game.TurnState{}, ownErrors.ErrCounterNotFound
	}
	return state, nil
}

func (m *memCounters) Save(_ context.Context, gameID string, state game.TurnState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[gameID] = state
	return nil
}

type memDecisions struct {
	mu      sync.Mutex
	records []game.DecisionRecord
}

func (m *memDecisions) PutDecision(_ context.Context, record game.DecisionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *memDecisions) GetDecisionsByGame(_ context.Context, gameID string) ([]game.DecisionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []game.DecisionRecord
	for _, r := range m.records {
		if r.GameID == gameID {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, ownErrors.ErrGameNotFound
	}
	return out, nil
}

func newTestRouter() *chi.Mux {
	log := zap.NewNop().Sugar()
	cfg := engine.DefaultConfig()
	cfg.Limits.MaxDepth = 2
	e := engine.NewEngine(cfg, log, engine.GreedyCapture{})
	uc := gameuc.NewTurnUseCase(e, &memCounters{states: map[string]game.TurnState{}}, &memDecisions{}, log)

	r := chi.NewRouter()
	NewGameHandler(log, uc).Routes(r)
	return r
}

type decideEnvelope struct {
	Status int                 `json:"Status"`
	Body   game.DecideResponse `json:"Body"`
}

var emptyRows = []string{"00000", "00000", "00000", "00000", "00000"}

func postDecide(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/decide", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleDecide(t *testing.T) {
	r := newTestRouter()
	body, _ := json.Marshal(game.DecideRequest{Player: 1, Previous: emptyRows, Current: emptyRows})

	rec := postDecide(t, r, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var env decideEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Status != http.StatusOK || env.Body.GameID == "" || env.Body.Pass || env.Body.MovesPlayed != 0 {
		t.Fatalf("response = %+v", env)
	}
	if env.Body.Move != game.PlaceMove(env.Body.Row, env.Body.Col).String() {
		t.Fatalf("move %q does not match row/col %d,%d", env.Body.Move, env.Body.Row, env.Body.Col)
	}
}

func TestHandleDecideRejectsBadInput(t *testing.T) {
	r := newTestRouter()
	tests := map[string]string{
		"malformed json": `{"player":`,
		"unknown field":  `{"player":1,"colour":"black"}`,
		"bad board":      `{"player":1,"previous":["00000","00000","00000","00000","00000"],"current":["00000"]}`,
		"bad player":     `{"player":7,"previous":["00000","00000","00000","00000","00000"],"current":["00000","00000","00000","00000","00000"]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if rec := postDecide(t, r, body); rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleGameSgf(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/nope/sgf", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown game status = %d, want 404", rec.Code)
	}

	body, _ := json.Marshal(game.DecideRequest{GameID: "g1", Player: 1, Previous: emptyRows, Current: emptyRows})
	if rec := postDecide(t, r, string(body)); rec.Code != http.StatusOK {
		t.Fatalf("decide status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/g1/sgf", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("sgf status = %d", rec.Code)
	}
	if got := rec.Body.String(); !strings.HasPrefix(got, "(;FF[4]") || !strings.Contains(got, ";B[") {
		t.Fatalf("sgf = %s", got)
	}
}

func TestHandleDecideStream(t *testing.T) {
	srv := httptest.NewServer(newTestRouter())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/decide"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{oops")); err != nil {
		t.Fatal(err)
	}
	var env decideEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	if env.Status != http.StatusBadRequest {
		t.Fatalf("malformed message status = %d, want 400", env.Status)
	}

	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(game.DecideRequest{GameID: "ws", Player: 2, Previous: emptyRows, Current: []string{"00000", "00000", "00100", "00000", "00000"}})
	if err := conn.WriteMessage(websocket.TextMessage, buf.Bytes()); err != nil {
		t.Fatal(err)
	}
	env = decideEnvelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	if env.Status != http.StatusOK || env.Body.GameID != "ws" || env.Body.MovesPlayed != 1 || env.Body.Pass {
		t.Fatalf("response = %+v", env)
	}
}
