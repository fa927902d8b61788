package game

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"littlego/internal/domain/game"
	"littlego/internal/httpresponse"
	gameuc "littlego/internal/usecase/game"
	"littlego/internal/utils"
)

type GameHandler struct {
	log    *zap.SugaredLogger
	turnUC *gameuc.TurnUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(log *zap.SugaredLogger, turnUC *gameuc.TurnUseCase) *GameHandler {
	return &GameHandler{
		log:    log,
		turnUC: turnUC,
	}
}

func (g *GameHandler) Routes(r chi.Router) {
	r.Post("/decide", g.HandleDecide)
	r.Get("/games/{gameID}/sgf", g.HandleGameSgf)
	r.Get("/ws/decide", g.HandleDecideStream)
}

func (g *GameHandler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	var req game.DecideRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Errorf("%s: %v", httpresponse.MALFORMEDJSON_errorDesc, err)
		httpresponse.WriteError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := g.turnUC.Decide(r.Context(), req)
	if err != nil {
		g.log.Errorf("decide failed: %v", err)
		httpresponse.WriteError(w, httpresponse.StatusFromError(err), err)
		return
	}

	g.log.Infof("game %s: move %s by %s", resp.GameID, resp.Move, resp.Strategy)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleGameSgf(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	record, err := g.turnUC.GameRecord(r.Context(), gameID)
	if err != nil {
		g.log.Errorf("sgf of game %s: %v", gameID, err)
		httpresponse.WriteError(w, httpresponse.StatusFromError(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/x-go-sgf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(record))
}

// HandleDecideStream answers every decide request read from the socket with
// one envelope. A malformed message gets an error envelope and the stream
// stays open.
func (g *GameHandler) HandleDecideStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Errorf("websocket read: %v", err)
			}
			return
		}

		var req game.DecideRequest
		if err := json.Unmarshal(data, &req); err != nil {
			if err := conn.WriteJSON(errorEnvelope(http.StatusBadRequest, err)); err != nil {
				return
			}
			continue
		}

		var out httpresponse.Response[any]
		resp, err := g.turnUC.Decide(r.Context(), req)
		if err != nil {
			out = errorEnvelope(httpresponse.StatusFromError(err), err)
		} else {
			out = httpresponse.NewResponse(http.StatusOK, resp)
		}
		if err := conn.WriteJSON(out); err != nil {
			g.log.Errorf("websocket write: %v", err)
			return
		}
	}
}

func errorEnvelope(status int, err error) httpresponse.Response[any] {
	return httpresponse.NewResponse(status, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
}
