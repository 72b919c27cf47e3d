package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"shogichess/internal/engine"
	"shogichess/internal/hybrid"
	"shogichess/internal/server/game"
)

const maxJSONBodyBytes int64 = 1 << 20

var (
	errGameOver = errors.New("game is over")
	errBadDepth = errors.New("depth out of range")
)

// SearchLimits bound the AI searches the handler runs.
type SearchLimits struct {
	DefaultDepth int
	MaxDepth     int
	NodeLimit    int64
	Timeout      time.Duration
	Concurrency  int
}

// Handler serves the /api/* routes.
type Handler struct {
	games  *game.Manager
	limits SearchLimits
	aiSem  *semaphore.Weighted
	hub    *Hub
	log    zerolog.Logger
}

func NewHandler(games *game.Manager, limits SearchLimits, log zerolog.Logger) *Handler {
	if limits.Concurrency < 1 {
		limits.Concurrency = 1
	}
	return &Handler{
		games:  games,
		limits: limits,
		aiSem:  semaphore.NewWeighted(int64(limits.Concurrency)),
		hub:    NewHub(log),
		log:    log,
	}
}

func (h *Handler) Hub() *Hub { return h.hub }

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/new_game":
		if !requirePost(w, r) {
			return
		}
		h.handleNewGame(w, r)

	case "/api/state":
		if !requirePost(w, r) {
			return
		}
		h.handleState(w, r)

	case "/api/action":
		if !requirePost(w, r) {
			return
		}
		h.handleAction(w, r)

	case "/api/ai_move":
		if !requirePost(w, r) {
			return
		}
		h.handleAiMove(w, r)

	case "/api/ws":
		h.handleWS(w, r)

	default:
		http.NotFound(w, r)
	}
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, game.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errGameOver):
		return http.StatusConflict
	case errors.Is(err, hybrid.ErrInvalidPieceReference),
		errors.Is(err, hybrid.ErrIllegalAction),
		errors.Is(err, hybrid.ErrOccupiedTarget),
		errors.Is(err, hybrid.ErrUnknownLayout),
		errors.Is(err, errBadDepth):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNoAction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, gameID string, err error) {
	status := statusOf(err)
	ev := h.log.Warn()
	if status >= http.StatusInternalServerError {
		ev = h.log.Error()
	}
	ev.Err(err).Str("path", r.URL.Path).Str("game_id", gameID).Int("status", status).Msg("request failed")
	writeError(w, status, err.Error())
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	gs, err := h.games.NewGame(r.Context(), req.setup())
	if err != nil {
		h.fail(w, r, "", err)
		return
	}
	writeJSON(w, http.StatusOK, buildView(gs.ID, gs.Game))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	gs, err := h.games.Get(r.Context(), req.GameID)
	if err != nil {
		h.fail(w, r, req.GameID, err)
		return
	}
	writeJSON(w, http.StatusOK, buildView(gs.ID, gs.Game))
}

func ongoing(g *hybrid.Game) error {
	if res := g.Result(); res.Kind != hybrid.Ongoing {
		return errGameOver
	}
	return nil
}

func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	gs, err := h.games.Update(r.Context(), req.GameID, func(gs *game.GameState) error {
		if err := ongoing(gs.Game); err != nil {
			return err
		}
		_, err := gs.Game.Perform(req.request())
		return err
	})
	if err != nil {
		h.fail(w, r, req.GameID, err)
		return
	}
	h.log.Debug().Str("game_id", gs.ID).Str("action", req.ActionType.String()).
		Stringer("piece", req.TargetPieceID).Msg("action applied")
	view := buildView(gs.ID, gs.Game)
	h.hub.Broadcast(gs.ID, view)
	writeJSON(w, http.StatusOK, view)
}

// searchConfig resolves the requested depth and time against the limits.
func (h *Handler) searchConfig(req AiMoveRequest) (engine.SearchConfig, error) {
	depth := req.MaxDepth
	if depth == 0 {
		depth = h.limits.DefaultDepth
	}
	if depth < 1 || (h.limits.MaxDepth > 0 && depth > h.limits.MaxDepth) {
		return engine.SearchConfig{}, errBadDepth
	}
	limit := h.limits.Timeout
	if req.TimeMs > 0 {
		d := time.Duration(req.TimeMs) * time.Millisecond
		if limit == 0 || d < limit {
			limit = d
		}
	}
	return engine.SearchConfig{MaxDepth: depth, TimeLimit: limit, NodeLimit: h.limits.NodeLimit}, nil
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cfg, err := h.searchConfig(req)
	if err != nil {
		h.fail(w, r, req.GameID, err)
		return
	}
	ctx := r.Context()
	if err := h.aiSem.Acquire(ctx, 1); err != nil {
		h.fail(w, r, req.GameID, err)
		return
	}
	defer h.aiSem.Release(1)

	var (
		res  engine.SearchResult
		last *hybrid.LastMove
	)
	gs, err := h.games.Update(ctx, req.GameID, func(gs *game.GameState) error {
		if err := ongoing(gs.Game); err != nil {
			return err
		}
		var err error
		last, res, err = engine.NewEngine(h.log).TakeTurn(ctx, gs.Game, cfg)
		return err
	})
	if err != nil {
		h.fail(w, r, req.GameID, err)
		return
	}
	h.log.Info().Str("game_id", gs.ID).
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Float64("score", res.Score).
		Dur("took", res.TimeUsed).
		Msg("ai moved")
	view := buildView(gs.ID, gs.Game)
	h.hub.Broadcast(gs.ID, view)
	writeJSON(w, http.StatusOK, AiMoveResponse{
		Action: last,
		Score:  res.Score,
		Depth:  res.Depth,
		Nodes:  res.Nodes,
		TimeMs: res.TimeUsed.Milliseconds(),
		State:  view,
	})
}

func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := r.URL.Query().Get("game_id")
	gs, err := h.games.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, id, err)
		return
	}
	h.hub.Serve(w, r, gs.ID, buildView(gs.ID, gs.Game))
}
