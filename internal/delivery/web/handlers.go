package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/infra/postgres/repository"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/match"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/service"
)

type QuizService interface {
	StartGame(ctx context.Context, playerID int64) (*entities.GameSession, error)
	CurrentQuestion(ctx context.Context, sessionID string) (*entities.Question, error)
	SubmitAnswer(ctx context.Context, sessionID, text string) (*service.AnswerResult, error)
	Hint(ctx context.Context, sessionID string) (string, error)
	EndGame(ctx context.Context, sessionID string) (*entities.GameSession, error)
}

type DailyService interface {
	Question(now time.Time) *entities.Question
	Check(now time.Time, text string) (*entities.Question, match.Result)
}

type StatsService interface {
	Leaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error)
	HardestCountries(ctx context.Context, limit int) (map[string]int, error)
}

type PlayerService interface {
	CreateAnonymous(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.Player, error)
}

// Handler holds the API routes.
type Handler struct {
	quiz    QuizService
	daily   DailyService
	stats   StatsService
	players PlayerService
	logger  *zap.Logger
}

// NewHandler creates a Handler over the game services.
func NewHandler(quiz QuizService, daily DailyService, stats StatsService, players PlayerService, logger *zap.Logger) *Handler {
	return &Handler{
		quiz:    quiz,
		daily:   daily,
		stats:   stats,
		players: players,
		logger:  logger,
	}
}

// Routes builds the API mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/games", h.handleStartGame)
	mux.HandleFunc("GET /api/games/{id}/question", h.handleQuestion)
	mux.HandleFunc("POST /api/games/{id}/answer", h.handleAnswer)
	mux.HandleFunc("GET /api/games/{id}/hint", h.handleHint)
	mux.HandleFunc("POST /api/games/{id}/finish", h.handleFinish)
	mux.HandleFunc("GET /api/daily", h.handleDaily)
	mux.HandleFunc("POST /api/daily/answer", h.handleDailyAnswer)
	mux.HandleFunc("GET /api/leaderboard", h.handleLeaderboard)
	mux.HandleFunc("GET /api/stats/hardest-countries", h.handleHardestCountries)
	mux.HandleFunc("GET /api/players/{id}", h.handlePlayer)

	return h.logged(mux)
}

// logged wraps the mux with request logging.
func (h *Handler) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func (h *Handler) handleStartGame(w http.ResponseWriter, r *http.Request) {
	playerID, err := h.players.CreateAnonymous(r.Context())
	if err != nil {
		h.serverError(w, "create player", err)
		return
	}

	session, err := h.quiz.StartGame(r.Context(), playerID)
	if err != nil {
		h.serverError(w, "start game", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": session.ID,
		"player_id":  session.PlayerID,
	})
}

func (h *Handler) handleQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.quiz.CurrentQuestion(r.Context(), r.PathValue("id"))
	if err != nil {
		h.sessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, q)
}

type answerRequest struct {
	Answer string `json:"answer"`
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.quiz.SubmitAnswer(r.Context(), r.PathValue("id"), req.Answer)
	if err != nil {
		h.sessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	hint, err := h.quiz.Hint(r.Context(), r.PathValue("id"))
	if err != nil {
		h.sessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"hint": hint})
}

func (h *Handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	session, err := h.quiz.EndGame(r.Context(), r.PathValue("id"))
	if err != nil {
		h.sessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"asked":         session.Asked,
		"correct":       session.Correct,
		"close_matches": session.CloseMatches,
		"best_streak":   session.BestStreak,
	})
}

func (h *Handler) handleDaily(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.daily.Question(time.Now()))
}

func (h *Handler) handleDailyAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, verdict := h.daily.Check(time.Now(), req.Answer)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"question_id": q.ID,
		"correct":     verdict.Correct,
		"close_match": verdict.CloseMatch,
	})
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.writeError(w, http.StatusBadRequest, "invalid 'limit' parameter")
			return
		}
		limit = n
	}

	entries, err := h.stats.Leaderboard(r.Context(), limit)
	if err != nil {
		h.serverError(w, "leaderboard", err)
		return
	}
	if entries == nil {
		entries = []repository.LeaderboardEntry{}
	}

	h.writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleHardestCountries(w http.ResponseWriter, r *http.Request) {
	misses, err := h.stats.HardestCountries(r.Context(), 10)
	if err != nil {
		h.serverError(w, "hardest countries", err)
		return
	}

	h.writeJSON(w, http.StatusOK, misses)
}

func (h *Handler) handlePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	player, err := h.players.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			h.writeError(w, http.StatusNotFound, "player not found")
			return
		}
		h.serverError(w, "get player", err)
		return
	}

	h.writeJSON(w, http.StatusOK, player)
}

// sessionError maps service errors to API status codes.
func (h *Handler) sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		h.writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrSessionNotActive):
		h.writeError(w, http.StatusConflict, "session is not active")
	case errors.Is(err, service.ErrNoQuestion):
		h.writeError(w, http.StatusConflict, "no question pending")
	default:
		h.serverError(w, "quiz", err)
	}
}

func (h *Handler) serverError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("handler error", zap.String("op", op), zap.Error(err))
	h.writeError(w, http.StatusInternalServerError, "internal error")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
