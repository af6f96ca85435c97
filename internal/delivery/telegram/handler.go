// Package telegram is the Telegram front-end of the game.
package telegram

import (
	"context"
	"errors"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
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
	Skip(ctx context.Context, sessionID string) (*service.AnswerResult, error)
	Hint(ctx context.Context, sessionID string) (string, error)
	EndGame(ctx context.Context, sessionID string) (*entities.GameSession, error)
	GetSession(sessionID string) (*entities.GameSession, error)
}

type DailyService interface {
	Question(now time.Time) *entities.Question
	Check(now time.Time, text string) (*entities.Question, match.Result)
}

type StatsService interface {
	Leaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error)
}

type PlayerService interface {
	Ensure(ctx context.Context, p *entities.Player) error
}

type ResetService interface {
	ResetPlayer(ctx context.Context, playerID int64) error
}

type Handler struct {
	bot     *tgbotapi.BotAPI
	logger  *zap.Logger
	quiz    QuizService
	daily   DailyService
	stats   StatsService
	players PlayerService
	reset   ResetService

	mu       sync.Mutex
	sessions map[int64]string // chat ID -> active game session ID
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	quiz QuizService,
	daily DailyService,
	stats StatsService,
	players PlayerService,
	reset ResetService,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		quiz:     quiz,
		daily:    daily,
		stats:    stats,
		players:  players,
		reset:    reset,
		sessions: make(map[int64]string),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		h.logger.Debug("update without message")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	err := h.players.Ensure(ctx, &entities.Player{
		ID:       from.ID,
		Source:   "telegram",
		Name:     from.FirstName,
		Username: from.UserName,
	})
	if err != nil {
		h.logger.Error("failed to ensure player",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			h.send(newHTMLMessage(chatID, msgWelcome))
		case "play":
			h.handlePlay(ctx, chatID, from.ID)
		case "hint":
			h.handleHint(ctx, chatID)
		case "skip":
			h.handleSkip(ctx, chatID)
		case "score":
			h.handleScore(chatID)
		case "stop":
			h.handleStop(ctx, chatID)
		case "daily":
			h.handleDaily(chatID)
		case "top":
			h.handleTop(ctx, chatID)
		case "reset":
			h.handleReset(ctx, chatID, from.ID)
		case "help":
			h.send(newHTMLMessage(chatID, msgHelp))
		default:
			h.send(newHTMLMessage(chatID, msgUnknownCommand))
		}
		return
	}

	h.handleAnswer(ctx, chatID, update.Message.Text)
}

func (h *Handler) handlePlay(ctx context.Context, chatID, userID int64) {
	if h.sessionFor(chatID) != "" {
		h.send(newHTMLMessage(chatID, msgAlreadyPlaying))
		return
	}

	session, err := h.quiz.StartGame(ctx, userID)
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	h.setSession(chatID, session.ID)
	h.askQuestion(ctx, chatID)
}

func (h *Handler) handleAnswer(ctx context.Context, chatID int64, text string) {
	sessionID := h.sessionFor(chatID)
	if sessionID == "" {
		// No game running: treat free text as a daily challenge attempt.
		_, verdict := h.daily.Check(time.Now(), text)
		h.send(newHTMLMessage(chatID, renderDailyVerdict(verdict)))
		return
	}

	result, err := h.quiz.SubmitAnswer(ctx, sessionID, text)
	if err != nil {
		h.clearIfGone(chatID, err)
		h.sendError(chatID, err)
		return
	}

	h.send(newHTMLMessage(chatID, renderResult(result)))
	h.askQuestion(ctx, chatID)
}

func (h *Handler) handleHint(ctx context.Context, chatID int64) {
	sessionID := h.sessionFor(chatID)
	if sessionID == "" {
		h.send(newHTMLMessage(chatID, msgNoGame))
		return
	}

	hint, err := h.quiz.Hint(ctx, sessionID)
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	h.send(newHTMLMessage(chatID, renderHint(hint)))
}

func (h *Handler) handleSkip(ctx context.Context, chatID int64) {
	sessionID := h.sessionFor(chatID)
	if sessionID == "" {
		h.send(newHTMLMessage(chatID, msgNoGame))
		return
	}

	result, err := h.quiz.Skip(ctx, sessionID)
	if err != nil {
		h.clearIfGone(chatID, err)
		h.sendError(chatID, err)
		return
	}

	h.send(newHTMLMessage(chatID, renderSkip(result)))
	h.askQuestion(ctx, chatID)
}

func (h *Handler) handleScore(chatID int64) {
	sessionID := h.sessionFor(chatID)
	if sessionID == "" {
		h.send(newHTMLMessage(chatID, msgNoGame))
		return
	}

	session, err := h.quiz.GetSession(sessionID)
	if err != nil {
		h.clearIfGone(chatID, err)
		h.sendError(chatID, err)
		return
	}

	h.send(newHTMLMessage(chatID, renderSession(session)))
}

func (h *Handler) handleStop(ctx context.Context, chatID int64) {
	sessionID := h.sessionFor(chatID)
	if sessionID == "" {
		h.send(newHTMLMessage(chatID, msgNoGame))
		return
	}

	session, err := h.quiz.EndGame(ctx, sessionID)
	h.setSession(chatID, "")
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	h.send(newHTMLMessage(chatID, renderFinal(session)))
}

func (h *Handler) handleDaily(chatID int64) {
	q := h.daily.Question(time.Now())
	h.send(newHTMLMessage(chatID, renderDaily(q)))
}

func (h *Handler) handleTop(ctx context.Context, chatID int64) {
	entries, err := h.stats.Leaderboard(ctx, 10)
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	h.send(newHTMLMessage(chatID, renderLeaderboard(entries)))
}

func (h *Handler) handleReset(ctx context.Context, chatID, userID int64) {
	if err := h.reset.ResetPlayer(ctx, userID); err != nil {
		h.sendError(chatID, err)
		return
	}

	h.send(newHTMLMessage(chatID, msgReset))
}

func (h *Handler) askQuestion(ctx context.Context, chatID int64) {
	sessionID := h.sessionFor(chatID)
	if sessionID == "" {
		return
	}

	q, err := h.quiz.CurrentQuestion(ctx, sessionID)
	if err != nil {
		h.clearIfGone(chatID, err)
		h.sendError(chatID, err)
		return
	}

	h.send(newHTMLMessage(chatID, renderQuestion(q)))
}

// clearIfGone drops the chat's session mapping when the service no longer
// knows the session.
func (h *Handler) clearIfGone(chatID int64, err error) {
	if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrSessionNotActive) {
		h.setSession(chatID, "")
	}
}

func (h *Handler) sessionFor(chatID int64) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[chatID]
}

func (h *Handler) setSession(chatID int64, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sessionID == "" {
		delete(h.sessions, chatID)
		return
	}
	h.sessions[chatID] = sessionID
}

func (h *Handler) sendError(chatID int64, err error) {
	h.logger.Error("handler error", zap.Error(err))
	h.send(newHTMLMessage(chatID, msgSomethingWrong))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}
