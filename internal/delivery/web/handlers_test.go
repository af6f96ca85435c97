package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/infra/postgres/repository"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/match"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/service"
)

type stubQuiz struct {
	question *entities.Question
	result   *service.AnswerResult
	err      error
}

func (s *stubQuiz) StartGame(_ context.Context, playerID int64) (*entities.GameSession, error) {
	return entities.NewGameSession("sess-1", playerID), s.err
}

func (s *stubQuiz) CurrentQuestion(_ context.Context, _ string) (*entities.Question, error) {
	return s.question, s.err
}

func (s *stubQuiz) SubmitAnswer(_ context.Context, _, _ string) (*service.AnswerResult, error) {
	return s.result, s.err
}

func (s *stubQuiz) Hint(_ context.Context, _ string) (string, error) {
	return "a hint", s.err
}

func (s *stubQuiz) EndGame(_ context.Context, _ string) (*entities.GameSession, error) {
	gs := entities.NewGameSession("sess-1", 1)
	gs.Complete()
	return gs, s.err
}

type stubDaily struct{ q *entities.Question }

func (s *stubDaily) Question(_ time.Time) *entities.Question { return s.q }

func (s *stubDaily) Check(_ time.Time, text string) (*entities.Question, match.Result) {
	return s.q, match.Evaluate(text, s.q.Accepted)
}

type stubStats struct{ entries []repository.LeaderboardEntry }

func (s *stubStats) Leaderboard(_ context.Context, _ int) ([]repository.LeaderboardEntry, error) {
	return s.entries, nil
}

func (s *stubStats) HardestCountries(_ context.Context, _ int) (map[string]int, error) {
	return map[string]int{"FR": 3}, nil
}

type stubPlayers struct{}

func (stubPlayers) CreateAnonymous(_ context.Context) (int64, error) { return 42, nil }

func (stubPlayers) GetByID(_ context.Context, id int64) (*entities.Player, error) {
	if id != 42 {
		return nil, repository.ErrPlayerNotFound
	}
	return &entities.Player{ID: 42, Source: "web", Name: "anonymous"}, nil
}

func testHandler(quiz *stubQuiz) *Handler {
	daily := &stubDaily{q: &entities.Question{
		ID:       "daily-2026-03-14",
		Kind:     entities.KindCapitalOf,
		Prompt:   "Daily challenge: what is the capital of France?",
		Accepted: []string{"Paris"},
	}}
	return NewHandler(quiz, daily, &stubStats{}, stubPlayers{}, zap.NewNop())
}

func doRequest(t *testing.T, h *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestStartGame(t *testing.T) {
	rec := doRequest(t, testHandler(&stubQuiz{}), http.MethodPost, "/api/games", "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["session_id"] != "sess-1" {
		t.Errorf("session_id = %v", resp["session_id"])
	}
}

func TestGetQuestionHidesAnswers(t *testing.T) {
	quiz := &stubQuiz{question: &entities.Question{
		ID:          "q1",
		Kind:        entities.KindCapitalOf,
		Prompt:      "What is the capital of France?",
		CountryCode: "FR",
		Accepted:    []string{"Paris"},
	}}

	rec := doRequest(t, testHandler(quiz), http.MethodGet, "/api/games/sess-1/question", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	if strings.Contains(body, "Paris") {
		t.Errorf("response leaks accepted answers: %s", body)
	}
	if strings.Contains(body, "FR") && strings.Contains(body, "country_code") {
		t.Errorf("response leaks country code: %s", body)
	}
	if !strings.Contains(body, "What is the capital of France?") {
		t.Errorf("prompt missing: %s", body)
	}
}

func TestSubmitAnswer(t *testing.T) {
	quiz := &stubQuiz{result: &service.AnswerResult{
		Correct:    true,
		CloseMatch: true,
		Accepted:   []string{"Paris"},
		Session:    service.SessionSummary{Asked: 1, Correct: 1, CloseMatches: 1, Streak: 1, BestStreak: 1},
	}}

	rec := doRequest(t, testHandler(quiz), http.MethodPost, "/api/games/sess-1/answer", `{"answer": "Pari"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp service.AnswerResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Correct || !resp.CloseMatch {
		t.Errorf("verdict lost in transport: %+v", resp)
	}
}

func TestSubmitAnswerBadBody(t *testing.T) {
	rec := doRequest(t, testHandler(&stubQuiz{}), http.MethodPost, "/api/games/sess-1/answer", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSessionErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrSessionNotFound, http.StatusNotFound},
		{service.ErrSessionNotActive, http.StatusConflict},
		{service.ErrNoQuestion, http.StatusConflict},
	}

	for _, tt := range tests {
		rec := doRequest(t, testHandler(&stubQuiz{err: tt.err}), http.MethodGet, "/api/games/x/question", "")
		if rec.Code != tt.want {
			t.Errorf("err %v: status = %d, want %d", tt.err, rec.Code, tt.want)
		}
	}
}

func TestDailyRoundTrip(t *testing.T) {
	h := testHandler(&stubQuiz{})

	rec := doRequest(t, h, http.MethodGet, "/api/daily", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, h, http.MethodPost, "/api/daily/answer", `{"answer": "paris"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["correct"] != true {
		t.Errorf("daily verdict = %v", resp)
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	rec := doRequest(t, testHandler(&stubQuiz{}), http.MethodGet, "/api/leaderboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty leaderboard = %s, want []", got)
	}
}

func TestGetPlayer(t *testing.T) {
	h := testHandler(&stubQuiz{})

	rec := doRequest(t, h, http.MethodGet, "/api/players/42", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var player entities.Player
	if err := json.Unmarshal(rec.Body.Bytes(), &player); err != nil {
		t.Fatal(err)
	}
	if player.ID != 42 || player.Source != "web" {
		t.Errorf("player = %+v", player)
	}

	if rec := doRequest(t, h, http.MethodGet, "/api/players/7", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown player: status = %d, want 404", rec.Code)
	}
	if rec := doRequest(t, h, http.MethodGet, "/api/players/abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad player id: status = %d, want 400", rec.Code)
	}
}

func TestLeaderboardBadLimit(t *testing.T) {
	rec := doRequest(t, testHandler(&stubQuiz{}), http.MethodGet, "/api/leaderboard?limit=zero", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
