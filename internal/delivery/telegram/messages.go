package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/infra/postgres/repository"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/match"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/service"
)

const (
	msgWelcome = `🌍 <b>Welcome to Geo Genius!</b>

I will quiz you on countries and their capitals. Type your answer as plain text, typos are forgiven.

/play — start a game
/hint — get a hint for the current question
/skip — skip the current question
/score — current game score
/stop — finish the game and see your score
/daily — today's daily challenge
/top — leaderboard
/reset — wipe your game history
/help — show this message`

	msgHelp = `Answer questions by typing the country or capital name. Small typos still count.

/play — start a game
/hint — hint for the current question
/skip — skip the current question
/score — current game score
/stop — finish the game
/daily — daily challenge
/top — leaderboard`

	msgUnknownCommand = "I don't know that command. Try /help."
	msgAlreadyPlaying = "You already have a game running. Answer the question, or /stop to finish."
	msgNoGame         = "No game in progress. Start one with /play."
	msgSomethingWrong = "Something went wrong, please try again."
	msgReset          = "Your game history has been wiped. Fresh start, /play!"
)

func renderQuestion(q *entities.Question) string {
	return fmt.Sprintf("❓ %s", html.EscapeString(q.Prompt))
}

func renderHint(hint string) string {
	return fmt.Sprintf("💡 %s", html.EscapeString(hint))
}

func renderResult(r *service.AnswerResult) string {
	var b strings.Builder

	switch {
	case r.Correct && r.CloseMatch:
		b.WriteString("✅ Correct! (close enough, the exact answer is ")
		b.WriteString(html.EscapeString(joinAnswers(r.Accepted)))
		b.WriteString(")\n")
	case r.Correct:
		b.WriteString("✅ Correct!\n")
	default:
		b.WriteString("❌ Not quite. The answer is ")
		b.WriteString(html.EscapeString(joinAnswers(r.Accepted)))
		b.WriteString(".\n")
	}

	if e := r.Enrichment; e != nil && e.Info != nil {
		if e.Info.Summary != "" {
			b.WriteString("\n")
			b.WriteString(html.EscapeString(e.Info.Summary))
			b.WriteString("\n")
		}
		for _, fact := range e.Info.Facts {
			b.WriteString("\n• ")
			b.WriteString(html.EscapeString(fact))
		}
		if len(e.Info.Facts) > 0 {
			b.WriteString("\n")
		}
	}
	if e := r.Enrichment; e != nil && e.MapURL != "" {
		fmt.Fprintf(&b, "\n🗺 <a href=%q>View on the map</a>\n", e.MapURL)
	}

	fmt.Fprintf(&b, "\n%s", renderScore(r.Session))

	return b.String()
}

func renderSkip(r *service.AnswerResult) string {
	return fmt.Sprintf("⏭ Skipped. The answer was %s.\n\n%s",
		html.EscapeString(joinAnswers(r.Accepted)),
		renderScore(r.Session),
	)
}

func renderScore(s service.SessionSummary) string {
	return fmt.Sprintf("Score: %d/%d · streak %d", s.Correct, s.Asked, s.Streak)
}

func renderSession(s *entities.GameSession) string {
	return fmt.Sprintf("📊 Questions: %d · correct: %d · close: %d · streak: %d (best %d)",
		s.Asked, s.Correct, s.CloseMatches, s.Streak, s.BestStreak)
}

func renderFinal(s *entities.GameSession) string {
	return fmt.Sprintf(`🏁 <b>Game over!</b>

Questions: %d
Correct: %d
Close matches: %d
Best streak: %d

Play again with /play.`,
		s.Asked, s.Correct, s.CloseMatches, s.BestStreak)
}

func renderDaily(q *entities.Question) string {
	return fmt.Sprintf("📅 <b>Daily challenge</b>\n\n%s\n\nSend your answer as a regular message.",
		html.EscapeString(q.Prompt))
}

func renderDailyVerdict(r match.Result) string {
	switch {
	case r.Correct && r.CloseMatch:
		return "✅ Close enough, that counts! Come back tomorrow for a new challenge."
	case r.Correct:
		return "✅ Correct! Come back tomorrow for a new challenge."
	default:
		return "❌ Not it. Try again, or /play for a full game."
	}
}

func renderLeaderboard(entries []repository.LeaderboardEntry) string {
	if len(entries) == 0 {
		return "The leaderboard is empty. Be the first, /play!"
	}

	var b strings.Builder
	b.WriteString("🏆 <b>Leaderboard</b>\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "\n%d. %s — %d correct, best streak %d",
			i+1, html.EscapeString(e.PlayerName), e.Correct, e.BestStreak)
	}
	return b.String()
}

func joinAnswers(accepted []string) string {
	if len(accepted) == 0 {
		return "unknown"
	}
	return strings.Join(accepted, " or ")
}
