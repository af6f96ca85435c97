package match

import "unicode/utf8"

const (
	// maxCloseDistance is the edit distance still accepted as a misspelling.
	maxCloseDistance = 2

	// minCloseLength guards the close-match tolerance: accepted answers of
	// 3 runes or fewer must be matched exactly, otherwise distance 2 would
	// accept nearly anything.
	minCloseLength = 3
)

// Result is the outcome of evaluating a single answer submission.
type Result struct {
	Correct    bool // the answer counts as correct
	CloseMatch bool // correct, but only via the misspelling tolerance
}

// Evaluate checks candidate against every accepted answer. An answer is
// correct if its normalized form equals any accepted entry, or if it is
// within maxCloseDistance edits of an accepted entry longer than
// minCloseLength runes. Any single entry satisfying either rule is enough.
func Evaluate(candidate string, accepted []string) Result {
	cand := Normalize(candidate)

	var exact, close bool
	for _, a := range accepted {
		norm := Normalize(a)

		if cand == norm {
			exact = true
			break
		}

		// An empty submission never earns the misspelling tolerance.
		if cand == "" || close {
			continue
		}

		if utf8.RuneCountInString(norm) > minCloseLength && Distance(cand, norm) <= maxCloseDistance {
			close = true
		}
	}

	correct := exact || close
	return Result{
		Correct:    correct,
		CloseMatch: correct && !exact,
	}
}
