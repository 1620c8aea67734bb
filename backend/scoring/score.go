package scoring

import "institute/backend/models"

// MaxScore is the total score distributed across a course's completed
// challenges.
const MaxScore = 1000

// ScoreBreakdown aggregates a user's challenge progress for one course.
type ScoreBreakdown struct {
	Score               int
	CompletedChallenges int
	TotalAttempts       int
	TotalHints          int
}

// BaseScore returns the per-challenge base score when n challenges were
// completed.
func BaseScore(completed int) int {
	if completed <= 0 {
		return 0
	}
	return MaxScore / completed
}

// ChallengeScore applies the attempt and hint penalties to the base score.
// The first attempt is free; every further attempt costs 10% of the base,
// every hint 15%. Hints are uncapped, so the result can go negative.
func ChallengeScore(base, attempts, hintsUsed int) int {
	attemptsPenalty := 0
	if attempts > 1 {
		attemptsPenalty = (attempts - 1) * (base / 10)
	}
	hintsPenalty := hintsUsed * (base * 15 / 100)
	return base - attemptsPenalty - hintsPenalty
}

// Compute folds a user's progress records for one course into a score.
// Only completed challenges count, both for the per-challenge base score
// and for the sum. No floor is applied to the total.
func Compute(records []models.Progress) ScoreBreakdown {
	var breakdown ScoreBreakdown
	for _, r := range records {
		if !r.Completed {
			continue
		}
		breakdown.CompletedChallenges++
		breakdown.TotalAttempts += r.Attempts
		breakdown.TotalHints += r.HintsUsed
	}
	if breakdown.CompletedChallenges == 0 {
		return breakdown
	}

	base := BaseScore(breakdown.CompletedChallenges)
	for _, r := range records {
		if !r.Completed {
			continue
		}
		breakdown.Score += ChallengeScore(base, r.Attempts, r.HintsUsed)
	}
	return breakdown
}
