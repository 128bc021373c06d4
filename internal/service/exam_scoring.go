package service

import (
	"encoding/json"
	"language_center_backend/internal/model"
	"language_center_backend/internal/util"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ScoreResult is the raw outcome of auto-grading one submission. Score is the
// sum of points earned; TotalPossible sums every question's points, including
// essays and unanswered questions. Normalization against the passing score
// happens at presentation time, not here.
type ScoreResult struct {
	Score         float64 `json:"score"`
	TotalPossible float64 `json:"totalPossible"`
}

// ScoreExam grades a submission against the exam structure. It is pure: no
// I/O, no clock, same inputs always produce the same result.
//
// Per question type:
//   - multiple_choice: exact, case-sensitive match on the option id.
//   - fill_blank: trimmed, case-insensitive text match.
//   - essay: never auto-scored; counts toward the denominator only.
//
// Malformed structure (zero-point questions, empty sections) is tolerated so
// the total stays well-defined.
func ScoreExam(exam *model.Exam, answers map[string]string) ScoreResult {
	var result ScoreResult

	for _, section := range exam.Sections {
		for _, q := range section.Questions {
			result.TotalPossible += q.Points

			submitted, answered := answers[q.ID]
			if !answered {
				continue
			}

			switch q.QuestionType {
			case model.QuestionMultipleChoice:
				if submitted == q.CorrectAnswer {
					result.Score += q.Points
				}
			case model.QuestionFillBlank:
				if strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(q.CorrectAnswer)) {
					result.Score += q.Points
				}
			case model.QuestionEssay:
				// Manual grading only.
			}
		}
	}

	return result
}

// CanStartAttempt reports whether a student may begin a new attempt and, when
// denied, the reason code. Permitted iff now <= due date AND attempts made <
// max attempts. When both conditions fail the due-date reason wins, so the
// student sees "overdue" rather than "attempts exhausted".
func CanStartAttempt(exam *model.Exam, attemptsMade int64, now time.Time) (bool, string) {
	if now.After(exam.DueDate) {
		return false, util.AttemptReasonOverdue
	}
	if attemptsMade >= int64(exam.MaxAttempts) {
		return false, util.AttemptReasonExhausted
	}
	return true, ""
}

// DecodeAnswers unpacks the stored answers column. A missing or malformed
// blob grades as an empty submission rather than failing.
func DecodeAnswers(raw datatypes.JSON) map[string]string {
	answers := make(map[string]string)
	if len(raw) == 0 {
		return answers
	}
	if err := json.Unmarshal(raw, &answers); err != nil {
		return make(map[string]string)
	}
	return answers
}

// submissionScoreStore is the slice of the exam repository the grader needs.
type submissionScoreStore interface {
	UpdateScoreIfNull(submissionID string, score, totalPossible float64) (bool, error)
}

// EnsureScored grades a submission the first time results are viewed. The
// write is conditional on the stored score still being NULL, so repeat views
// and concurrent graders are no-ops against storage, and a score adjusted
// out-of-band (manual essay grading) is never clobbered.
func EnsureScored(exam *model.Exam, submission *model.ExamSubmission, store submissionScoreStore) (ScoreResult, bool, error) {
	if submission.Score != nil {
		return ScoreResult{Score: *submission.Score, TotalPossible: submission.TotalPossible}, false, nil
	}

	result := ScoreExam(exam, DecodeAnswers(submission.Answers))

	applied, err := store.UpdateScoreIfNull(submission.ID, result.Score, result.TotalPossible)
	if err != nil {
		return ScoreResult{}, false, err
	}

	if applied {
		score := result.Score
		submission.Score = &score
		submission.TotalPossible = result.TotalPossible
	}

	return result, applied, nil
}
