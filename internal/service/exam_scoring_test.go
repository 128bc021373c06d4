package service

import (
	"language_center_backend/internal/model"
	"language_center_backend/internal/util"
	"testing"
	"time"

	"gorm.io/datatypes"
)

func mcQuestion(id, correct string, points float64) model.ExamQuestion {
	return model.ExamQuestion{
		UUIDBase:      model.UUIDBase{ID: id},
		QuestionType:  model.QuestionMultipleChoice,
		CorrectAnswer: correct,
		Points:        points,
	}
}

func fillQuestion(id, correct string, points float64) model.ExamQuestion {
	return model.ExamQuestion{
		UUIDBase:      model.UUIDBase{ID: id},
		QuestionType:  model.QuestionFillBlank,
		CorrectAnswer: correct,
		Points:        points,
	}
}

func essayQuestion(id string, points float64) model.ExamQuestion {
	return model.ExamQuestion{
		UUIDBase:     model.UUIDBase{ID: id},
		QuestionType: model.QuestionEssay,
		Points:       points,
	}
}

func examWith(questions ...model.ExamQuestion) *model.Exam {
	return &model.Exam{
		Sections: []model.ExamSection{
			{UUIDBase: model.UUIDBase{ID: "s1"}, Questions: questions},
		},
	}
}

func TestScoreExam(t *testing.T) {
	tests := []struct {
		name      string
		exam      *model.Exam
		answers   map[string]string
		wantScore float64
		wantTotal float64
	}{
		{
			name: "all correct",
			exam: examWith(
				mcQuestion("q1", "b", 2),
				fillQuestion("q2", "paris", 3),
			),
			answers:   map[string]string{"q1": "b", "q2": "paris"},
			wantScore: 5,
			wantTotal: 5,
		},
		{
			name: "multiple choice is case sensitive on the option id",
			exam: examWith(
				mcQuestion("q1", "b", 2),
			),
			answers:   map[string]string{"q1": "B"},
			wantScore: 0,
			wantTotal: 2,
		},
		{
			name: "fill blank trims whitespace and ignores case",
			exam: examWith(
				fillQuestion("q1", "Paris", 3),
			),
			answers:   map[string]string{"q1": "  paris  "},
			wantScore: 3,
			wantTotal: 3,
		},
		{
			name: "essay counts toward the total but never the score",
			exam: examWith(
				mcQuestion("q1", "a", 2),
				essayQuestion("q2", 3),
			),
			answers:   map[string]string{"q1": "a", "q2": "a long handwritten answer"},
			wantScore: 2,
			wantTotal: 5,
		},
		{
			name: "unanswered questions earn nothing",
			exam: examWith(
				mcQuestion("q1", "a", 2),
				fillQuestion("q2", "hola", 3),
			),
			answers:   map[string]string{"q1": "a"},
			wantScore: 2,
			wantTotal: 5,
		},
		{
			name: "empty submission still has the full denominator",
			exam: examWith(
				mcQuestion("q1", "a", 2),
				essayQuestion("q2", 3),
			),
			answers:   map[string]string{},
			wantScore: 0,
			wantTotal: 5,
		},
		{
			name: "answers to unknown questions are ignored",
			exam: examWith(
				mcQuestion("q1", "a", 2),
			),
			answers:   map[string]string{"q1": "a", "ghost": "b"},
			wantScore: 2,
			wantTotal: 2,
		},
		{
			name: "zero point questions are tolerated",
			exam: examWith(
				mcQuestion("q1", "a", 0),
			),
			answers:   map[string]string{"q1": "a"},
			wantScore: 0,
			wantTotal: 0,
		},
		{
			name:      "exam with no sections",
			exam:      &model.Exam{},
			answers:   map[string]string{"q1": "a"},
			wantScore: 0,
			wantTotal: 0,
		},
		{
			name: "questions spread across sections",
			exam: &model.Exam{
				Sections: []model.ExamSection{
					{UUIDBase: model.UUIDBase{ID: "s1"}, Questions: []model.ExamQuestion{mcQuestion("q1", "a", 1)}},
					{UUIDBase: model.UUIDBase{ID: "s2"}, Questions: []model.ExamQuestion{fillQuestion("q2", "adios", 4)}},
				},
			},
			answers:   map[string]string{"q1": "a", "q2": "ADIOS"},
			wantScore: 5,
			wantTotal: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreExam(tt.exam, tt.answers)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.TotalPossible != tt.wantTotal {
				t.Errorf("TotalPossible = %v, want %v", got.TotalPossible, tt.wantTotal)
			}
		})
	}
}

func TestScoreExamIsDeterministic(t *testing.T) {
	exam := examWith(
		mcQuestion("q1", "b", 2),
		fillQuestion("q2", "gracias", 3),
		essayQuestion("q3", 5),
	)
	answers := map[string]string{"q1": "b", "q2": " Gracias ", "q3": "essay text"}

	first := ScoreExam(exam, answers)
	for i := 0; i < 10; i++ {
		if got := ScoreExam(exam, answers); got != first {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestCanStartAttempt(t *testing.T) {
	due := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	exam := &model.Exam{DueDate: due, MaxAttempts: 2}

	tests := []struct {
		name       string
		attempts   int64
		now        time.Time
		want       bool
		wantReason string
	}{
		{"before due with attempts left", 0, due.Add(-time.Hour), true, ""},
		{"exactly at the due date", 1, due, true, ""},
		{"past due", 0, due.Add(time.Second), false, util.AttemptReasonOverdue},
		{"attempts exhausted", 2, due.Add(-time.Hour), false, util.AttemptReasonExhausted},
		{"over the limit", 3, due.Add(-time.Hour), false, util.AttemptReasonExhausted},
		{"past due and exhausted, overdue wins", 2, due.Add(time.Hour), false, util.AttemptReasonOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := CanStartAttempt(exam, tt.attempts, tt.now)
			if got != tt.want {
				t.Errorf("permitted = %v, want %v", got, tt.want)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestDecodeAnswers(t *testing.T) {
	tests := []struct {
		name string
		raw  datatypes.JSON
		want map[string]string
	}{
		{"nil blob", nil, map[string]string{}},
		{"empty blob", datatypes.JSON(""), map[string]string{}},
		{"valid blob", datatypes.JSON(`{"q1":"a"}`), map[string]string{"q1": "a"}},
		{"malformed blob", datatypes.JSON(`{"q1":`), map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeAnswers(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("got[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

// fakeScoreStore counts conditional writes and mimics the NULL guard.
type fakeScoreStore struct {
	writes  int
	applied bool
}

func (f *fakeScoreStore) UpdateScoreIfNull(submissionID string, score, totalPossible float64) (bool, error) {
	f.writes++
	return f.applied, nil
}

func TestEnsureScoredWritesOnce(t *testing.T) {
	exam := examWith(mcQuestion("q1", "a", 2))
	submission := &model.ExamSubmission{
		UUIDBase: model.UUIDBase{ID: "sub1"},
		Answers:  datatypes.JSON(`{"q1":"a"}`),
	}

	store := &fakeScoreStore{applied: true}

	result, applied, err := EnsureScored(exam, submission, store)
	if err != nil {
		t.Fatal(err)
	}
	if !applied {
		t.Fatal("first grading should apply")
	}
	if result.Score != 2 || result.TotalPossible != 2 {
		t.Fatalf("result = %+v", result)
	}
	if submission.Score == nil || *submission.Score != 2 {
		t.Fatalf("submission score not updated in memory: %v", submission.Score)
	}
	if store.writes != 1 {
		t.Fatalf("writes = %d, want 1", store.writes)
	}

	// Second view: the stored score short-circuits the grader entirely.
	result2, applied2, err := EnsureScored(exam, submission, store)
	if err != nil {
		t.Fatal(err)
	}
	if applied2 {
		t.Fatal("second grading must not apply")
	}
	if result2 != result {
		t.Fatalf("regrade changed the result: %+v vs %+v", result2, result)
	}
	if store.writes != 1 {
		t.Fatalf("writes after second view = %d, want 1", store.writes)
	}
}

func TestEnsureScoredLosesRace(t *testing.T) {
	exam := examWith(mcQuestion("q1", "a", 2))
	submission := &model.ExamSubmission{
		UUIDBase: model.UUIDBase{ID: "sub1"},
		Answers:  datatypes.JSON(`{"q1":"a"}`),
	}

	// Another grader got there first; the guard rejects our write.
	store := &fakeScoreStore{applied: false}

	_, applied, err := EnsureScored(exam, submission, store)
	if err != nil {
		t.Fatal(err)
	}
	if applied {
		t.Fatal("write should not apply when the guard rejects it")
	}
	if submission.Score != nil {
		t.Fatal("in-memory score must stay unset when the write is rejected")
	}
}

func TestEnsureScoredSkipsManuallyGraded(t *testing.T) {
	exam := examWith(essayQuestion("q1", 10))
	manual := 8.0
	submission := &model.ExamSubmission{
		UUIDBase:      model.UUIDBase{ID: "sub1"},
		Answers:       datatypes.JSON(`{"q1":"essay"}`),
		Score:         &manual,
		TotalPossible: 10,
	}

	store := &fakeScoreStore{applied: true}

	result, applied, err := EnsureScored(exam, submission, store)
	if err != nil {
		t.Fatal(err)
	}
	if applied {
		t.Fatal("manually graded submission must not be regraded")
	}
	if result.Score != 8 || result.TotalPossible != 10 {
		t.Fatalf("result = %+v, want the stored manual score", result)
	}
	if store.writes != 0 {
		t.Fatalf("writes = %d, want 0", store.writes)
	}
}
