package service

import (
	"errors"
	"language_center_backend/internal/model"
	"language_center_backend/internal/util"
	"testing"
	"time"
)

func TestQuestionCorrect(t *testing.T) {
	tests := []struct {
		name    string
		q       model.ExamQuestion
		answers map[string]string
		want    bool
	}{
		{
			name:    "multiple choice exact match",
			q:       mcQuestion("q1", "b", 1),
			answers: map[string]string{"q1": "b"},
			want:    true,
		},
		{
			name:    "multiple choice wrong case",
			q:       mcQuestion("q1", "b", 1),
			answers: map[string]string{"q1": "B"},
			want:    false,
		},
		{
			name:    "fill blank normalized",
			q:       fillQuestion("q1", "Merci", 1),
			answers: map[string]string{"q1": " merci "},
			want:    true,
		},
		{
			name:    "essay is never marked correct",
			q:       essayQuestion("q1", 1),
			answers: map[string]string{"q1": "anything"},
			want:    false,
		},
		{
			name:    "unanswered",
			q:       mcQuestion("q1", "b", 1),
			answers: map[string]string{},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := questionCorrect(tt.q, tt.answers); got != tt.want {
				t.Errorf("questionCorrect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttemptDeniedErrorMatchesSentinel(t *testing.T) {
	err := &AttemptDeniedError{Reason: util.AttemptReasonOverdue}

	if !errors.Is(err, util.ErrAttemptDenied) {
		t.Fatal("AttemptDeniedError should match util.ErrAttemptDenied")
	}

	var denied *AttemptDeniedError
	if !errors.As(err, &denied) {
		t.Fatal("errors.As should unwrap AttemptDeniedError")
	}
	if denied.Reason != util.AttemptReasonOverdue {
		t.Fatalf("Reason = %q", denied.Reason)
	}
}

func TestRemainingSeconds(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		minutes int
		now     time.Time
		want    int
	}{
		{"attempt just started", 60, start, 3600},
		{"halfway through", 60, start.Add(30 * time.Minute), 1800},
		{"window expired", 60, start.Add(61 * time.Minute), 0},
		{"exactly at deadline", 45, start.Add(45 * time.Minute), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := remainingSeconds(tt.minutes, start, tt.now); got != tt.want {
				t.Errorf("remainingSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}
