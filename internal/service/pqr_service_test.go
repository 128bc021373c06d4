package service

import (
	"language_center_backend/internal/model"
	"testing"
)

func TestCanTransitionPQR(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{model.PQRStatusOpen, model.PQRStatusInReview, true},
		{model.PQRStatusOpen, model.PQRStatusResolved, true},
		{model.PQRStatusOpen, model.PQRStatusClosed, true},
		{model.PQRStatusInReview, model.PQRStatusResolved, true},
		{model.PQRStatusInReview, model.PQRStatusClosed, true},
		{model.PQRStatusInReview, model.PQRStatusOpen, false},
		{model.PQRStatusResolved, model.PQRStatusClosed, true},
		{model.PQRStatusResolved, model.PQRStatusInReview, true}, // reopened for more work
		{model.PQRStatusResolved, model.PQRStatusOpen, false},

		// Closed is terminal.
		{model.PQRStatusClosed, model.PQRStatusOpen, false},
		{model.PQRStatusClosed, model.PQRStatusInReview, false},
		{model.PQRStatusClosed, model.PQRStatusResolved, false},
		{model.PQRStatusClosed, model.PQRStatusClosed, false},

		// Self transitions and unknown statuses.
		{model.PQRStatusOpen, model.PQRStatusOpen, false},
		{"bogus", model.PQRStatusOpen, false},
		{model.PQRStatusOpen, "bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			if got := CanTransitionPQR(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransitionPQR(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
