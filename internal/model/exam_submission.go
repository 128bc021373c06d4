package model

import (
	"time"

	"gorm.io/datatypes"
)

// ExamSubmission is one completed attempt. Score stays NULL until the first
// grading pass writes it; it is never overwritten by the auto-grader afterwards.
// swagger:model ExamSubmission
type ExamSubmission struct {
	UUIDBase
	ExamID           string         `gorm:"index;type:varchar(36)" json:"examId"`
	StudentID        uint           `gorm:"index;type:bigint unsigned" json:"studentId"`
	Answers          datatypes.JSON `gorm:"type:json" json:"answers"` // question id -> submitted answer
	SubmittedAt      time.Time      `json:"submittedAt"`
	TimeSpentSeconds int            `gorm:"default:0" json:"timeSpentSeconds"`
	IsTimeout        bool           `gorm:"default:false" json:"isTimeout"`

	Score         *float64 `json:"score,omitempty"`
	TotalPossible float64  `gorm:"default:0" json:"totalPossible"`

	// Monitoring metadata, informational only.
	Warnings         datatypes.JSON `gorm:"type:json" json:"warnings,omitempty"`
	RecordingURL     string         `gorm:"size:512" json:"recordingUrl,omitempty"`
	ScreenCaptureURL string         `gorm:"size:512" json:"screenCaptureUrl,omitempty"`
}

func (ExamSubmission) TableName() string {
	return "exam_submissions"
}
