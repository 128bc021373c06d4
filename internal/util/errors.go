package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrExamNotFound        = errors.New("exam unavailable")
	ErrExamNotPublished    = errors.New("exam not published or not accessible")
	ErrAttemptDenied       = errors.New("attempt denied")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseFull          = errors.New("course is at capacity")
	ErrAlreadyEnrolled     = errors.New("student already enrolled in course")
	ErrNotEnrolled         = errors.New("student not enrolled in course")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrTicketClosed        = errors.New("ticket is closed")
	ErrInvalidTransition   = errors.New("invalid ticket status transition")
	ErrGradeItemNotFound   = errors.New("grade item not found")
	ErrInvalidGradeWeight  = errors.New("grade item weights must be positive")
	ErrScoreExceedsMax     = errors.New("score exceeds grade item maximum")
	ErrSessionNotFound     = errors.New("attendance session not found")
	ErrInvalidAttendance   = errors.New("invalid attendance status")
	ErrConversationMissing = errors.New("conversation not found")
	ErrFileNotFound        = errors.New("file not found")
)

// Attempt denial reason codes exposed to clients.
const (
	AttemptReasonOverdue   = "overdue"
	AttemptReasonExhausted = "attempts_exhausted"
)
