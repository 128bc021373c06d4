package service

import (
	"context"
	"encoding/json"
	"errors"
	"language_center_backend/internal/model"
	"language_center_backend/internal/repository"
	"language_center_backend/internal/util"
	"language_center_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExamService struct {
	Repo *repository.ExamRepository
}

func NewExamService(repo *repository.ExamRepository) *ExamService {
	return &ExamService{Repo: repo}
}

type ExamQuestionReq struct {
	ID            string          `json:"id"`
	QuestionType  string          `json:"questionType" binding:"required"`
	Text          string          `json:"text" binding:"required"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer string          `json:"correctAnswer"`
	Points        float64         `json:"points"`
	Explanation   string          `json:"explanation"`
	Order         int             `json:"order"`
}

type ExamSectionReq struct {
	ID          string            `json:"id"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Order       int               `json:"order"`
	Questions   []ExamQuestionReq `json:"questions"`
}

type ExamReq struct {
	Title           *string           `json:"title"`
	Description     *string           `json:"description"`
	Category        *string           `json:"category"`
	CourseID        *uint             `json:"courseId"`
	DurationMinutes *int              `json:"durationMinutes"`
	DueDate         *time.Time        `json:"dueDate"`
	MaxAttempts     *int              `json:"maxAttempts"`
	PassingScore    *float64          `json:"passingScore"`
	IsPublished     *bool             `json:"isPublished"`
	Sections        *[]ExamSectionReq `json:"sections"`
}

func (s *ExamService) CreateExam(creatorID uint, req ExamReq) (*model.Exam, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.DueDate == nil {
		return nil, errors.New("due date is required")
	}

	exam := &model.Exam{
		Title:           *req.Title,
		CreatorID:       creatorID,
		DueDate:         *req.DueDate,
		DurationMinutes: 60,
		MaxAttempts:     1,
		PassingScore:    60,
	}

	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.Category != nil {
		exam.Category = *req.Category
	}
	if req.CourseID != nil {
		exam.CourseID = *req.CourseID
	}
	if req.DurationMinutes != nil {
		exam.DurationMinutes = *req.DurationMinutes
	}
	if req.MaxAttempts != nil {
		exam.MaxAttempts = *req.MaxAttempts
	}
	if req.PassingScore != nil {
		exam.PassingScore = *req.PassingScore
	}
	if req.IsPublished != nil {
		exam.IsPublished = *req.IsPublished
		if exam.IsPublished {
			now := time.Now()
			exam.PublishedAt = &now
		}
	}

	if err := s.Repo.Create(exam); err != nil {
		return nil, err
	}

	if req.Sections != nil {
		for _, secReq := range *req.Sections {
			section := &model.ExamSection{
				ExamID:      exam.ID,
				Title:       secReq.Title,
				Description: secReq.Description,
				Order:       secReq.Order,
			}
			if err := s.Repo.CreateSection(section); err != nil {
				return nil, err
			}
			for _, qReq := range secReq.Questions {
				q := &model.ExamQuestion{
					SectionID:     section.ID,
					ExamID:        exam.ID,
					QuestionType:  qReq.QuestionType,
					Text:          qReq.Text,
					Options:       datatypes.JSON(qReq.Options),
					CorrectAnswer: qReq.CorrectAnswer,
					Points:        qReq.Points,
					Explanation:   qReq.Explanation,
					Order:         qReq.Order,
				}
				if err := s.Repo.CreateQuestion(q); err != nil {
					return nil, err
				}
			}
		}
	}

	return s.Repo.FindByID(exam.ID)
}

func (s *ExamService) UpdateExam(examID string, req ExamReq) (*model.Exam, error) {
	exam, err := s.Repo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.Category != nil {
		exam.Category = *req.Category
	}
	if req.CourseID != nil {
		exam.CourseID = *req.CourseID
	}
	if req.DurationMinutes != nil {
		exam.DurationMinutes = *req.DurationMinutes
	}
	if req.DueDate != nil {
		exam.DueDate = *req.DueDate
	}
	if req.MaxAttempts != nil {
		exam.MaxAttempts = *req.MaxAttempts
	}
	if req.PassingScore != nil {
		exam.PassingScore = *req.PassingScore
	}
	if req.IsPublished != nil {
		if *req.IsPublished && !exam.IsPublished {
			now := time.Now()
			exam.PublishedAt = &now
		}
		exam.IsPublished = *req.IsPublished
	}

	// Save only the exam columns; sections are synced below.
	bare := *exam
	bare.Sections = nil
	if err := s.Repo.Update(&bare); err != nil {
		return nil, err
	}

	if req.Sections != nil {
		if err := s.syncSections(exam, *req.Sections); err != nil {
			return nil, err
		}
	}

	return s.Repo.FindByID(examID)
}

// syncSections reconciles the stored structure with the request: existing
// rows are updated, new ones created, and anything absent from the request
// removed.
func (s *ExamService) syncSections(exam *model.Exam, reqs []ExamSectionReq) error {
	existingSections := make(map[string]*model.ExamSection)
	existingQuestions := make(map[string]*model.ExamQuestion)
	for i := range exam.Sections {
		sec := &exam.Sections[i]
		existingSections[sec.ID] = sec
		for j := range sec.Questions {
			existingQuestions[sec.Questions[j].ID] = &sec.Questions[j]
		}
	}

	keptSections := make(map[string]bool)
	keptQuestions := make(map[string]bool)

	for _, secReq := range reqs {
		var sectionID string
		if secReq.ID != "" {
			if sec, ok := existingSections[secReq.ID]; ok {
				sec.Title = secReq.Title
				sec.Description = secReq.Description
				sec.Order = secReq.Order
				bare := *sec
				bare.Questions = nil
				if err := s.Repo.UpdateSection(&bare); err != nil {
					return err
				}
				sectionID = sec.ID
				keptSections[sec.ID] = true
			}
		}
		if sectionID == "" {
			section := &model.ExamSection{
				ExamID:      exam.ID,
				Title:       secReq.Title,
				Description: secReq.Description,
				Order:       secReq.Order,
			}
			if err := s.Repo.CreateSection(section); err != nil {
				return err
			}
			sectionID = section.ID
			keptSections[section.ID] = true
		}

		for _, qReq := range secReq.Questions {
			if qReq.ID != "" {
				if q, ok := existingQuestions[qReq.ID]; ok {
					q.SectionID = sectionID
					q.QuestionType = qReq.QuestionType
					q.Text = qReq.Text
					q.Options = datatypes.JSON(qReq.Options)
					q.CorrectAnswer = qReq.CorrectAnswer
					q.Points = qReq.Points
					q.Explanation = qReq.Explanation
					q.Order = qReq.Order
					if err := s.Repo.UpdateQuestion(q); err != nil {
						return err
					}
					keptQuestions[q.ID] = true
					continue
				}
			}
			q := &model.ExamQuestion{
				SectionID:     sectionID,
				ExamID:        exam.ID,
				QuestionType:  qReq.QuestionType,
				Text:          qReq.Text,
				Options:       datatypes.JSON(qReq.Options),
				CorrectAnswer: qReq.CorrectAnswer,
				Points:        qReq.Points,
				Explanation:   qReq.Explanation,
				Order:         qReq.Order,
			}
			if err := s.Repo.CreateQuestion(q); err != nil {
				return err
			}
			keptQuestions[q.ID] = true
		}
	}

	for id := range existingQuestions {
		if !keptQuestions[id] {
			if err := s.Repo.DeleteQuestion(id); err != nil {
				return err
			}
		}
	}
	for id := range existingSections {
		if !keptSections[id] {
			if err := s.Repo.DeleteSection(id); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *ExamService) DeleteExam(examID string) error {
	return s.Repo.Delete(examID)
}

func (s *ExamService) GetExam(examID string) (*model.Exam, error) {
	exam, err := s.Repo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) ListExams(page, limit int, courseID uint, publishedOnly bool) ([]repository.ExamListRow, int64, error) {
	return s.Repo.List(page, limit, courseID, publishedOnly)
}

// StudentExamQuestion hides the correct answer until the student has a
// graded submission.
type StudentExamQuestion struct {
	ID           string          `json:"id"`
	QuestionType string          `json:"questionType"`
	Text         string          `json:"text"`
	Options      json.RawMessage `json:"options,omitempty"`
	Points       float64         `json:"points"`
	Order        int             `json:"order"`

	// Populated only on the results view.
	SubmittedAnswer *string `json:"submittedAnswer,omitempty"`
	IsCorrect       *bool   `json:"isCorrect,omitempty"`
	CorrectAnswer   *string `json:"correctAnswer,omitempty"`
	Explanation     *string `json:"explanation,omitempty"`
}

type StudentExamSection struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Order       int                   `json:"order"`
	Questions   []StudentExamQuestion `json:"questions"`
}

type StudentExamDetail struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Category        string               `json:"category"`
	DurationMinutes int                  `json:"durationMinutes"`
	DueDate         time.Time            `json:"dueDate"`
	MaxAttempts     int                  `json:"maxAttempts"`
	PassingScore    float64              `json:"passingScore"`
	AttemptsMade    int64                `json:"attemptsMade"`
	CanStart        bool                 `json:"canStart"`
	DenyReason      string               `json:"denyReason,omitempty"`
	Sections        []StudentExamSection `json:"sections"`

	// Set while an attempt is running, computed from the server-side start
	// mark so a reloaded client cannot reset its own clock.
	RemainingSeconds *int `json:"remainingSeconds,omitempty"`
}

// attemptTTLGrace keeps the start mark alive slightly past the window so a
// timeout auto-submit still finds it.
const attemptTTLGrace = 5 * time.Minute

func remainingSeconds(durationMinutes int, startedAt, now time.Time) int {
	deadline := startedAt.Add(time.Duration(durationMinutes) * time.Minute)
	left := int(deadline.Sub(now).Seconds())
	if left < 0 {
		return 0
	}
	return left
}

// GetStudentExamDetail returns the exam as the attempt UI needs it: structure
// without answers, plus the attempt gate evaluated against the current clock.
func (s *ExamService) GetStudentExamDetail(studentID uint, examID string) (*StudentExamDetail, error) {
	exam, err := s.GetExam(examID)
	if err != nil {
		return nil, err
	}
	if !exam.IsPublished {
		return nil, util.ErrExamNotPublished
	}

	attempts, err := s.Repo.CountSubmissions(examID, studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	canStart, reason := CanStartAttempt(exam, attempts, now)

	detail := &StudentExamDetail{
		ID:              exam.ID,
		Title:           exam.Title,
		Description:     exam.Description,
		Category:        exam.Category,
		DurationMinutes: exam.DurationMinutes,
		DueDate:         exam.DueDate,
		MaxAttempts:     exam.MaxAttempts,
		PassingScore:    exam.PassingScore,
		AttemptsMade:    attempts,
		CanStart:        canStart,
		DenyReason:      reason,
	}

	// Heartbeat lookup is best effort; without it the client falls back to
	// its own timer.
	if startedAt, err := s.Repo.AttemptStartedAt(context.Background(), examID, studentID); err == nil && startedAt != nil {
		left := remainingSeconds(exam.DurationMinutes, *startedAt, now)
		detail.RemainingSeconds = &left
	}

	for _, sec := range exam.Sections {
		studentSec := StudentExamSection{
			ID:          sec.ID,
			Title:       sec.Title,
			Description: sec.Description,
			Order:       sec.Order,
		}
		for _, q := range sec.Questions {
			studentSec.Questions = append(studentSec.Questions, StudentExamQuestion{
				ID:           q.ID,
				QuestionType: q.QuestionType,
				Text:         q.Text,
				Options:      json.RawMessage(q.Options),
				Points:       q.Points,
				Order:        q.Order,
			})
		}
		detail.Sections = append(detail.Sections, studentSec)
	}

	return detail, nil
}

// StartAttempt re-evaluates the gate right before the attempt UI opens.
// Denial is an error so callers cannot accidentally ignore it.
func (s *ExamService) StartAttempt(studentID uint, examID string) (*StudentExamDetail, error) {
	detail, err := s.GetStudentExamDetail(studentID, examID)
	if err != nil {
		return nil, err
	}
	if !detail.CanStart {
		return nil, &AttemptDeniedError{Reason: detail.DenyReason}
	}

	ttl := time.Duration(detail.DurationMinutes)*time.Minute + attemptTTLGrace
	if err := s.Repo.MarkAttemptStarted(context.Background(), examID, studentID, ttl); err != nil {
		logger.Log.Warn("failed to mark attempt start", zap.String("examId", examID), zap.Error(err))
	}
	if detail.RemainingSeconds == nil {
		full := detail.DurationMinutes * 60
		detail.RemainingSeconds = &full
	}
	return detail, nil
}

// AttemptDeniedError carries the machine-readable denial reason.
type AttemptDeniedError struct {
	Reason string
}

func (e *AttemptDeniedError) Error() string {
	return "attempt denied: " + e.Reason
}

func (e *AttemptDeniedError) Is(target error) bool {
	return target == util.ErrAttemptDenied
}

type ExamSubmissionReq struct {
	Answers          map[string]string `json:"answers"`
	TimeSpentSeconds int               `json:"timeSpentSeconds"`
	IsTimeout        bool              `json:"isTimeout"`
	Warnings         []string          `json:"warnings"`
	RecordingURL     string            `json:"recordingUrl"`
	ScreenCaptureURL string            `json:"screenCaptureUrl"`
}

// SubmitExam persists exactly one submission row for this attempt. The due
// date is deliberately not re-checked here: the gate runs at start time, and
// a tab kept open past the deadline may still submit (matching the observed
// product behavior). A failed insert leaves no row, so a retry does not
// double-count the attempt.
func (s *ExamService) SubmitExam(studentID uint, examID string, req ExamSubmissionReq) (*model.ExamSubmission, error) {
	exam, err := s.GetExam(examID)
	if err != nil {
		return nil, err
	}
	if !exam.IsPublished {
		return nil, util.ErrExamNotPublished
	}

	answers, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, err
	}

	submission := &model.ExamSubmission{
		ExamID:           examID,
		StudentID:        studentID,
		Answers:          datatypes.JSON(answers),
		SubmittedAt:      time.Now(),
		TimeSpentSeconds: req.TimeSpentSeconds,
		IsTimeout:        req.IsTimeout,
		RecordingURL:     req.RecordingURL,
		ScreenCaptureURL: req.ScreenCaptureURL,
	}

	if len(req.Warnings) > 0 {
		warnings, err := json.Marshal(req.Warnings)
		if err != nil {
			return nil, err
		}
		submission.Warnings = datatypes.JSON(warnings)
	}

	if err := s.Repo.CreateSubmission(submission); err != nil {
		return nil, err
	}

	s.Repo.ClearAttempt(context.Background(), examID, studentID)

	return submission, nil
}

type ExamResult struct {
	SubmissionID  string               `json:"submissionId"`
	ExamID        string               `json:"examId"`
	ExamTitle     string               `json:"examTitle"`
	SubmittedAt   time.Time            `json:"submittedAt"`
	TimeSpent     int                  `json:"timeSpentSeconds"`
	Score         float64              `json:"score"`
	TotalPossible float64              `json:"totalPossible"`
	Percentage    float64              `json:"percentage"`
	Passed        bool                 `json:"passed"`
	Sections      []StudentExamSection `json:"sections"`
}

// GetResults grades lazily on first view and builds the per-question review.
func (s *ExamService) GetResults(studentID uint, submissionID string) (*ExamResult, error) {
	submission, err := s.Repo.FindSubmissionByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	if submission.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}

	exam, err := s.GetExam(submission.ExamID)
	if err != nil {
		return nil, err
	}

	result, applied, err := EnsureScored(exam, submission, s.Repo)
	if err != nil {
		return nil, err
	}
	if !applied && submission.Score == nil {
		// Lost a grading race; the stored score is authoritative.
		submission, err = s.Repo.FindSubmissionByID(submissionID)
		if err != nil {
			return nil, err
		}
		if submission.Score != nil {
			result = ScoreResult{Score: *submission.Score, TotalPossible: submission.TotalPossible}
		}
	}

	return s.buildResult(exam, submission, result), nil
}

// GetLatestResult resolves the student's most recent submission for an exam.
func (s *ExamService) GetLatestResult(studentID uint, examID string) (*ExamResult, error) {
	submission, err := s.Repo.FindLatestSubmission(examID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return s.GetResults(studentID, submission.ID)
}

func (s *ExamService) buildResult(exam *model.Exam, submission *model.ExamSubmission, result ScoreResult) *ExamResult {
	answers := DecodeAnswers(submission.Answers)

	out := &ExamResult{
		SubmissionID:  submission.ID,
		ExamID:        exam.ID,
		ExamTitle:     exam.Title,
		SubmittedAt:   submission.SubmittedAt,
		TimeSpent:     submission.TimeSpentSeconds,
		Score:         result.Score,
		TotalPossible: result.TotalPossible,
	}

	if result.TotalPossible > 0 {
		out.Percentage = result.Score / result.TotalPossible * 100
		out.Passed = out.Percentage >= exam.PassingScore
	}

	for _, sec := range exam.Sections {
		studentSec := StudentExamSection{
			ID:          sec.ID,
			Title:       sec.Title,
			Description: sec.Description,
			Order:       sec.Order,
		}
		for _, q := range sec.Questions {
			sq := StudentExamQuestion{
				ID:           q.ID,
				QuestionType: q.QuestionType,
				Text:         q.Text,
				Options:      json.RawMessage(q.Options),
				Points:       q.Points,
				Order:        q.Order,
			}

			if submitted, ok := answers[q.ID]; ok {
				ans := submitted
				sq.SubmittedAnswer = &ans
			}
			if q.QuestionType != model.QuestionEssay {
				correct := q.CorrectAnswer
				sq.CorrectAnswer = &correct
				isCorrect := questionCorrect(q, answers)
				sq.IsCorrect = &isCorrect
			}
			if q.Explanation != "" {
				expl := q.Explanation
				sq.Explanation = &expl
			}

			studentSec.Questions = append(studentSec.Questions, sq)
		}
		out.Sections = append(out.Sections, studentSec)
	}

	return out
}

func questionCorrect(q model.ExamQuestion, answers map[string]string) bool {
	submitted, ok := answers[q.ID]
	if !ok {
		return false
	}
	switch q.QuestionType {
	case model.QuestionMultipleChoice:
		return submitted == q.CorrectAnswer
	case model.QuestionFillBlank:
		return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(q.CorrectAnswer))
	}
	return false
}

// OverrideScore lets a teacher set the final score after grading essays by
// hand. This path intentionally bypasses the write-once guard.
func (s *ExamService) OverrideScore(submissionID string, score float64) error {
	if _, err := s.Repo.FindSubmissionByID(submissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSubmissionNotFound
		}
		return err
	}
	return s.Repo.OverrideScore(submissionID, score)
}

func (s *ExamService) ListSubmissions(examID string, page, limit int, studentName string) ([]repository.SubmissionListRow, int64, error) {
	return s.Repo.ListSubmissionsByExam(examID, page, limit, studentName)
}

func (s *ExamService) ListStudentSubmissions(studentID uint) ([]model.ExamSubmission, error) {
	return s.Repo.ListSubmissionsByStudent(studentID)
}
