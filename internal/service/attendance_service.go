package service

import (
	"errors"
	"language_center_backend/internal/model"
	"language_center_backend/internal/repository"
	"language_center_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type AttendanceService struct {
	Repo *repository.AttendanceRepository
}

func NewAttendanceService(repo *repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{Repo: repo}
}

func ValidAttendanceStatus(status string) bool {
	switch status {
	case model.AttendancePresent, model.AttendanceAbsent, model.AttendanceLate, model.AttendanceExcused:
		return true
	}
	return false
}

type AttendanceSessionReq struct {
	CourseID uint       `json:"courseId" binding:"required"`
	LessonID uint       `json:"lessonId"`
	Date     *time.Time `json:"date"`
}

func (s *AttendanceService) CreateSession(teacherID uint, req AttendanceSessionReq) (*model.AttendanceSession, error) {
	session := &model.AttendanceSession{
		CourseID:  req.CourseID,
		LessonID:  req.LessonID,
		TeacherID: teacherID,
		Date:      time.Now(),
	}
	if req.Date != nil {
		session.Date = *req.Date
	}

	if err := s.Repo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

type AttendanceMarkReq struct {
	StudentID uint   `json:"studentId" binding:"required"`
	Status    string `json:"status" binding:"required"`
	Note      string `json:"note"`
}

// MarkAttendance records one student's status; re-marking updates in place.
func (s *AttendanceService) MarkAttendance(sessionID uint, req AttendanceMarkReq) (*model.AttendanceRecord, error) {
	if !ValidAttendanceStatus(req.Status) {
		return nil, util.ErrInvalidAttendance
	}

	if _, err := s.Repo.FindSessionByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	record := &model.AttendanceRecord{
		SessionID: sessionID,
		StudentID: req.StudentID,
		Status:    req.Status,
		Note:      req.Note,
	}

	if err := s.Repo.UpsertRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *AttendanceService) ListSessions(courseID uint) ([]model.AttendanceSession, error) {
	return s.Repo.ListSessionsByCourse(courseID)
}

func (s *AttendanceService) ListSessionRecords(sessionID uint) ([]model.AttendanceRecord, error) {
	return s.Repo.ListRecordsBySession(sessionID)
}

func (s *AttendanceService) StudentHistory(studentID, courseID uint) ([]model.AttendanceRecord, error) {
	return s.Repo.ListRecordsByStudentAndCourse(studentID, courseID)
}

func (s *AttendanceService) CourseSummary(courseID uint) (map[string]int64, error) {
	rows, err := s.Repo.SummarizeByCourse(courseID)
	if err != nil {
		return nil, err
	}

	summary := map[string]int64{
		model.AttendancePresent: 0,
		model.AttendanceAbsent:  0,
		model.AttendanceLate:    0,
		model.AttendanceExcused: 0,
	}
	for _, row := range rows {
		summary[row.Status] = row.Count
	}
	return summary, nil
}
