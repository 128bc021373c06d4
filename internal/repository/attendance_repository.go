package repository

import (
	"language_center_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

func (r *AttendanceRepository) CreateSession(session *model.AttendanceSession) error {
	return r.DB.Create(session).Error
}

func (r *AttendanceRepository) FindSessionByID(id uint) (*model.AttendanceSession, error) {
	var s model.AttendanceSession
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *AttendanceRepository) ListSessionsByCourse(courseID uint) ([]model.AttendanceSession, error) {
	var sessions []model.AttendanceSession
	err := r.DB.Where("course_id = ?", courseID).Order("date desc").Find(&sessions).Error
	return sessions, err
}

// UpsertRecord writes one student's status for a session; taking attendance
// twice for the same student updates the row in place.
func (r *AttendanceRepository) UpsertRecord(record *model.AttendanceRecord) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at"}),
	}).Create(record).Error
}

func (r *AttendanceRepository) ListRecordsBySession(sessionID uint) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.DB.Where("session_id = ?", sessionID).Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) ListRecordsByStudentAndCourse(studentID, courseID uint) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.DB.Table("attendance_records ar").
		Select("ar.*").
		Joins("JOIN attendance_sessions s ON ar.session_id = s.id").
		Where("ar.student_id = ? AND s.course_id = ? AND ar.deleted_at IS NULL", studentID, courseID).
		Order("s.date asc").
		Scan(&records).Error
	return records, err
}

type AttendanceStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func (r *AttendanceRepository) SummarizeByCourse(courseID uint) ([]AttendanceStatusCount, error) {
	var rows []AttendanceStatusCount
	err := r.DB.Table("attendance_records ar").
		Select("ar.status, COUNT(*) as count").
		Joins("JOIN attendance_sessions s ON ar.session_id = s.id").
		Where("s.course_id = ? AND ar.deleted_at IS NULL", courseID).
		Group("ar.status").
		Scan(&rows).Error
	return rows, err
}
