package repository

import (
	"language_center_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByCourseAndStudent(courseID, studentID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("course_id = ? AND student_id = ?", courseID, studentID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) Update(enrollment *model.Enrollment) error {
	return r.DB.Save(enrollment).Error
}

func (r *EnrollmentRepository) CountActiveByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, model.EnrollmentActive).
		Count(&count).Error
	return count, err
}

type EnrollmentWithStudent struct {
	model.Enrollment
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
}

func (r *EnrollmentRepository) ListByCourse(courseID uint) ([]EnrollmentWithStudent, error) {
	var rows []EnrollmentWithStudent
	err := r.DB.Table("enrollments e").
		Select("e.*, u.name as student_name, u.email as student_email").
		Joins("JOIN users u ON e.student_id = u.id").
		Where("e.course_id = ? AND e.deleted_at IS NULL", courseID).
		Order("u.name asc").
		Scan(&rows).Error
	return rows, err
}

func (r *EnrollmentRepository) ListByStudent(studentID uint) ([]model.Enrollment, error) {
	var rows []model.Enrollment
	err := r.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&rows).Error
	return rows, err
}
