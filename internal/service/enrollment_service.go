package service

import (
	"errors"
	"language_center_backend/internal/model"
	"language_center_backend/internal/repository"
	"language_center_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	Repo       *repository.EnrollmentRepository
	CourseRepo *repository.CourseRepository
}

func NewEnrollmentService(repo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository) *EnrollmentService {
	return &EnrollmentService{Repo: repo, CourseRepo: courseRepo}
}

func (s *EnrollmentService) Enroll(courseID, studentID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if !course.IsPublished {
		return nil, util.ErrCourseNotFound
	}

	if _, err := s.Repo.FindByCourseAndStudent(courseID, studentID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if course.Capacity > 0 {
		active, err := s.Repo.CountActiveByCourse(courseID)
		if err != nil {
			return nil, err
		}
		if active >= int64(course.Capacity) {
			return nil, util.ErrCourseFull
		}
	}

	enrollment := &model.Enrollment{
		CourseID:   courseID,
		StudentID:  studentID,
		Status:     model.EnrollmentActive,
		EnrolledAt: time.Now(),
	}

	if err := s.Repo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) SetStatus(courseID, studentID uint, status string) (*model.Enrollment, error) {
	switch status {
	case model.EnrollmentActive, model.EnrollmentCompleted, model.EnrollmentWithdrawn:
	default:
		return nil, errors.New("invalid enrollment status")
	}

	enrollment, err := s.Repo.FindByCourseAndStudent(courseID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	enrollment.Status = status
	if err := s.Repo.Update(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) ListByCourse(courseID uint) ([]repository.EnrollmentWithStudent, error) {
	return s.Repo.ListByCourse(courseID)
}

func (s *EnrollmentService) ListByStudent(studentID uint) ([]model.Enrollment, error) {
	return s.Repo.ListByStudent(studentID)
}
