package service

import (
	"errors"
	"language_center_backend/internal/model"
	"language_center_backend/internal/repository"
	"language_center_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	Repo *repository.CourseRepository
}

func NewCourseService(repo *repository.CourseRepository) *CourseService {
	return &CourseService{Repo: repo}
}

type CourseReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Language    *string `json:"language"`
	Level       *string `json:"level"`
	TeacherID   *uint   `json:"teacherId"`
	Capacity    *int    `json:"capacity"`
	Schedule    *string `json:"schedule"`
	IsPublished *bool   `json:"isPublished"`
}

func (s *CourseService) CreateCourse(req CourseReq) (*model.Course, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.Language == nil || *req.Language == "" {
		return nil, errors.New("language is required")
	}

	course := &model.Course{
		Title:    *req.Title,
		Language: *req.Language,
		Level:    model.CourseLevelBeginner,
		Capacity: 25,
	}
	applyCourseReq(course, req)

	if err := s.Repo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(courseID uint, req CourseReq) (*model.Course, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Language != nil {
		course.Language = *req.Language
	}
	applyCourseReq(course, req)

	if err := s.Repo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func applyCourseReq(course *model.Course, req CourseReq) {
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.TeacherID != nil {
		course.TeacherID = *req.TeacherID
	}
	if req.Capacity != nil {
		course.Capacity = *req.Capacity
	}
	if req.Schedule != nil {
		course.Schedule = *req.Schedule
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}
}

func (s *CourseService) GetCourse(courseID uint) (*model.Course, error) {
	course, err := s.Repo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(courseID uint) error {
	return s.Repo.Delete(courseID)
}

func (s *CourseService) ListCourses(page, limit int, language string, teacherID uint, publishedOnly bool) ([]model.Course, int64, error) {
	return s.Repo.List(page, limit, language, teacherID, publishedOnly)
}

type LessonReq struct {
	Title           *string `json:"title"`
	DisplayName     *string `json:"displayName"`
	Description     *string `json:"description"`
	Order           *int    `json:"order"`
	MaterialURL     *string `json:"materialUrl"`
	DurationMinutes *int    `json:"durationMinutes"`
}

func (s *CourseService) CreateLesson(courseID uint, req LessonReq) (*model.Lesson, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}

	lesson := &model.Lesson{
		CourseID:        courseID,
		Title:           *req.Title,
		DurationMinutes: 60,
	}
	applyLessonReq(lesson, req)
	// Display name defaults to the title; stored on the row so every client
	// renders the same label.
	if lesson.DisplayName == "" {
		lesson.DisplayName = lesson.Title
	}

	if err := s.Repo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) UpdateLesson(lessonID uint, req LessonReq) (*model.Lesson, error) {
	lesson, err := s.Repo.FindLessonByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	applyLessonReq(lesson, req)

	if err := s.Repo.UpdateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func applyLessonReq(lesson *model.Lesson, req LessonReq) {
	if req.DisplayName != nil {
		lesson.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.Order != nil {
		lesson.Order = *req.Order
	}
	if req.MaterialURL != nil {
		lesson.MaterialURL = *req.MaterialURL
	}
	if req.DurationMinutes != nil {
		lesson.DurationMinutes = *req.DurationMinutes
	}
}

func (s *CourseService) DeleteLesson(lessonID uint) error {
	return s.Repo.DeleteLesson(lessonID)
}

func (s *CourseService) ListLessons(courseID uint) ([]model.Lesson, error) {
	return s.Repo.ListLessons(courseID)
}
