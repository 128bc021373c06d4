package service

import (
	"errors"
	"language_center_backend/internal/model"
	"language_center_backend/internal/repository"
	"language_center_backend/internal/util"

	"gorm.io/gorm"
)

type GradeService struct {
	Repo *repository.GradeRepository
}

func NewGradeService(repo *repository.GradeRepository) *GradeService {
	return &GradeService{Repo: repo}
}

type GradeItemReq struct {
	Name     *string  `json:"name"`
	Weight   *float64 `json:"weight"`
	MaxScore *float64 `json:"maxScore"`
}

func (s *GradeService) CreateItem(courseID uint, req GradeItemReq) (*model.GradeItem, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, errors.New("name is required")
	}

	item := &model.GradeItem{
		CourseID: courseID,
		Name:     *req.Name,
		Weight:   1,
		MaxScore: 100,
	}
	if req.Weight != nil {
		if *req.Weight <= 0 {
			return nil, util.ErrInvalidGradeWeight
		}
		item.Weight = *req.Weight
	}
	if req.MaxScore != nil {
		item.MaxScore = *req.MaxScore
	}

	if err := s.Repo.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *GradeService) UpdateItem(itemID uint, req GradeItemReq) (*model.GradeItem, error) {
	item, err := s.Repo.FindItemByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGradeItemNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Weight != nil {
		if *req.Weight <= 0 {
			return nil, util.ErrInvalidGradeWeight
		}
		item.Weight = *req.Weight
	}
	if req.MaxScore != nil {
		item.MaxScore = *req.MaxScore
	}

	if err := s.Repo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *GradeService) DeleteItem(itemID uint) error {
	return s.Repo.DeleteItem(itemID)
}

func (s *GradeService) ListItems(courseID uint) ([]model.GradeItem, error) {
	return s.Repo.ListItemsByCourse(courseID)
}

type GradeEntryReq struct {
	StudentID uint    `json:"studentId" binding:"required"`
	Score     float64 `json:"score"`
	Feedback  string  `json:"feedback"`
}

func (s *GradeService) RecordGrade(itemID, graderID uint, req GradeEntryReq) (*model.GradeEntry, error) {
	item, err := s.Repo.FindItemByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGradeItemNotFound
		}
		return nil, err
	}
	if req.Score < 0 || req.Score > item.MaxScore {
		return nil, util.ErrScoreExceedsMax
	}

	entry := &model.GradeEntry{
		ItemID:    itemID,
		StudentID: req.StudentID,
		Score:     req.Score,
		Feedback:  req.Feedback,
		GraderID:  graderID,
	}

	if err := s.Repo.UpsertEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *GradeService) ListEntries(itemID uint) ([]model.GradeEntry, error) {
	return s.Repo.ListEntriesByItem(itemID)
}

type StudentGradeReport struct {
	CourseID uint               `json:"courseId"`
	Entries  []model.GradeEntry `json:"entries"`
	Average  float64            `json:"average"` // weighted, as a percentage
}

// StudentReport computes the weighted course average over the items the
// student has been graded on.
func (s *GradeService) StudentReport(studentID, courseID uint) (*StudentGradeReport, error) {
	items, err := s.Repo.ListItemsByCourse(courseID)
	if err != nil {
		return nil, err
	}
	entries, err := s.Repo.ListEntriesByStudentAndCourse(studentID, courseID)
	if err != nil {
		return nil, err
	}

	report := &StudentGradeReport{
		CourseID: courseID,
		Entries:  entries,
		Average:  WeightedAverage(items, entries),
	}
	return report, nil
}

// WeightedAverage normalizes each graded item to a percentage and weights it.
// Items without an entry are excluded from the denominator, so a course in
// progress is averaged over what has actually been graded.
func WeightedAverage(items []model.GradeItem, entries []model.GradeEntry) float64 {
	itemByID := make(map[uint]model.GradeItem, len(items))
	for _, item := range items {
		itemByID[item.ID] = item
	}

	var weightedSum, weightTotal float64
	for _, entry := range entries {
		item, ok := itemByID[entry.ItemID]
		if !ok || item.MaxScore <= 0 || item.Weight <= 0 {
			continue
		}
		weightedSum += entry.Score / item.MaxScore * 100 * item.Weight
		weightTotal += item.Weight
	}

	if weightTotal == 0 {
		return 0
	}
	return weightedSum / weightTotal
}
