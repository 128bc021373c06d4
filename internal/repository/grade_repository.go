package repository

import (
	"language_center_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

func (r *GradeRepository) CreateItem(item *model.GradeItem) error {
	return r.DB.Create(item).Error
}

func (r *GradeRepository) FindItemByID(id uint) (*model.GradeItem, error) {
	var item model.GradeItem
	err := r.DB.First(&item, id).Error
	return &item, err
}

func (r *GradeRepository) UpdateItem(item *model.GradeItem) error {
	return r.DB.Save(item).Error
}

func (r *GradeRepository) DeleteItem(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&model.GradeEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.GradeItem{}, id).Error
	})
}

func (r *GradeRepository) ListItemsByCourse(courseID uint) ([]model.GradeItem, error) {
	var items []model.GradeItem
	err := r.DB.Where("course_id = ?", courseID).Order("created_at asc").Find(&items).Error
	return items, err
}

// UpsertEntry records or corrects one student's score for an item.
func (r *GradeRepository) UpsertEntry(entry *model.GradeEntry) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "feedback", "grader_id", "updated_at"}),
	}).Create(entry).Error
}

func (r *GradeRepository) ListEntriesByItem(itemID uint) ([]model.GradeEntry, error) {
	var entries []model.GradeEntry
	err := r.DB.Where("item_id = ?", itemID).Find(&entries).Error
	return entries, err
}

func (r *GradeRepository) ListEntriesByStudentAndCourse(studentID, courseID uint) ([]model.GradeEntry, error) {
	var entries []model.GradeEntry
	err := r.DB.Table("grade_entries ge").
		Select("ge.*").
		Joins("JOIN grade_items gi ON ge.item_id = gi.id").
		Where("ge.student_id = ? AND gi.course_id = ? AND ge.deleted_at IS NULL", studentID, courseID).
		Scan(&entries).Error
	return entries, err
}
