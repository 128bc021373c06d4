package repository

import (
	"language_center_backend/internal/model"

	"gorm.io/gorm"
)

type UploadRepository struct {
	DB *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{DB: db}
}

func (r *UploadRepository) Create(file *model.UploadedFile) error {
	return r.DB.Create(file).Error
}

func (r *UploadRepository) FindByID(id uint) (*model.UploadedFile, error) {
	var f model.UploadedFile
	err := r.DB.First(&f, id).Error
	return &f, err
}

func (r *UploadRepository) Delete(id uint) error {
	return r.DB.Delete(&model.UploadedFile{}, id).Error
}

func (r *UploadRepository) ListByUploader(uploaderID uint, page, limit int) ([]model.UploadedFile, int64, error) {
	query := r.DB.Model(&model.UploadedFile{}).Where("uploader_id = ?", uploaderID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var files []model.UploadedFile
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&files).Error
	return files, total, err
}
