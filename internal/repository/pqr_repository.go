package repository

import (
	"language_center_backend/internal/model"

	"gorm.io/gorm"
)

type PQRRepository struct {
	DB *gorm.DB
}

func NewPQRRepository(db *gorm.DB) *PQRRepository {
	return &PQRRepository{DB: db}
}

func (r *PQRRepository) Create(ticket *model.PQRTicket) error {
	return r.DB.Create(ticket).Error
}

func (r *PQRRepository) FindByID(id string) (*model.PQRTicket, error) {
	var ticket model.PQRTicket
	err := r.DB.
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("pqr_responses.created_at asc")
		}).
		First(&ticket, "id = ?", id).Error
	return &ticket, err
}

func (r *PQRRepository) Update(ticket *model.PQRTicket) error {
	return r.DB.Save(ticket).Error
}

func (r *PQRRepository) ListByStudent(studentID uint, page, limit int) ([]model.PQRTicket, int64, error) {
	query := r.DB.Model(&model.PQRTicket{}).Where("student_id = ?", studentID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []model.PQRTicket
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&tickets).Error
	return tickets, total, err
}

func (r *PQRRepository) ListAll(page, limit int, status, ticketType string) ([]model.PQRTicket, int64, error) {
	query := r.DB.Model(&model.PQRTicket{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if ticketType != "" {
		query = query.Where("type = ?", ticketType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []model.PQRTicket
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&tickets).Error
	return tickets, total, err
}

func (r *PQRRepository) CreateResponse(response *model.PQRResponse) error {
	return r.DB.Create(response).Error
}
