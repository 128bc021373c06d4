package service

import (
	"errors"
	"language_center_backend/internal/model"
	"language_center_backend/internal/repository"
	"language_center_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type PQRService struct {
	Repo *repository.PQRRepository
}

func NewPQRService(repo *repository.PQRRepository) *PQRService {
	return &PQRService{Repo: repo}
}

// pqrTransitions is the allowed status graph; closed is terminal.
var pqrTransitions = map[string][]string{
	model.PQRStatusOpen:     {model.PQRStatusInReview, model.PQRStatusResolved, model.PQRStatusClosed},
	model.PQRStatusInReview: {model.PQRStatusResolved, model.PQRStatusClosed},
	model.PQRStatusResolved: {model.PQRStatusClosed, model.PQRStatusInReview},
	model.PQRStatusClosed:   {},
}

// CanTransitionPQR reports whether a ticket may move between two statuses.
func CanTransitionPQR(from, to string) bool {
	for _, allowed := range pqrTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type PQRTicketReq struct {
	Type        string `json:"type" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description"`
}

func (s *PQRService) CreateTicket(studentID uint, req PQRTicketReq) (*model.PQRTicket, error) {
	switch req.Type {
	case model.PQRTypePetition, model.PQRTypeComplaint, model.PQRTypeClaim:
	default:
		return nil, errors.New("invalid ticket type")
	}

	ticket := &model.PQRTicket{
		Type:        req.Type,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      model.PQRStatusOpen,
		StudentID:   studentID,
	}

	if err := s.Repo.Create(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *PQRService) GetTicket(ticketID string) (*model.PQRTicket, error) {
	ticket, err := s.Repo.FindByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (s *PQRService) ListByStudent(studentID uint, page, limit int) ([]model.PQRTicket, int64, error) {
	return s.Repo.ListByStudent(studentID, page, limit)
}

func (s *PQRService) ListAll(page, limit int, status, ticketType string) ([]model.PQRTicket, int64, error) {
	return s.Repo.ListAll(page, limit, status, ticketType)
}

func (s *PQRService) Assign(ticketID string, assigneeID uint) (*model.PQRTicket, error) {
	ticket, err := s.GetTicket(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == model.PQRStatusClosed {
		return nil, util.ErrTicketClosed
	}

	ticket.AssigneeID = &assigneeID
	if ticket.Status == model.PQRStatusOpen {
		ticket.Status = model.PQRStatusInReview
	}

	if err := s.Repo.Update(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *PQRService) Transition(ticketID, newStatus string) (*model.PQRTicket, error) {
	ticket, err := s.GetTicket(ticketID)
	if err != nil {
		return nil, err
	}

	if !CanTransitionPQR(ticket.Status, newStatus) {
		return nil, util.ErrInvalidTransition
	}

	ticket.Status = newStatus
	if newStatus == model.PQRStatusResolved {
		now := time.Now()
		ticket.ResolvedAt = &now
	}

	if err := s.Repo.Update(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *PQRService) Respond(ticketID string, authorID uint, message string) (*model.PQRResponse, error) {
	ticket, err := s.GetTicket(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == model.PQRStatusClosed {
		return nil, util.ErrTicketClosed
	}

	response := &model.PQRResponse{
		TicketID: ticketID,
		AuthorID: authorID,
		Message:  message,
	}

	if err := s.Repo.CreateResponse(response); err != nil {
		return nil, err
	}
	return response, nil
}
