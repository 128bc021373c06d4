package model

import "time"

// PQR: peticiones, quejas y reclamos.
const (
	PQRTypePetition  = "petition"
	PQRTypeComplaint = "complaint"
	PQRTypeClaim     = "claim"
)

const (
	PQRStatusOpen     = "open"
	PQRStatusInReview = "in_review"
	PQRStatusResolved = "resolved"
	PQRStatusClosed   = "closed"
)

// swagger:model PQRTicket
type PQRTicket struct {
	UUIDBase
	Type        string     `gorm:"type:enum('petition','complaint','claim');not null" json:"type"`
	Subject     string     `gorm:"size:255;not null" json:"subject"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:enum('open','in_review','resolved','closed');default:'open'" json:"status"`
	StudentID   uint       `gorm:"index;type:bigint unsigned" json:"studentId"`
	AssigneeID  *uint      `gorm:"index;type:bigint unsigned" json:"assigneeId,omitempty"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`

	Responses []PQRResponse `gorm:"foreignKey:TicketID;references:ID" json:"responses,omitempty"`
}

func (PQRTicket) TableName() string {
	return "pqr_tickets"
}

// swagger:model PQRResponse
type PQRResponse struct {
	UUIDBase
	TicketID string `gorm:"index;type:varchar(36)" json:"ticketId"`
	AuthorID uint   `gorm:"index;type:bigint unsigned" json:"authorId"`
	Message  string `gorm:"type:text;not null" json:"message"`
}

func (PQRResponse) TableName() string {
	return "pqr_responses"
}
