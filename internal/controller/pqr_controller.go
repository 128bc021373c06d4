package controller

import (
	"errors"
	"language_center_backend/internal/service"
	"language_center_backend/internal/util"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PQRController struct {
	PQRService *service.PQRService
}

func NewPQRController(pqrService *service.PQRService) *PQRController {
	return &PQRController{PQRService: pqrService}
}

// CreateTicket godoc
// @Summary File a petition, complaint, or claim
// @Tags pqr
// @Accept json
// @Produce json
// @Param body body service.PQRTicketReq true "Ticket"
// @Success 201 {object} util.Response{data=model.PQRTicket}
// @Failure 400 {object} util.Response
// @Router /api/pqr [post]
// @Security BearerAuth
func (c *PQRController) CreateTicket(ctx *gin.Context) {
	var req service.PQRTicketReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	ticket, err := c.PQRService.CreateTicket(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, ticket)
}

// MyTickets godoc
// @Summary Current student's tickets
// @Tags pqr
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/pqr/mine [get]
// @Security BearerAuth
func (c *PQRController) MyTickets(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	claims := util.GetUserFromContext(ctx)
	tickets, total, err := c.PQRService.ListByStudent(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: tickets, Total: total, Page: page, Limit: limit})
}

// ListTickets godoc
// @Summary All tickets with filters (staff view)
// @Tags pqr
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/pqr [get]
// @Security BearerAuth
func (c *PQRController) ListTickets(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	tickets, total, err := c.PQRService.ListAll(page, limit, ctx.Query("status"), ctx.Query("type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: tickets, Total: total, Page: page, Limit: limit})
}

// GetTicket godoc
// @Summary Ticket detail with its response thread
// @Tags pqr
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} util.Response{data=model.PQRTicket}
// @Failure 404 {object} util.Response
// @Router /api/pqr/{id} [get]
// @Security BearerAuth
func (c *PQRController) GetTicket(ctx *gin.Context) {
	ticket, err := c.PQRService.GetTicket(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrTicketNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// Students may only read their own tickets.
	claims := util.GetUserFromContext(ctx)
	if claims.Role == "student" && ticket.StudentID != claims.UserID {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, ticket)
}

type PQRAssignRequest struct {
	AssigneeID uint `json:"assigneeId" binding:"required"`
}

// Assign godoc
// @Summary Assign a ticket to a staff member
// @Description An open ticket moves to in_review on assignment
// @Tags pqr
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param body body PQRAssignRequest true "Assignee"
// @Success 200 {object} util.Response{data=model.PQRTicket}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "Ticket is closed"
// @Router /api/pqr/{id}/assign [put]
// @Security BearerAuth
func (c *PQRController) Assign(ctx *gin.Context) {
	var req PQRAssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ticket, err := c.PQRService.Assign(ctx.Param("id"), req.AssigneeID)
	if err != nil {
		c.writeTicketError(ctx, err)
		return
	}
	util.Success(ctx, ticket)
}

type PQRStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_review resolved closed"`
}

// Transition godoc
// @Summary Move a ticket to a new status
// @Description Closed is terminal; invalid moves return 409
// @Tags pqr
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param body body PQRStatusRequest true "New status"
// @Success 200 {object} util.Response{data=model.PQRTicket}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "Invalid transition"
// @Router /api/pqr/{id}/status [put]
// @Security BearerAuth
func (c *PQRController) Transition(ctx *gin.Context) {
	var req PQRStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ticket, err := c.PQRService.Transition(ctx.Param("id"), req.Status)
	if err != nil {
		c.writeTicketError(ctx, err)
		return
	}
	util.Success(ctx, ticket)
}

type PQRResponseRequest struct {
	Message string `json:"message" binding:"required"`
}

// Respond godoc
// @Summary Add a response to a ticket's thread
// @Tags pqr
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param body body PQRResponseRequest true "Message"
// @Success 201 {object} util.Response{data=model.PQRResponse}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "Ticket is closed"
// @Router /api/pqr/{id}/responses [post]
// @Security BearerAuth
func (c *PQRController) Respond(ctx *gin.Context) {
	var req PQRResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims.Role == "student" {
		ticket, err := c.PQRService.GetTicket(ctx.Param("id"))
		if err != nil {
			c.writeTicketError(ctx, err)
			return
		}
		if ticket.StudentID != claims.UserID {
			util.Forbidden(ctx)
			return
		}
	}

	response, err := c.PQRService.Respond(ctx.Param("id"), claims.UserID, req.Message)
	if err != nil {
		c.writeTicketError(ctx, err)
		return
	}
	util.Created(ctx, response)
}

func (c *PQRController) writeTicketError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTicketNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrTicketClosed), errors.Is(err, util.ErrInvalidTransition):
		util.Error(ctx, http.StatusConflict, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
