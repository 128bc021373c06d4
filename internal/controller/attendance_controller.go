package controller

import (
	"errors"
	"language_center_backend/internal/service"
	"language_center_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttendanceController struct {
	AttendanceService *service.AttendanceService
}

func NewAttendanceController(attendanceService *service.AttendanceService) *AttendanceController {
	return &AttendanceController{AttendanceService: attendanceService}
}

// CreateSession godoc
// @Summary Open an attendance session for a class meeting
// @Tags attendance
// @Accept json
// @Produce json
// @Param body body service.AttendanceSessionReq true "Session"
// @Success 201 {object} util.Response{data=model.AttendanceSession}
// @Router /api/attendance/sessions [post]
// @Security BearerAuth
func (c *AttendanceController) CreateSession(ctx *gin.Context) {
	var req service.AttendanceSessionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	session, err := c.AttendanceService.CreateSession(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// MarkAttendance godoc
// @Summary Mark one student's attendance
// @Description Re-marking the same student updates the record in place
// @Tags attendance
// @Accept json
// @Produce json
// @Param sessionId path int true "Session ID"
// @Param body body service.AttendanceMarkReq true "Status"
// @Success 200 {object} util.Response{data=model.AttendanceRecord}
// @Failure 400 {object} util.Response "Invalid status"
// @Failure 404 {object} util.Response
// @Router /api/attendance/sessions/{sessionId}/records [post]
// @Security BearerAuth
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	var req service.AttendanceMarkReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.AttendanceService.MarkAttendance(util.MustParseUint(ctx.Param("sessionId")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidAttendance):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, record)
}

// ListSessions godoc
// @Summary Attendance sessions of a course
// @Tags attendance
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.AttendanceSession}
// @Router /api/courses/{id}/attendance/sessions [get]
// @Security BearerAuth
func (c *AttendanceController) ListSessions(ctx *gin.Context) {
	sessions, err := c.AttendanceService.ListSessions(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// SessionRecords godoc
// @Summary Records of one session
// @Tags attendance
// @Produce json
// @Param sessionId path int true "Session ID"
// @Success 200 {object} util.Response{data=[]model.AttendanceRecord}
// @Router /api/attendance/sessions/{sessionId}/records [get]
// @Security BearerAuth
func (c *AttendanceController) SessionRecords(ctx *gin.Context) {
	records, err := c.AttendanceService.ListSessionRecords(util.MustParseUint(ctx.Param("sessionId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// MyHistory godoc
// @Summary Current student's attendance in a course
// @Tags attendance
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.AttendanceRecord}
// @Router /api/courses/{id}/attendance/me [get]
// @Security BearerAuth
func (c *AttendanceController) MyHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	records, err := c.AttendanceService.StudentHistory(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// CourseSummary godoc
// @Summary Attendance counts per status for a course
// @Tags attendance
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/attendance/summary [get]
// @Security BearerAuth
func (c *AttendanceController) CourseSummary(ctx *gin.Context) {
	summary, err := c.AttendanceService.CourseSummary(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
