package controller

import (
	"errors"
	"language_center_backend/internal/service"
	"language_center_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags enrollments
// @Produce json
// @Param id path int true "Course ID"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "Already enrolled or course full"
// @Router /api/courses/{id}/enroll [post]
// @Security BearerAuth
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.Enroll(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, http.StatusConflict, "already enrolled")
		case errors.Is(err, util.ErrCourseFull):
			util.Error(ctx, http.StatusConflict, "course is at capacity")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, enrollment)
}

// MyEnrollments godoc
// @Summary Current student's enrollments
// @Tags enrollments
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/enrollments [get]
// @Security BearerAuth
func (c *EnrollmentController) MyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollments, err := c.EnrollmentService.ListByStudent(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// CourseRoster godoc
// @Summary Enrolled students of a course
// @Tags enrollments
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=[]repository.EnrollmentWithStudent}
// @Router /api/courses/{id}/enrollments [get]
// @Security BearerAuth
func (c *EnrollmentController) CourseRoster(ctx *gin.Context) {
	rows, err := c.EnrollmentService.ListByCourse(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

type EnrollmentStatusRequest struct {
	StudentID uint   `json:"studentId" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=active completed withdrawn"`
}

// SetStatus godoc
// @Summary Change an enrollment's status
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param body body EnrollmentStatusRequest true "New status"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/enrollments/status [put]
// @Security BearerAuth
func (c *EnrollmentController) SetStatus(ctx *gin.Context) {
	var req EnrollmentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.SetStatus(util.MustParseUint(ctx.Param("id")), req.StudentID, req.Status)
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, enrollment)
}

// Withdraw godoc
// @Summary Withdraw from a course
// @Tags enrollments
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/enroll [delete]
// @Security BearerAuth
func (c *EnrollmentController) Withdraw(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.SetStatus(util.MustParseUint(ctx.Param("id")), claims.UserID, "withdrawn")
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, enrollment)
}
