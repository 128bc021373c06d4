package controller

import (
	"errors"
	"language_center_backend/internal/service"
	"language_center_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradeController struct {
	GradeService *service.GradeService
}

func NewGradeController(gradeService *service.GradeService) *GradeController {
	return &GradeController{GradeService: gradeService}
}

// CreateItem godoc
// @Summary Create a graded item in a course
// @Tags grades
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param body body service.GradeItemReq true "Item"
// @Success 201 {object} util.Response{data=model.GradeItem}
// @Failure 400 {object} util.Response "Weight must be positive"
// @Router /api/courses/{id}/grade-items [post]
// @Security BearerAuth
func (c *GradeController) CreateItem(ctx *gin.Context) {
	var req service.GradeItemReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item, err := c.GradeService.CreateItem(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, item)
}

// UpdateItem godoc
// @Summary Update a graded item
// @Tags grades
// @Accept json
// @Produce json
// @Param itemId path int true "Item ID"
// @Param body body service.GradeItemReq true "Fields to change"
// @Success 200 {object} util.Response{data=model.GradeItem}
// @Failure 404 {object} util.Response
// @Router /api/grade-items/{itemId} [put]
// @Security BearerAuth
func (c *GradeController) UpdateItem(ctx *gin.Context) {
	var req service.GradeItemReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item, err := c.GradeService.UpdateItem(util.MustParseUint(ctx.Param("itemId")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrGradeItemNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidGradeWeight):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, item)
}

// DeleteItem godoc
// @Summary Remove a graded item
// @Tags grades
// @Produce json
// @Param itemId path int true "Item ID"
// @Success 200 {object} util.Response
// @Router /api/grade-items/{itemId} [delete]
// @Security BearerAuth
func (c *GradeController) DeleteItem(ctx *gin.Context) {
	if err := c.GradeService.DeleteItem(util.MustParseUint(ctx.Param("itemId"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListItems godoc
// @Summary Graded items of a course
// @Tags grades
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.GradeItem}
// @Router /api/courses/{id}/grade-items [get]
// @Security BearerAuth
func (c *GradeController) ListItems(ctx *gin.Context) {
	items, err := c.GradeService.ListItems(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// RecordGrade godoc
// @Summary Record a student's score on an item
// @Description Re-grading the same student updates the entry in place
// @Tags grades
// @Accept json
// @Produce json
// @Param itemId path int true "Item ID"
// @Param body body service.GradeEntryReq true "Score"
// @Success 200 {object} util.Response{data=model.GradeEntry}
// @Failure 400 {object} util.Response "Score exceeds the item maximum"
// @Failure 404 {object} util.Response
// @Router /api/grade-items/{itemId}/entries [post]
// @Security BearerAuth
func (c *GradeController) RecordGrade(ctx *gin.Context) {
	var req service.GradeEntryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	entry, err := c.GradeService.RecordGrade(util.MustParseUint(ctx.Param("itemId")), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrGradeItemNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrScoreExceedsMax):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, entry)
}

// ListEntries godoc
// @Summary Scores recorded for an item
// @Tags grades
// @Produce json
// @Param itemId path int true "Item ID"
// @Success 200 {object} util.Response{data=[]model.GradeEntry}
// @Router /api/grade-items/{itemId}/entries [get]
// @Security BearerAuth
func (c *GradeController) ListEntries(ctx *gin.Context) {
	entries, err := c.GradeService.ListEntries(util.MustParseUint(ctx.Param("itemId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// MyReport godoc
// @Summary Current student's grades in a course with the weighted average
// @Tags grades
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.StudentGradeReport}
// @Router /api/courses/{id}/grades/me [get]
// @Security BearerAuth
func (c *GradeController) MyReport(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	report, err := c.GradeService.StudentReport(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// StudentReport godoc
// @Summary A student's grades in a course (staff view)
// @Tags grades
// @Produce json
// @Param id path int true "Course ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} util.Response{data=service.StudentGradeReport}
// @Router /api/courses/{id}/grades/{studentId} [get]
// @Security BearerAuth
func (c *GradeController) StudentReport(ctx *gin.Context) {
	report, err := c.GradeService.StudentReport(util.MustParseUint(ctx.Param("studentId")), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
