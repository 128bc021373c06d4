package controller

import (
	"errors"
	"language_center_backend/internal/service"
	"language_center_backend/internal/util"
	"language_center_backend/pkg/monitoring"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// CreateExam godoc
// @Summary Create an exam
// @Description Creates an exam with its sections and questions in one call
// @Tags exams
// @Accept json
// @Produce json
// @Param body body service.ExamReq true "Exam structure"
// @Success 201 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response
// @Router /api/exams [post]
// @Security BearerAuth
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req service.ExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	exam, err := c.ExamService.CreateExam(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, exam)
}

// UpdateExam godoc
// @Summary Update an exam
// @Description Updates fields and reconciles the section/question structure
// @Tags exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param body body service.ExamReq true "Fields to change"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 404 {object} util.Response
// @Router /api/exams/{id} [put]
// @Security BearerAuth
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	var req service.ExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.UpdateExam(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, exam)
}

// DeleteExam godoc
// @Summary Delete an exam
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} util.Response
// @Router /api/exams/{id} [delete]
// @Security BearerAuth
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	if err := c.ExamService.DeleteExam(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetExam godoc
// @Summary Exam detail with answers (staff view)
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 404 {object} util.Response
// @Router /api/exams/{id} [get]
// @Security BearerAuth
func (c *ExamController) GetExam(ctx *gin.Context) {
	exam, err := c.ExamService.GetExam(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, exam)
}

// ListExams godoc
// @Summary List exams
// @Tags exams
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param courseId query int false "Filter by course"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/exams [get]
// @Security BearerAuth
func (c *ExamController) ListExams(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	var courseID uint
	if v := ctx.Query("courseId"); v != "" {
		courseID = util.MustParseUint(v)
	}

	claims := util.GetUserFromContext(ctx)
	publishedOnly := claims.Role == "student"

	rows, total, err := c.ExamService.ListExams(page, limit, courseID, publishedOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: rows, Total: total, Page: page, Limit: limit})
}

// GetStudentExam godoc
// @Summary Exam detail for a student
// @Description Structure without answers, plus the evaluated attempt gate
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} util.Response{data=service.StudentExamDetail}
// @Failure 404 {object} util.Response
// @Router /api/student/exams/{id} [get]
// @Security BearerAuth
func (c *ExamController) GetStudentExam(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	detail, err := c.ExamService.GetStudentExamDetail(claims.UserID, ctx.Param("id"))
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// StartAttempt godoc
// @Summary Start an exam attempt
// @Description Re-evaluates the attempt gate; denial returns 403 with a reason code
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} util.Response{data=service.StudentExamDetail}
// @Failure 403 {object} util.Response "reason: overdue or attempts_exhausted"
// @Failure 404 {object} util.Response
// @Router /api/student/exams/{id}/start [post]
// @Security BearerAuth
func (c *ExamController) StartAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	detail, err := c.ExamService.StartAttempt(claims.UserID, ctx.Param("id"))
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// SubmitExam godoc
// @Summary Submit an exam attempt
// @Tags exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param body body service.ExamSubmissionReq true "Answers"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/student/exams/{id}/submit [post]
// @Security BearerAuth
func (c *ExamController) SubmitExam(ctx *gin.Context) {
	var req service.ExamSubmissionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	submission, err := c.ExamService.SubmitExam(claims.UserID, ctx.Param("id"), req)
	if err != nil {
		monitoring.ExamSubmissionCounter.WithLabelValues("error").Inc()
		c.writeExamError(ctx, err)
		return
	}

	outcome := "ok"
	if submission.IsTimeout {
		outcome = "timeout"
	}
	monitoring.ExamSubmissionCounter.WithLabelValues(outcome).Inc()

	util.Created(ctx, gin.H{"submissionId": submission.ID})
}

// GetResults godoc
// @Summary Results of a submission
// @Description Grades on first view; includes the per-question review
// @Tags exams
// @Produce json
// @Param submissionId path string true "Submission ID"
// @Success 200 {object} util.Response{data=service.ExamResult}
// @Failure 404 {object} util.Response
// @Router /api/student/submissions/{submissionId}/results [get]
// @Security BearerAuth
func (c *ExamController) GetResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.ExamService.GetResults(claims.UserID, ctx.Param("submissionId"))
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetLatestResult godoc
// @Summary Latest result for an exam
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} util.Response{data=service.ExamResult}
// @Failure 404 {object} util.Response
// @Router /api/student/exams/{id}/results [get]
// @Security BearerAuth
func (c *ExamController) GetLatestResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.ExamService.GetLatestResult(claims.UserID, ctx.Param("id"))
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ListMySubmissions godoc
// @Summary Current student's submissions
// @Tags exams
// @Produce json
// @Success 200 {object} util.Response{data=[]model.ExamSubmission}
// @Router /api/student/submissions [get]
// @Security BearerAuth
func (c *ExamController) ListMySubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	subs, err := c.ExamService.ListStudentSubmissions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// ListSubmissions godoc
// @Summary Submissions for an exam (staff view)
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param studentName query string false "Filter by student name"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/exams/{id}/submissions [get]
// @Security BearerAuth
func (c *ExamController) ListSubmissions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	rows, total, err := c.ExamService.ListSubmissions(ctx.Param("id"), page, limit, ctx.Query("studentName"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: rows, Total: total, Page: page, Limit: limit})
}

type OverrideScoreRequest struct {
	Score float64 `json:"score"`
}

// OverrideScore godoc
// @Summary Set a submission's final score by hand
// @Description Used after grading essay questions manually
// @Tags exams
// @Accept json
// @Produce json
// @Param submissionId path string true "Submission ID"
// @Param body body OverrideScoreRequest true "Final score"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/submissions/{submissionId}/score [put]
// @Security BearerAuth
func (c *ExamController) OverrideScore(ctx *gin.Context) {
	var req OverrideScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ExamService.OverrideScore(ctx.Param("submissionId"), req.Score); err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// writeExamError maps domain errors onto the response envelope. Attempt
// denials keep their machine-readable reason in the payload.
func (c *ExamController) writeExamError(ctx *gin.Context, err error) {
	var denied *service.AttemptDeniedError
	switch {
	case errors.As(err, &denied):
		ctx.JSON(http.StatusForbidden, util.Response{
			Code:    http.StatusForbidden,
			Message: "attempt denied",
			Data:    gin.H{"reason": denied.Reason},
		})
	case errors.Is(err, util.ErrExamNotFound), errors.Is(err, util.ErrExamNotPublished),
		errors.Is(err, util.ErrSubmissionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
