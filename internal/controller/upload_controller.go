package controller

import (
	"errors"
	"language_center_backend/internal/service"
	"language_center_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps a single upload at 50 MB.
const maxUploadBytes = 50 << 20

type UploadController struct {
	UploadService *service.UploadService
}

func NewUploadController(uploadService *service.UploadService) *UploadController {
	return &UploadController{UploadService: uploadService}
}

// Upload godoc
// @Summary Upload a file
// @Description Accepts course material and media; images get a thumbnail
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Success 201 {object} util.Response{data=model.UploadedFile}
// @Failure 400 {object} util.Response "Type or size not allowed"
// @Router /api/uploads [post]
// @Security BearerAuth
func (c *UploadController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if header.Size > maxUploadBytes {
		util.BadRequest(ctx, "file too large")
		return
	}

	src, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	claims := util.GetUserFromContext(ctx)
	record, err := c.UploadService.Save(ctx.Request.Context(), claims.UserID, header.Filename, src, header.Size)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, record)
}

// Get godoc
// @Summary Upload metadata
// @Tags uploads
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {object} util.Response{data=model.UploadedFile}
// @Failure 404 {object} util.Response
// @Router /api/uploads/{id} [get]
// @Security BearerAuth
func (c *UploadController) Get(ctx *gin.Context) {
	file, err := c.UploadService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrFileNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, file)
}

// Delete godoc
// @Summary Delete an upload
// @Description Only the uploader or a coordinator may delete
// @Tags uploads
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/uploads/{id} [delete]
// @Security BearerAuth
func (c *UploadController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	file, err := c.UploadService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrFileNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	claims := util.GetUserFromContext(ctx)
	if file.UploaderID != claims.UserID && claims.Role != "coordinator" {
		util.Forbidden(ctx)
		return
	}

	if err := c.UploadService.Delete(ctx.Request.Context(), id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListMine godoc
// @Summary Current user's uploads
// @Tags uploads
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/uploads [get]
// @Security BearerAuth
func (c *UploadController) ListMine(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	claims := util.GetUserFromContext(ctx)
	files, total, err := c.UploadService.ListByUploader(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: files, Total: total, Page: page, Limit: limit})
}
