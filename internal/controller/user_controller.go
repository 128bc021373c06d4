package controller

import (
	"errors"
	"language_center_backend/internal/model"
	"language_center_backend/internal/service"
	"language_center_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService   *service.UserService
	UploadService *service.UploadService
}

func NewUserController(userService *service.UserService, uploadService *service.UploadService) *UserController {
	return &UserController{UserService: userService, UploadService: uploadService}
}

// GetProfile godoc
// @Summary Current user's profile
// @Tags users
// @Produce json
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/profile [get]
// @Security BearerAuth
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param body body service.UpdateProfileReq true "Fields to change"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/profile [put]
// @Security BearerAuth
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req service.UpdateProfileReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// SetAvatar godoc
// @Summary Upload a profile picture
// @Description Accepts an image, stores it, and points the profile at the thumbnail
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} util.Response{data=model.UploadedFile}
// @Failure 400 {object} util.Response
// @Router /api/profile/avatar [put]
// @Security BearerAuth
func (c *UserController) SetAvatar(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file field is required")
		return
	}

	src, err := header.Open()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	defer src.Close()

	claims := util.GetUserFromContext(ctx)
	record, err := c.UploadService.Save(ctx.Request.Context(), claims.UserID, header.Filename, src, header.Size)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !util.IsImage(record.ContentType) {
		c.UploadService.Delete(ctx.Request.Context(), record.ID)
		util.BadRequest(ctx, "avatar must be an image")
		return
	}

	avatarURL := record.URL
	if record.ThumbnailURL != "" {
		avatarURL = record.ThumbnailURL
	}
	if err := c.UserService.SetAvatar(claims.UserID, avatarURL); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// ListUsers godoc
// @Summary List users
// @Description Coordinator directory with role and name filters
// @Tags users
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param role query string false "Filter by role"
// @Param name query string false "Filter by name substring"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/users [get]
// @Security BearerAuth
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	users, total, err := c.UserService.List(page, limit, ctx.Query("role"), ctx.Query("name"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student teacher coordinator"`
}

// SetRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body SetRoleRequest true "New role"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/users/{id}/role [put]
// @Security BearerAuth
func (c *UserController) SetRole(ctx *gin.Context) {
	var req SetRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := util.MustParseUint(ctx.Param("id"))
	user, err := c.UserService.SetRole(userID, model.UserRole(req.Role))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

type SetDisabledRequest struct {
	Disabled bool `json:"disabled"`
}

// SetDisabled godoc
// @Summary Disable or re-enable an account
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body SetDisabledRequest true "Disabled flag"
// @Success 200 {object} util.Response
// @Router /api/users/{id}/disabled [put]
// @Security BearerAuth
func (c *UserController) SetDisabled(ctx *gin.Context) {
	var req SetDisabledRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := util.MustParseUint(ctx.Param("id"))
	if err := c.UserService.SetDisabled(userID, req.Disabled); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
