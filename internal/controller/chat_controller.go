package controller

import (
	"errors"
	"language_center_backend/internal/service"
	"language_center_backend/internal/util"
	"language_center_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatController struct {
	ChatService *service.ChatService
	UserService *service.UserService
}

func NewChatController(chatService *service.ChatService, userService *service.UserService) *ChatController {
	return &ChatController{ChatService: chatService, UserService: userService}
}

type CreateConversationRequest struct {
	Title string `json:"title"`
}

// CreateConversation godoc
// @Summary Start a new assistant conversation
// @Tags chat
// @Accept json
// @Produce json
// @Param body body CreateConversationRequest false "Optional title"
// @Success 201 {object} util.Response{data=model.ChatConversation}
// @Router /api/chat/conversations [post]
// @Security BearerAuth
func (c *ChatController) CreateConversation(ctx *gin.Context) {
	var req CreateConversationRequest
	ctx.ShouldBindJSON(&req)

	claims := util.GetUserFromContext(ctx)
	conv, err := c.ChatService.CreateConversation(claims.UserID, req.Title)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, conv)
}

// ListConversations godoc
// @Summary Current user's conversations
// @Tags chat
// @Produce json
// @Success 200 {object} util.Response{data=[]model.ChatConversation}
// @Router /api/chat/conversations [get]
// @Security BearerAuth
func (c *ChatController) ListConversations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	convs, err := c.ChatService.ListConversations(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, convs)
}

// DeleteConversation godoc
// @Summary Delete a conversation and its messages
// @Tags chat
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/chat/conversations/{id} [delete]
// @Security BearerAuth
func (c *ChatController) DeleteConversation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ChatService.DeleteConversation(ctx.Param("id"), claims.UserID); err != nil {
		if errors.Is(err, util.ErrConversationMissing) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// ListMessages godoc
// @Summary Messages of a conversation, oldest first
// @Tags chat
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} util.Response{data=[]model.ChatMessage}
// @Failure 404 {object} util.Response
// @Router /api/chat/conversations/{id}/messages [get]
// @Security BearerAuth
func (c *ChatController) ListMessages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	msgs, err := c.ChatService.ListMessages(ctx.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrConversationMissing) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, msgs)
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage godoc
// @Summary Send a message and get the assistant's reply
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param body body SendMessageRequest true "Message"
// @Success 200 {object} util.Response{data=model.ChatMessage}
// @Failure 404 {object} util.Response
// @Router /api/chat/conversations/{id}/messages [post]
// @Security BearerAuth
func (c *ChatController) SendMessage(ctx *gin.Context) {
	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	reply, err := c.ChatService.SendMessage(ctx.Request.Context(), ctx.Param("id"), claims.UserID, req.Content, c.learnerLanguage(claims.UserID))
	if err != nil {
		if errors.Is(err, util.ErrConversationMissing) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, reply)
}

// StreamMessage godoc
// @Summary Send a message and stream the reply over SSE
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Param id path string true "Conversation ID"
// @Param body body SendMessageRequest true "Message"
// @Success 200 {string} string "event stream"
// @Failure 404 {object} util.Response
// @Router /api/chat/conversations/{id}/stream [post]
// @Security BearerAuth
func (c *ChatController) StreamMessage(ctx *gin.Context) {
	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	stream, errChan, finish, err := c.ChatService.StreamMessage(ctx.Request.Context(), ctx.Param("id"), claims.UserID, req.Content, c.learnerLanguage(claims.UserID))
	if err != nil {
		if errors.Is(err, util.ErrConversationMissing) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("Transfer-Encoding", "chunked")

	var full strings.Builder
	for content := range stream {
		full.WriteString(content)
		ctx.SSEvent("message", content)
		ctx.Writer.Flush()
	}

	if err := <-errChan; err != nil {
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
	}

	if err := finish(full.String()); err != nil {
		logger.Log.Error("failed to persist assistant reply", zap.Error(err))
	}

	ctx.SSEvent("end", "done")
	ctx.Writer.Flush()
}

// learnerLanguage fetches the user's target language for the tutor prompt.
func (c *ChatController) learnerLanguage(userID uint) string {
	user, err := c.UserService.GetProfile(userID)
	if err != nil {
		return ""
	}
	return user.Language
}
