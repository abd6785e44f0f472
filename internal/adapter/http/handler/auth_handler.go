package handler

import (
	"github.com/gin-gonic/gin"

	"zap-feed-service/internal/adapter/http/dto"
	"zap-feed-service/internal/core/ports"
	"zap-feed-service/pkg/apperror"
	"zap-feed-service/pkg/response"
)

// AuthHandler handles session endpoints.
type AuthHandler struct {
	authSvc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// StartSession handles POST /api/v1/auth/session.
func (h *AuthHandler) StartSession(c *gin.Context) {
	var req dto.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	token, expiry, user, err := h.authSvc.StartSession(c.Request.Context(), req.AADObjectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.SessionResponse{
		Token:  token,
		Expiry: expiry.Unix(),
		User:   dto.FromUser(*user),
	})
}

// EndSession handles POST /api/v1/auth/logout.
func (h *AuthHandler) EndSession(c *gin.Context) {
	if err := h.authSvc.EndSession(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"logged_out": true})
}
