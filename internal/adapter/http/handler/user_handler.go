package handler

import (
	"github.com/gin-gonic/gin"

	"zap-feed-service/internal/adapter/http/dto"
	"zap-feed-service/internal/adapter/http/middleware"
	"zap-feed-service/internal/core/ports"
	"zap-feed-service/pkg/response"
)

// UserHandler handles roster and wallet endpoints.
type UserHandler struct {
	feedSvc ports.FeedService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(feedSvc ports.FeedService) *UserHandler {
	return &UserHandler{feedSvc: feedSvc}
}

// ListUsers handles GET /api/v1/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.feedSvc.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromUser(u))
	}
	response.OK(c, out)
}

// GetBalance handles GET /api/v1/wallets/balance. Reports the caller's
// allowance wallet balance.
func (h *UserHandler) GetBalance(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	balance, err := h.feedSvc.AllowanceBalanceMsat(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		BalanceMsat: balance,
		BalanceSat:  balance / 1000,
	})
}
