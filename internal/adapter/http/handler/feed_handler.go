package handler

import (
	"github.com/gin-gonic/gin"

	"zap-feed-service/internal/adapter/http/dto"
	"zap-feed-service/internal/adapter/http/middleware"
	"zap-feed-service/internal/core/ports"
	"zap-feed-service/pkg/apperror"
	"zap-feed-service/pkg/response"
)

// FeedHandler handles feed endpoints.
type FeedHandler struct {
	feedSvc ports.FeedService
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feedSvc ports.FeedService) *FeedHandler {
	return &FeedHandler{feedSvc: feedSvc}
}

// GetFeed handles GET /api/v1/feed.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	var req dto.FeedQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	page, err := h.feedSvc.LoadFeed(c.Request.Context(), req.ToFeedQuery(c.GetString(middleware.CtxUserID)))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromFeedPage(*page))
}

// GetStats handles GET /api/v1/feed/stats.
func (h *FeedHandler) GetStats(c *gin.Context) {
	var req dto.FeedQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	stats, err := h.feedSvc.FeedStats(c.Request.Context(), req.Since)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromFeedStats(*stats))
}
