package handler

import (
	"github.com/gin-gonic/gin"

	"zap-feed-service/internal/adapter/http/dto"
	"zap-feed-service/internal/adapter/http/middleware"
	"zap-feed-service/internal/core/ports"
	"zap-feed-service/pkg/apperror"
	"zap-feed-service/pkg/response"
)

// ZapHandler handles transfer origination.
type ZapHandler struct {
	transferSvc ports.TransferService
}

// NewZapHandler creates a new ZapHandler.
func NewZapHandler(transferSvc ports.TransferService) *ZapHandler {
	return &ZapHandler{transferSvc: transferSvc}
}

// SendZap handles POST /api/v1/zaps. The sender is always the session user.
func (h *ZapHandler) SendZap(c *gin.Context) {
	var req dto.SendZapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.transferSvc.SendZap(c.Request.Context(), ports.SendZapRequest{
		SenderID:    c.GetString(middleware.CtxUserID),
		RecipientID: req.RecipientID,
		AmountSat:   req.AmountSat,
		Memo:        req.Memo,
		Anonymous:   req.Anonymous,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.SendZapResponse{
		PaymentHash: result.PaymentHash,
		Bolt11:      result.Bolt11,
	})
}
