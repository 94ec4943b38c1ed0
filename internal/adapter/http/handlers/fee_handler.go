package handlers

import (
	"net/http"

	request "artisan_escrow/internal/adapter/http/dto/request"
	"artisan_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FeeHandler struct {
	usecase usecase.IFeeUseCase
	logger  *zap.Logger
}

func NewFeeHandler(uc usecase.IFeeUseCase, logger *zap.Logger) *FeeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeHandler{usecase: uc, logger: logger}
}

// PreviewFees godoc
// @Summary      Preview the fee breakdown for an amount
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        body  body  request.FeePreviewRequest  true  "Amount and options"
// @Success      200  {object}  entities.FeeBreakdown
// @Failure      400  {object}  pkg.HTTPError
// @Router       /fees/preview [post]
func (h *FeeHandler) PreviewFees(c *gin.Context) {
	var payload request.FeePreviewRequest
	if !bindJSON(c, &payload) {
		return
	}
	b, err := h.usecase.Preview(c.Request.Context(), payload.Amount, payload.Urgent, payload.ProviderVerified)
	if err != nil {
		respondError(c, h.logger, "[fee][handler] preview", err)
		return
	}
	c.JSON(http.StatusOK, b)
}
