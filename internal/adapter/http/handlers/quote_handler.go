package handlers

import (
	"context"
	"net/http"

	request "artisan_escrow/internal/adapter/http/dto/request"
	response "artisan_escrow/internal/adapter/http/dto/response"
	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuoteHandler handles quote negotiation between clients and artisans.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
	logger  *zap.Logger
}

func NewQuoteHandler(uc usecase.IQuoteUseCase, logger *zap.Logger) *QuoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteHandler{usecase: uc, logger: logger}
}

// SubmitQuote godoc
// @Summary      Submit a quote on a project
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        X-User-ID   header  string                      true  "Artisan id"
// @Param        project_id  path    string                      true  "Project id"
// @Param        body        body    request.SubmitQuoteRequest  true  "Quote"
// @Success      201  {object}  response.QuoteResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /projects/{project_id}/quotes [post]
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	artisanID, ok := actorID(c)
	if !ok {
		return
	}
	var payload request.SubmitQuoteRequest
	if !bindJSON(c, &payload) {
		return
	}

	q, err := h.usecase.Submit(c.Request.Context(), usecase.QuoteSubmission{
		ProjectID:     c.Param("project_id"),
		ArtisanID:     artisanID,
		Amount:        payload.Amount,
		Urgent:        payload.Urgent,
		LaborCost:     payload.LaborCost,
		MaterialsCost: payload.MaterialsCost,
		Message:       payload.Message,
	})
	if err != nil {
		respondError(c, h.logger, "[quote][handler] submit", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q))
}

func (h *QuoteHandler) ListProjectQuotes(c *gin.Context) {
	quotes, err := h.usecase.ListByProjectID(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		respondError(c, h.logger, "[quote][handler] list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("quote_id"))
	if err != nil {
		respondError(c, h.logger, "[quote][handler] get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

func (h *QuoteHandler) MarkViewed(c *gin.Context) {
	h.patchQuote(c, "[quote][handler] view", h.usecase.MarkViewed)
}

func (h *QuoteHandler) WithdrawQuote(c *gin.Context) {
	h.patchQuote(c, "[quote][handler] withdraw", h.usecase.Withdraw)
}

// RejectQuote accepts an optional JSON body with a reason.
func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	clientID, ok := actorID(c)
	if !ok {
		return
	}
	var payload request.RejectQuoteRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &payload) {
		return
	}
	q, err := h.usecase.Reject(c.Request.Context(), c.Param("quote_id"), clientID, payload.Reason)
	if err != nil {
		respondError(c, h.logger, "[quote][handler] reject", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

func (h *QuoteHandler) UpdateQuoteAmount(c *gin.Context) {
	artisanID, ok := actorID(c)
	if !ok {
		return
	}
	var payload request.AmountRequest
	if !bindJSON(c, &payload) {
		return
	}
	q, err := h.usecase.UpdateAmount(c.Request.Context(), c.Param("quote_id"), artisanID, payload.Amount)
	if err != nil {
		respondError(c, h.logger, "[quote][handler] update-amount", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// AcceptQuote godoc
// @Summary      Accept a quote and open its escrow
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string                      true   "Client id"
// @Param        quote_id   path    string                      true   "Quote id"
// @Param        body       body    request.AcceptQuoteRequest  false  "Acceptance options"
// @Success      200  {object}  response.AcceptanceResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quotes/{quote_id}/accept [post]
func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	clientID, ok := actorID(c)
	if !ok {
		return
	}
	var payload request.AcceptQuoteRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &payload) {
		return
	}
	acc, err := h.usecase.Accept(c.Request.Context(), c.Param("quote_id"), clientID, payload.ProviderVerified)
	if err != nil {
		respondError(c, h.logger, "[quote][handler] accept", err)
		return
	}
	c.JSON(http.StatusOK, response.FromAcceptance(acc))
}

func (h *QuoteHandler) patchQuote(
	c *gin.Context,
	tag string,
	action func(ctx context.Context, quoteID, actorID string) (entities.Quote, error),
) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	q, err := action(c.Request.Context(), c.Param("quote_id"), actor)
	if err != nil {
		respondError(c, h.logger, tag, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}
