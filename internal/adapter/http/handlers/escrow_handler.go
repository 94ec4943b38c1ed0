package handlers

import (
	"net/http"

	request "artisan_escrow/internal/adapter/http/dto/request"
	response "artisan_escrow/internal/adapter/http/dto/response"
	"artisan_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EscrowHandler exposes the escrow ledger: deposits, releases and refunds.
type EscrowHandler struct {
	usecase usecase.IEscrowUseCase
	logger  *zap.Logger
}

func NewEscrowHandler(uc usecase.IEscrowUseCase, logger *zap.Logger) *EscrowHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EscrowHandler{usecase: uc, logger: logger}
}

// EnsureEscrow recreates the escrow of an accepted project when acceptance
// committed without one. It returns the existing escrow otherwise.
func (h *EscrowHandler) EnsureEscrow(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	es, err := h.usecase.Create(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		respondError(c, h.logger, "[escrow][handler] ensure", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEscrow(es))
}

func (h *EscrowHandler) GetProjectEscrow(c *gin.Context) {
	es, err := h.usecase.GetByProjectID(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		respondError(c, h.logger, "[escrow][handler] get-by-project", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEscrow(es))
}

func (h *EscrowHandler) GetEscrow(c *gin.Context) {
	es, err := h.usecase.GetByID(c.Request.Context(), c.Param("escrow_id"))
	if err != nil {
		respondError(c, h.logger, "[escrow][handler] get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEscrow(es))
}

func (h *EscrowHandler) ListLedger(c *gin.Context) {
	entries, err := h.usecase.ListLedger(c.Request.Context(), c.Param("escrow_id"))
	if err != nil {
		respondError(c, h.logger, "[escrow][handler] ledger", err)
		return
	}
	c.JSON(http.StatusOK, response.FromLedger(entries))
}

// ConfirmDeposit godoc
// @Summary      Charge the client and hold the funds
// @Tags         escrows
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string                  true  "Client id"
// @Param        escrow_id  path    string                  true  "Escrow id"
// @Param        body       body    request.DepositRequest  true  "Payment method"
// @Success      200  {object}  response.EscrowResponse
// @Failure      502  {object}  pkg.HTTPError
// @Router       /escrows/{escrow_id}/deposit [post]
func (h *EscrowHandler) ConfirmDeposit(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	var payload request.DepositRequest
	if !bindJSON(c, &payload) {
		return
	}
	es, err := h.usecase.ConfirmDeposit(c.Request.Context(), c.Param("escrow_id"), payload.Method)
	if err != nil {
		respondError(c, h.logger, "[escrow][handler] deposit", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEscrow(es))
}

func (h *EscrowHandler) ReleaseAdvance(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	es, err := h.usecase.ReleaseAdvance(c.Request.Context(), c.Param("escrow_id"))
	if err != nil {
		respondError(c, h.logger, "[escrow][handler] release-advance", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEscrow(es))
}

func (h *EscrowHandler) ReleaseFullPayment(c *gin.Context) {
	clientID, ok := actorID(c)
	if !ok {
		return
	}
	es, err := h.usecase.ReleaseFullPayment(c.Request.Context(), c.Param("escrow_id"), clientID)
	if err != nil {
		respondError(c, h.logger, "[escrow][handler] release", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEscrow(es))
}

func (h *EscrowHandler) Freeze(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var payload request.RaiseDisputeRequest
	if !bindJSON(c, &payload) {
		return
	}
	es, err := h.usecase.Freeze(c.Request.Context(), c.Param("escrow_id"), actor, payload.Reason)
	if err != nil {
		respondError(c, h.logger, "[escrow][handler] freeze", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEscrow(es))
}

func (h *EscrowHandler) Refund(c *gin.Context) {
	adminID, ok := actorID(c)
	if !ok {
		return
	}
	es, err := h.usecase.Refund(c.Request.Context(), c.Param("escrow_id"), adminID)
	if err != nil {
		respondError(c, h.logger, "[escrow][handler] refund", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEscrow(es))
}

// UpdateAmount reprices a pending escrow at its original rates.
func (h *EscrowHandler) UpdateAmount(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	var payload request.AmountRequest
	if !bindJSON(c, &payload) {
		return
	}
	es, err := h.usecase.UpdateForNewAmount(c.Request.Context(), c.Param("escrow_id"), payload.Amount)
	if err != nil {
		respondError(c, h.logger, "[escrow][handler] reprice", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEscrow(es))
}
