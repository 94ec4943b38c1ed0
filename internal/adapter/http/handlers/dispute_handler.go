package handlers

import (
	"net/http"

	request "artisan_escrow/internal/adapter/http/dto/request"
	response "artisan_escrow/internal/adapter/http/dto/response"
	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase"
	"artisan_escrow/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errMissingClientShare = pkg.NewDomainErrorSimple("INVALID_REQUEST", "client_share_percent is required for split", http.StatusBadRequest)

type DisputeHandler struct {
	usecase usecase.IDisputeUseCase
	logger  *zap.Logger
}

func NewDisputeHandler(uc usecase.IDisputeUseCase, logger *zap.Logger) *DisputeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DisputeHandler{usecase: uc, logger: logger}
}

// RaiseDispute godoc
// @Summary      Raise a dispute and freeze the escrow
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        X-User-ID   header  string                       true  "Client or artisan id"
// @Param        project_id  path    string                       true  "Project id"
// @Param        body        body    request.RaiseDisputeRequest  true  "Reason"
// @Success      200  {object}  response.ProjectEscrowResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /projects/{project_id}/dispute [post]
func (h *DisputeHandler) RaiseDispute(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var payload request.RaiseDisputeRequest
	if !bindJSON(c, &payload) {
		return
	}
	p, es, err := h.usecase.Raise(c.Request.Context(), c.Param("project_id"), actor, payload.Reason)
	if err != nil {
		respondError(c, h.logger, "[dispute][handler] raise", err)
		return
	}
	c.JSON(http.StatusOK, response.FromProjectEscrow(p, es))
}

// ResolveDispute godoc
// @Summary      Settle a dispute
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        X-User-ID   header  string                         true  "Administrator id"
// @Param        project_id  path    string                         true  "Project id"
// @Param        body        body    request.ResolveDisputeRequest  true  "Decision"
// @Success      200  {object}  response.ProjectEscrowResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /projects/{project_id}/dispute/resolve [post]
func (h *DisputeHandler) ResolveDispute(c *gin.Context) {
	adminID, ok := actorID(c)
	if !ok {
		return
	}
	var payload request.ResolveDisputeRequest
	if !bindJSON(c, &payload) {
		return
	}
	if !payload.Valid() {
		c.JSON(errMissingClientShare.HTTPStatus, errMissingClientShare.ToHTTPError())
		return
	}

	p, es, err := h.usecase.Resolve(c.Request.Context(), usecase.DisputeResolution{
		ProjectID:          c.Param("project_id"),
		AdminID:            adminID,
		Mode:               entities.ResolutionMode(payload.Mode),
		ClientSharePercent: payload.SharePercent(),
	})
	if err != nil {
		respondError(c, h.logger, "[dispute][handler] resolve", err)
		return
	}
	c.JSON(http.StatusOK, response.FromProjectEscrow(p, es))
}
