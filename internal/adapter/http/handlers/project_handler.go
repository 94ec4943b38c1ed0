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

// ProjectHandler handles HTTP requests for the project lifecycle.
type ProjectHandler struct {
	usecase usecase.IProjectUseCase
	logger  *zap.Logger
}

func NewProjectHandler(uc usecase.IProjectUseCase, logger *zap.Logger) *ProjectHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectHandler{usecase: uc, logger: logger}
}

// CreateProject godoc
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string                        true  "Client id"
// @Param        body       body    request.CreateProjectRequest  true  "Project"
// @Success      201  {object}  response.ProjectResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	clientID, ok := actorID(c)
	if !ok {
		return
	}
	var payload request.CreateProjectRequest
	if !bindJSON(c, &payload) {
		return
	}

	p, err := h.usecase.Create(c.Request.Context(), usecase.ProjectDraft{
		ClientID:    clientID,
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Urgent:      payload.Urgent,
		Publish:     payload.Publish,
	})
	if err != nil {
		respondError(c, h.logger, "[project][handler] create", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromProject(p))
}

// GetProject godoc
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        project_id  path  string  true  "Project id"
// @Success      200  {object}  response.ProjectResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /projects/{project_id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		respondError(c, h.logger, "[project][handler] get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromProject(p))
}

func (h *ProjectHandler) PublishProject(c *gin.Context) {
	h.patchProject(c, "[project][handler] publish", h.usecase.Publish)
}

func (h *ProjectHandler) CancelProject(c *gin.Context) {
	h.patchProject(c, "[project][handler] cancel", h.usecase.Cancel)
}

// AdminCancelProject refunds whatever the escrow holds and cancels the project.
func (h *ProjectHandler) AdminCancelProject(c *gin.Context) {
	h.patchProject(c, "[project][handler] admin-cancel", h.usecase.AdminCancel)
}

func (h *ProjectHandler) RequestCompletion(c *gin.Context) {
	h.patchProject(c, "[project][handler] request-completion", h.usecase.RequestCompletion)
}

// ConfirmCompletion godoc
// @Summary      Confirm completion and release the payout
// @Tags         projects
// @Produce      json
// @Param        X-User-ID   header  string  true  "Client id"
// @Param        project_id  path    string  true  "Project id"
// @Success      200  {object}  response.ProjectEscrowResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /projects/{project_id}/confirm-completion [patch]
func (h *ProjectHandler) ConfirmCompletion(c *gin.Context) {
	clientID, ok := actorID(c)
	if !ok {
		return
	}
	p, es, err := h.usecase.ConfirmCompletion(c.Request.Context(), c.Param("project_id"), clientID)
	if err != nil {
		respondError(c, h.logger, "[project][handler] confirm-completion", err)
		return
	}
	c.JSON(http.StatusOK, response.FromProjectEscrow(p, es))
}

// ExpireStale sweeps projects whose quote window has elapsed.
func (h *ProjectHandler) ExpireStale(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	n, err := h.usecase.ExpireStale(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "[project][handler] expire", err)
		return
	}
	c.JSON(http.StatusOK, response.ExpireResponse{Expired: n})
}

func (h *ProjectHandler) patchProject(
	c *gin.Context,
	tag string,
	action func(ctx context.Context, projectID, actorID string) (entities.Project, error),
) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	p, err := action(c.Request.Context(), c.Param("project_id"), actor)
	if err != nil {
		respondError(c, h.logger, tag, err)
		return
	}
	c.JSON(http.StatusOK, response.FromProject(p))
}
