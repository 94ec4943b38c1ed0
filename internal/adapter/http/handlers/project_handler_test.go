package handlers

import (
	"net/http"
	"testing"
	"time"

	"artisan_escrow/internal/adapter/http/handlers/mocks"
	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

func newProjectRouter(t *testing.T) (*gin.Engine, *mocks.MockIProjectUseCase) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIProjectUseCase(ctrl)
	h := NewProjectHandler(uc, zaptest.NewLogger(t))

	r := gin.New()
	r.POST("/v1/projects", h.CreateProject)
	r.GET("/v1/projects/:project_id", h.GetProject)
	r.PATCH("/v1/projects/:project_id/publish", h.PublishProject)
	r.PATCH("/v1/projects/:project_id/cancel", h.CancelProject)
	r.PATCH("/v1/projects/:project_id/admin-cancel", h.AdminCancelProject)
	r.PATCH("/v1/projects/:project_id/request-completion", h.RequestCompletion)
	r.PATCH("/v1/projects/:project_id/confirm-completion", h.ConfirmCompletion)
	r.POST("/v1/projects/expire", h.ExpireStale)
	return r, uc
}

func TestProjectHandler_CreateProject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing actor", func(t *testing.T) {
		r, _ := newProjectRouter(t)
		w := serve(r, http.MethodPost, "/v1/projects", `{"title":"Roof"}`, "")
		expectStatus(t, w, http.StatusUnauthorized)
		if decode(t, w)["code"] != "MISSING_ACTOR" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		r, _ := newProjectRouter(t)
		w := serve(r, http.MethodPost, "/v1/projects", "{", "client-1")
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("title required", func(t *testing.T) {
		r, _ := newProjectRouter(t)
		w := serve(r, http.MethodPost, "/v1/projects", `{"description":"x"}`, "client-1")
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		now := time.Now().UTC()
		uc.EXPECT().
			Create(gomock.Any(), usecase.ProjectDraft{ClientID: "client-1", Title: "Roof", Urgent: true, Publish: true}).
			Return(entities.Project{ID: "p-1", ClientID: "client-1", Title: "Roof", Urgent: true, Status: entities.ProjectStatusOpen, ExpiresAt: now}, nil)

		w := serve(r, http.MethodPost, "/v1/projects", `{"title":"Roof","urgent":true,"publish":true}`, "client-1")
		expectStatus(t, w, http.StatusCreated)
		body := decode(t, w)
		if body["id"] != "p-1" || body["status"] != "open" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestProjectHandler_GetProject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "p-404").Return(entities.Project{}, usecase.ErrProjectNotFound)

		w := serve(r, http.MethodGet, "/v1/projects/p-404", "", "")
		expectStatus(t, w, http.StatusNotFound)
	})

	t.Run("found", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Project{ID: "p-1", Status: entities.ProjectStatusExpired}, nil)

		w := serve(r, http.MethodGet, "/v1/projects/p-1", "", "")
		expectStatus(t, w, http.StatusOK)
		if decode(t, w)["status"] != "expired" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestProjectHandler_Transitions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("publish", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Publish(gomock.Any(), "p-1", "client-1").Return(entities.Project{ID: "p-1", Status: entities.ProjectStatusOpen}, nil)

		w := serve(r, http.MethodPatch, "/v1/projects/p-1/publish", "", "client-1")
		expectStatus(t, w, http.StatusOK)
	})

	t.Run("cancel with held funds", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Cancel(gomock.Any(), "p-1", "client-1").
			Return(entities.Project{}, &entities.PolicyError{Rule: "cancellation", Detail: "funds are held"})

		w := serve(r, http.MethodPatch, "/v1/projects/p-1/cancel", "", "client-1")
		expectStatus(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("cancel by stranger", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Cancel(gomock.Any(), "p-1", "x").Return(entities.Project{}, entities.ErrForbiddenActor)

		w := serve(r, http.MethodPatch, "/v1/projects/p-1/cancel", "", "x")
		expectStatus(t, w, http.StatusForbidden)
	})

	t.Run("admin cancel", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().AdminCancel(gomock.Any(), "p-1", "admin-1").Return(entities.Project{ID: "p-1", Status: entities.ProjectStatusCancelled}, nil)

		w := serve(r, http.MethodPatch, "/v1/projects/p-1/admin-cancel", "", "admin-1")
		expectStatus(t, w, http.StatusOK)
	})

	t.Run("request completion from wrong status", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().RequestCompletion(gomock.Any(), "p-1", "artisan-1").
			Return(entities.Project{}, &entities.InvalidTransitionError{Resource: "project", Transition: "request_completion", From: "open"})

		w := serve(r, http.MethodPatch, "/v1/projects/p-1/request-completion", "", "artisan-1")
		expectStatus(t, w, http.StatusConflict)
		details, _ := decode(t, w)["details"].(map[string]any)
		if details["current_status"] != "open" {
			t.Fatalf("expected current_status detail, got %s", w.Body.String())
		}
	})

	t.Run("confirm completion", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		es := entities.Escrow{ID: "e-1", ProjectID: "p-1", State: entities.EscrowReleased{FinalRelease: 720}}
		uc.EXPECT().ConfirmCompletion(gomock.Any(), "p-1", "client-1").
			Return(entities.Project{ID: "p-1", Status: entities.ProjectStatusCompleted}, es, nil)

		w := serve(r, http.MethodPatch, "/v1/projects/p-1/confirm-completion", "", "client-1")
		expectStatus(t, w, http.StatusOK)
		escrow, _ := decode(t, w)["escrow"].(map[string]any)
		if escrow["status"] != "released" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("confirm without escrow", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().ConfirmCompletion(gomock.Any(), "p-1", "client-1").
			Return(entities.Project{}, entities.Escrow{}, usecase.ErrEscrowMissing)

		w := serve(r, http.MethodPatch, "/v1/projects/p-1/confirm-completion", "", "client-1")
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("busy project", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Publish(gomock.Any(), "p-1", "client-1").Return(entities.Project{}, usecase.ErrProjectBusy)

		w := serve(r, http.MethodPatch, "/v1/projects/p-1/publish", "", "client-1")
		expectStatus(t, w, http.StatusServiceUnavailable)
	})
}

func TestProjectHandler_ExpireStale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, uc := newProjectRouter(t)
	uc.EXPECT().ExpireStale(gomock.Any()).Return(3, nil)

	w := serve(r, http.MethodPost, "/v1/projects/expire", "", "admin-1")
	expectStatus(t, w, http.StatusOK)
	if decode(t, w)["expired"] != float64(3) {
		t.Fatalf("unexpected response body: %s", w.Body.String())
	}
}
