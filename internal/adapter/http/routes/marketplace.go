package routes

import (
	"artisan_escrow/internal/adapter/http/handlers"
	"artisan_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	PathProjects = "/projects"
	PathQuotes   = "/quotes"
	PathEscrows  = "/escrows"
	PathFees     = "/fees"
)

type marketplaceHandlers struct {
	projects *handlers.ProjectHandler
	quotes   *handlers.QuoteHandler
	escrows  *handlers.EscrowHandler
	disputes *handlers.DisputeHandler
	fees     *handlers.FeeHandler
}

func getRoutes(router *gin.Engine, deps usecase.Deps, log *zap.Logger) {
	h := marketplaceHandlers{
		projects: handlers.NewProjectHandler(usecase.NewProjectUseCase(deps), log),
		quotes:   handlers.NewQuoteHandler(usecase.NewQuoteUseCase(deps), log),
		escrows:  handlers.NewEscrowHandler(usecase.NewEscrowUseCase(deps), log),
		disputes: handlers.NewDisputeHandler(usecase.NewDisputeUseCase(deps), log),
		fees:     handlers.NewFeeHandler(usecase.NewFeeUseCase(deps.Fees), log),
	}

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addMarketplaceRoutes(v1, h)
}

func addMarketplaceRoutes(rg *gin.RouterGroup, h marketplaceHandlers) {
	projects := rg.Group(PathProjects)
	{
		projects.POST("", h.projects.CreateProject)
		projects.POST("/expire", h.projects.ExpireStale)
		projects.GET("/:project_id", h.projects.GetProject)
		projects.PATCH("/:project_id/publish", h.projects.PublishProject)
		projects.PATCH("/:project_id/cancel", h.projects.CancelProject)
		projects.PATCH("/:project_id/admin-cancel", h.projects.AdminCancelProject)
		projects.PATCH("/:project_id/request-completion", h.projects.RequestCompletion)
		projects.PATCH("/:project_id/confirm-completion", h.projects.ConfirmCompletion)

		projects.POST("/:project_id/quotes", h.quotes.SubmitQuote)
		projects.GET("/:project_id/quotes", h.quotes.ListProjectQuotes)

		projects.POST("/:project_id/escrow", h.escrows.EnsureEscrow)
		projects.GET("/:project_id/escrow", h.escrows.GetProjectEscrow)

		projects.POST("/:project_id/dispute", h.disputes.RaiseDispute)
		projects.POST("/:project_id/dispute/resolve", h.disputes.ResolveDispute)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("/:quote_id", h.quotes.GetQuote)
		quotes.PATCH("/:quote_id/view", h.quotes.MarkViewed)
		quotes.PATCH("/:quote_id/reject", h.quotes.RejectQuote)
		quotes.PATCH("/:quote_id/withdraw", h.quotes.WithdrawQuote)
		quotes.PATCH("/:quote_id/amount", h.quotes.UpdateQuoteAmount)
		quotes.POST("/:quote_id/accept", h.quotes.AcceptQuote)
	}

	escrows := rg.Group(PathEscrows)
	{
		escrows.GET("/:escrow_id", h.escrows.GetEscrow)
		escrows.GET("/:escrow_id/ledger", h.escrows.ListLedger)
		escrows.POST("/:escrow_id/deposit", h.escrows.ConfirmDeposit)
		escrows.POST("/:escrow_id/release-advance", h.escrows.ReleaseAdvance)
		escrows.POST("/:escrow_id/release", h.escrows.ReleaseFullPayment)
		escrows.POST("/:escrow_id/freeze", h.escrows.Freeze)
		escrows.POST("/:escrow_id/refund", h.escrows.Refund)
		escrows.PATCH("/:escrow_id/amount", h.escrows.UpdateAmount)
	}

	fees := rg.Group(PathFees)
	{
		fees.POST("/preview", h.fees.PreviewFees)
	}
}
