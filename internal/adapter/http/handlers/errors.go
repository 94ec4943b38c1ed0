package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase"
	"artisan_escrow/internal/usecase/interfaces"
	"artisan_escrow/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HeaderUserID carries the authenticated caller's id, set by the gateway in
// front of this service.
const HeaderUserID = "X-User-ID"

var (
	errMissingActor   = pkg.NewDomainErrorSimple("MISSING_ACTOR", "X-User-ID header is required", http.StatusUnauthorized)
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// actorID reads the caller id. It writes a 401 and returns false when the
// header is missing.
func actorID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.GetHeader(HeaderUserID))
	if id == "" {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return "", false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		appErr := errInvalidPayload.WithDetail("error", err.Error())
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return false
	}
	return true
}

func respondError(c *gin.Context, logger *zap.Logger, tag string, err error) {
	appErr := mapUseCaseError(err)
	fields := []zap.Field{
		zap.String("path", c.FullPath()),
		zap.String("code", appErr.Code),
		zap.Error(err),
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error(tag+" failed", fields...)
	} else {
		logger.Warn(tag+" rejected", fields...)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapUseCaseError(err error) *pkg.AppError {
	var transition *entities.InvalidTransitionError
	var external *entities.ExternalServiceError
	var policy *entities.PolicyError
	var invariant *entities.InvariantViolationError
	var exists *entities.AlreadyExistsError

	switch {
	case errors.As(err, &transition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", transition.Error(), http.StatusConflict).
			WithDetail("resource", transition.Resource).
			WithDetail("transition", transition.Transition).
			WithDetail("current_status", transition.From)
	case errors.As(err, &external):
		return pkg.NewDomainError("PAYMENT_"+strings.ToUpper(external.Reason), external.Error(), err, http.StatusBadGateway).
			WithDetail("reason", external.Reason).
			WithDetail("retryable", external.Retryable)
	case errors.As(err, &policy):
		return pkg.NewDomainErrorSimple("POLICY_VIOLATION", policy.Detail, http.StatusUnprocessableEntity).
			WithDetail("rule", policy.Rule)
	case errors.As(err, &invariant):
		return pkg.NewDomainError("INVARIANT_VIOLATION", "Internal consistency check failed", err, http.StatusInternalServerError).
			WithDetail("invariant", invariant.Invariant)
	case errors.As(err, &exists):
		return pkg.NewDomainErrorSimple("ALREADY_EXISTS", exists.Error(), http.StatusConflict)

	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_FOUND", "Project not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEscrowNotFound):
		return pkg.NewDomainErrorSimple("ESCROW_NOT_FOUND", "Escrow not found", http.StatusNotFound)

	case errors.Is(err, entities.ErrForbiddenActor):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Caller is not allowed to perform this action", http.StatusForbidden)

	case errors.Is(err, usecase.ErrQuoteAlreadyAccepted):
		return pkg.NewDomainErrorSimple("QUOTE_ALREADY_ACCEPTED", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrDuplicateQuote):
		return pkg.NewDomainErrorSimple("DUPLICATE_QUOTE", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrEscrowMissing):
		return pkg.NewDomainErrorSimple("ESCROW_MISSING", err.Error(), http.StatusConflict)
	case errors.Is(err, interfaces.ErrVersionConflict):
		return pkg.NewDomainErrorSimple("CONCURRENT_MODIFICATION", "Record was modified concurrently, retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrProjectBusy), errors.Is(err, context.DeadlineExceeded):
		return pkg.NewDomainErrorSimple("PROJECT_BUSY", "Project is busy, retry later", http.StatusServiceUnavailable).
			WithDetail("retryable", true)

	case errors.Is(err, usecase.ErrInvalidProjectID),
		errors.Is(err, usecase.ErrInvalidQuoteID),
		errors.Is(err, usecase.ErrInvalidEscrowID),
		errors.Is(err, usecase.ErrInvalidActorID),
		errors.Is(err, usecase.ErrInvalidProjectTitle),
		errors.Is(err, usecase.ErrInvalidPaymentMethod),
		errors.Is(err, usecase.ErrInvalidDisputeReason),
		errors.Is(err, entities.ErrInvalidFeeAmount),
		errors.Is(err, entities.ErrInvalidFeePercent),
		errors.Is(err, entities.ErrInvalidQuoteAmount),
		errors.Is(err, entities.ErrInvalidResolutionMode),
		errors.Is(err, entities.ErrInvalidClientShare):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)

	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
