package payments

import (
	"context"
	"fmt"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"

	"golang.org/x/time/rate"
)

// RateLimitedGateway caps the request rate towards the provider. Callers
// wait for a token; a cancelled or expired context aborts the wait, and a
// deadline too close to cover the wait fails as context.DeadlineExceeded.
type RateLimitedGateway struct {
	next    interfaces.IPaymentGateway
	limiter *rate.Limiter
}

var _ interfaces.IPaymentGateway = (*RateLimitedGateway)(nil)

// NewRateLimitedGateway wraps next. A non-positive perSecond disables limiting.
func NewRateLimitedGateway(next interfaces.IPaymentGateway, perSecond float64, burst int) interfaces.IPaymentGateway {
	if perSecond <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedGateway{next: next, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (g *RateLimitedGateway) ProcessPayment(ctx context.Context, req entities.PaymentRequest) (entities.PaymentResult, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return entities.PaymentResult{}, ctxErr
		}
		if _, ok := ctx.Deadline(); ok {
			return entities.PaymentResult{}, fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return entities.PaymentResult{}, err
	}
	return g.next.ProcessPayment(ctx, req)
}
