package interfaces

import (
	"context"

	"artisan_escrow/internal/domain/entities"
)

// IPaymentGateway abstracts the external payment provider (Mercado Pago or the
// simulated stand-in).
//
// A transport failure is returned as an error; a declined payment is a
// PaymentResult with Success=false and the provider's message.
type IPaymentGateway interface {
	ProcessPayment(ctx context.Context, req entities.PaymentRequest) (entities.PaymentResult, error)
}
