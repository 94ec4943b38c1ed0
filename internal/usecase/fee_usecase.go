package usecase

import (
	"context"

	"artisan_escrow/internal/domain/entities"
)

// IFeeUseCase previews the cost split of a quote before it is accepted.
type IFeeUseCase interface {
	Preview(ctx context.Context, amount int64, urgent, providerVerified bool) (entities.FeeBreakdown, error)
}

type FeeUseCase struct {
	policy entities.FeePolicy
}

var _ IFeeUseCase = (*FeeUseCase)(nil)

func NewFeeUseCase(policy entities.FeePolicy) *FeeUseCase {
	if policy == (entities.FeePolicy{}) {
		policy = entities.DefaultFeePolicy()
	}
	return &FeeUseCase{policy: policy}
}

func (u *FeeUseCase) Preview(_ context.Context, amount int64, urgent, providerVerified bool) (entities.FeeBreakdown, error) {
	return entities.CalculateFees(u.policy.Input(amount, urgent, providerVerified))
}
