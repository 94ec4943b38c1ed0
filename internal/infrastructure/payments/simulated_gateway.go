package payments

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"artisan_escrow/internal/config"
	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimulatedGateway stands in for the provider in local and test
// environments. It sleeps for the configured latency and approves a
// configurable share of payments.
type SimulatedGateway struct {
	successRate float64
	feePercent  int64
	latency     time.Duration
	logger      *zap.Logger

	mu   sync.Mutex
	roll func() float64
}

var _ interfaces.IPaymentGateway = (*SimulatedGateway)(nil)

func NewSimulatedGateway(cfg config.PaymentConfig, logger *zap.Logger) *SimulatedGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &SimulatedGateway{
		successRate: cfg.SimulatedSuccessRate,
		feePercent:  cfg.SimulatedFeePercent,
		latency:     cfg.SimulatedLatency,
		roll:        r.Float64,
		logger:      logger,
	}
}

// WithRoll replaces the random source, returning g.
func (g *SimulatedGateway) WithRoll(roll func() float64) *SimulatedGateway {
	g.mu.Lock()
	g.roll = roll
	g.mu.Unlock()
	return g
}

// draw serializes access to roll; *rand.Rand is not safe for concurrent use.
func (g *SimulatedGateway) draw() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.roll()
}

func (g *SimulatedGateway) ProcessPayment(ctx context.Context, req entities.PaymentRequest) (entities.PaymentResult, error) {
	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return entities.PaymentResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	if g.draw() >= g.successRate {
		g.logger.Info("[payment][simulated] declined",
			zap.String("project_id", req.Metadata["project_id"]),
			zap.Int64("amount", req.Amount))
		return entities.PaymentResult{Success: false, Message: "payment declined by issuer"}, nil
	}

	result := entities.PaymentResult{
		Success:   true,
		Reference: "sim_" + uuid.NewString(),
		Fees:      (req.Amount*g.feePercent + 50) / 100,
		Message:   "approved",
	}
	g.logger.Info("[payment][simulated] approved",
		zap.String("project_id", req.Metadata["project_id"]),
		zap.String("reference", result.Reference),
		zap.Int64("amount", req.Amount))
	return result, nil
}
