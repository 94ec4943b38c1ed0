package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// sandboxPayerEmail is the test payer Mercado Pago documents for TEST- tokens.
const sandboxPayerEmail = "test_user_br@testuser.com"

type MercadoPagoGateway struct {
	client  payment.Client
	sandbox bool
	logger  *zap.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, logger *zap.Logger) (*MercadoPagoGateway, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		logger.Error("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		logger.Error("[payment][gateway] failed creating sdk config", zap.Error(err))
		return nil, err
	}
	logger.Info("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		client:  payment.NewClient(cfg),
		sandbox: strings.HasPrefix(accessToken, "TEST-"),
		logger:  logger,
	}, nil
}

// mpPaymentResponse is the subset of the provider response the gateway reads.
type mpPaymentResponse struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	StatusDetail string `json:"status_detail"`
	FeeDetails   []struct {
		Amount float64 `json:"amount"`
	} `json:"fee_details"`
}

// ProcessPayment charges the client. Amounts travel in minor units and are
// converted to the provider's decimal representation here.
func (g *MercadoPagoGateway) ProcessPayment(ctx context.Context, req entities.PaymentRequest) (entities.PaymentResult, error) {
	if g == nil || g.client == nil {
		return entities.PaymentResult{}, ErrMercadoPagoGatewayNotConfigured
	}
	projectID := req.Metadata["project_id"]
	g.logger.Info("[payment][gateway] create start",
		zap.String("project_id", projectID),
		zap.Int64("amount", req.Amount),
		zap.String("method", req.Method))

	payload, err := g.buildRequest(req)
	if err != nil {
		g.logger.Error("[payment][gateway] payload build failed", zap.String("project_id", projectID), zap.Error(err))
		return entities.PaymentResult{}, err
	}

	resp, err := g.client.Create(ctx, payload)
	if err != nil {
		g.logger.Warn("[payment][gateway] sdk create failed", zap.String("project_id", projectID), zap.Error(err))
		if msg, declined := declineMessage(err); declined {
			return entities.PaymentResult{Success: false, Message: msg}, nil
		}
		return entities.PaymentResult{}, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		g.logger.Error("[payment][gateway] response marshal failed", zap.Error(err))
		return entities.PaymentResult{}, err
	}
	var parsed mpPaymentResponse
	if err := json.Unmarshal(b, &parsed); err != nil {
		g.logger.Error("[payment][gateway] response unmarshal failed", zap.Error(err))
		return entities.PaymentResult{}, err
	}

	result := entities.PaymentResult{
		Reference: fmt.Sprintf("%d", parsed.ID),
		Fees:      feeTotal(parsed),
	}
	switch parsed.Status {
	case "approved", "authorized":
		result.Success = true
	default:
		result.Message = fmt.Sprintf("payment %s: %s", parsed.Status, parsed.StatusDetail)
	}
	g.logger.Info("[payment][gateway] create finished",
		zap.String("project_id", projectID),
		zap.String("provider_payment_id", result.Reference),
		zap.String("provider_status", parsed.Status),
		zap.Bool("success", result.Success))
	return result, nil
}

func (g *MercadoPagoGateway) buildRequest(req entities.PaymentRequest) (payment.Request, error) {
	body := map[string]any{
		"transaction_amount": float64(req.Amount) / 100,
		"payment_method_id":  req.Method,
		"installments":       1,
		"description":        fmt.Sprintf("Escrow deposit for project %s", req.Metadata["project_id"]),
		"external_reference": req.Metadata["escrow_id"],
	}
	if len(req.Metadata) > 0 {
		meta := make(map[string]any, len(req.Metadata))
		for k, v := range req.Metadata {
			meta[k] = v
		}
		body["metadata"] = meta
	}
	if g.sandbox {
		body["payer"] = map[string]any{"type": "customer", "email": sandboxPayerEmail}
	}

	var out payment.Request
	b, err := json.Marshal(body)
	if err != nil {
		return payment.Request{}, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return payment.Request{}, err
	}
	return out, nil
}

func feeTotal(r mpPaymentResponse) int64 {
	var total float64
	for _, f := range r.FeeDetails {
		total += f.Amount
	}
	return int64(total*100 + 0.5)
}

// declineMessage separates provider refusals (bad request, unknown payer,
// unauthorized card) from transport failures. Refusals are not retried by
// the caller as outages; they come back as an unsuccessful result.
func declineMessage(err error) (string, bool) {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return "payer not found", true
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return "invalid users involved", true
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return "payment unauthorized", true
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return "payment request rejected", true
	}
	return "", false
}
