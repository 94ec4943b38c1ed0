package handlers

import (
	"net/http"
	"testing"

	"artisan_escrow/internal/adapter/http/handlers/mocks"
	"artisan_escrow/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestFeeHandler_PreviewFees(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIFeeUseCase(ctrl)
		h := NewFeeHandler(uc, nil)

		r := gin.New()
		r.POST("/v1/fees/preview", h.PreviewFees)

		w := serve(r, http.MethodPost, "/v1/fees/preview", `{"amount":-5}`, "")
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("amount above maximum", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIFeeUseCase(ctrl)
		h := NewFeeHandler(uc, nil)

		r := gin.New()
		r.POST("/v1/fees/preview", h.PreviewFees)

		w := serve(r, http.MethodPost, "/v1/fees/preview", `{"amount":2053000000000000000}`, "")
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIFeeUseCase(ctrl)
		h := NewFeeHandler(uc, nil)

		r := gin.New()
		r.POST("/v1/fees/preview", h.PreviewFees)

		uc.EXPECT().Preview(gomock.Any(), int64(100000), true, true).Return(entities.FeeBreakdown{
			BaseAmount:       100000,
			UrgentSurcharge:  20000,
			TotalAmount:      120000,
			CommissionAmount: 12000,
			TVAAmount:        21600,
			ArtisanPayout:    86400,
			AdvanceAmount:    43200,
		}, nil)

		w := serve(r, http.MethodPost, "/v1/fees/preview", `{"amount":100000,"urgent":true,"provider_verified":true}`, "")
		expectStatus(t, w, http.StatusOK)
		if decode(t, w)["artisan_payout"] != float64(86400) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
