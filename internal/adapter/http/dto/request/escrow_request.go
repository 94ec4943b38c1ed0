package request

type DepositRequest struct {
	Method string `json:"payment_method" binding:"required"`
}

type FeePreviewRequest struct {
	Amount           int64 `json:"amount" binding:"required,gt=0,lte=1000000000000000"`
	Urgent           bool  `json:"urgent"`
	ProviderVerified bool  `json:"provider_verified"`
}
