package request

type SubmitQuoteRequest struct {
	Amount        int64  `json:"amount" binding:"required,gt=0,lte=1000000000000000"`
	Urgent        bool   `json:"urgent"`
	LaborCost     *int64 `json:"labor_cost" binding:"omitempty,min=0"`
	MaterialsCost *int64 `json:"materials_cost" binding:"omitempty,min=0"`
	Message       string `json:"message"`
}

type AcceptQuoteRequest struct {
	ProviderVerified bool `json:"provider_verified"`
}

type RejectQuoteRequest struct {
	Reason string `json:"reason"`
}

// AmountRequest renegotiates a quote or reprices a pending escrow.
type AmountRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0,lte=1000000000000000"`
}
