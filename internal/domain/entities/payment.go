package entities

// PaymentRequest is what the engine hands to the payment gateway.
//
// Amount is in the smallest currency unit.
type PaymentRequest struct {
	Amount   int64
	Method   string
	Metadata map[string]string
}

// PaymentResult is the gateway's answer. A declined payment is reported with
// Success=false and a human readable Message, not as a Go error.
type PaymentResult struct {
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
	Fees      int64  `json:"fees"`
	Message   string `json:"message"`
}
