package entities

// Notification templates sent to the notification sink.
const (
	NotifyQuoteReceived      = "quote_received"
	NotifyQuoteAccepted      = "quote_accepted"
	NotifyQuoteRejected      = "quote_rejected"
	NotifyPaymentFailed      = "payment_failed"
	NotifyFundsHeld          = "funds_held"
	NotifyAdvanceReleased    = "advance_released"
	NotifyPaymentReleased    = "payment_released"
	NotifyCompletionRequest  = "completion_requested"
	NotifyProjectCancelled   = "project_cancelled"
	NotifyProjectExpired     = "project_expired"
	NotifyEscrowRefunded     = "escrow_refunded"
	NotifyDisputeRaised      = "dispute_raised"
	NotifyDisputeResolved    = "dispute_resolved"
	NotifyPaymentPendingInfo = "payment_pending"
)
