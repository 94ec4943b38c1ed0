package entities

import "time"

// LedgerEntryKind names a money movement recorded in the journal.
type LedgerEntryKind string

const (
	LedgerDepositHeld      LedgerEntryKind = "deposit_held"
	LedgerAdvanceReleased  LedgerEntryKind = "advance_released"
	LedgerPayoutReleased   LedgerEntryKind = "payout_released"
	LedgerClientRefunded   LedgerEntryKind = "client_refunded"
	LedgerCommissionKept   LedgerEntryKind = "commission_retained"
	LedgerDisputeRefund    LedgerEntryKind = "dispute_client_refund"
	LedgerDisputePayment   LedgerEntryKind = "dispute_artisan_payment"
	LedgerDisputeRetention LedgerEntryKind = "dispute_platform_retained"
)

// LedgerEntry is one platform-level bookkeeping line for an escrow.
type LedgerEntry struct {
	ID        string
	EscrowID  string
	ProjectID string
	Kind      LedgerEntryKind
	Amount    int64
	Reference string
	CreatedAt time.Time
}
