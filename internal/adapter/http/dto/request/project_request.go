package request

import "strings"

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Urgent      bool   `json:"urgent"`
	Publish     bool   `json:"publish"`
}

type RaiseDisputeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ResolveDisputeRequest carries the administrator's decision.
// ClientSharePercent is required when mode is "split".
type ResolveDisputeRequest struct {
	Mode               string `json:"mode" binding:"required,oneof=refund_client pay_artisan split"`
	ClientSharePercent *int64 `json:"client_share_percent" binding:"omitempty,min=0,max=100"`
}

func (r ResolveDisputeRequest) SharePercent() int64 {
	if r.ClientSharePercent == nil {
		return 0
	}
	return *r.ClientSharePercent
}

// Valid reports whether the split share is present when the mode needs it.
func (r ResolveDisputeRequest) Valid() bool {
	return strings.TrimSpace(r.Mode) != "split" || r.ClientSharePercent != nil
}
