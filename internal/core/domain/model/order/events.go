package order

import "time"

// StatusChangedEvent is published after an action successfully transitions an
// order, so downstream consumers (notifications, analytics) can react.
type StatusChangedEvent struct {
	TenantID       string    `json:"tenant_id"`
	OrderID        int64     `json:"order_id"`
	Action         string    `json:"action"`
	PreviousStatus Status    `json:"previous_status"`
	NewStatus      Status    `json:"new_status"`
	LabelID        string    `json:"label_id,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
