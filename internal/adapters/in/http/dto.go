package http

import "time"

// ActionRequest is the request body for order action endpoints. The reason is
// required for refund, return, and replace; cancel ignores it.
type ActionRequest struct {
	Reason string `json:"reason,omitempty" example:"item arrived damaged"`
}

// ActionResponse is returned when an action succeeds.
type ActionResponse struct {
	OrderID int64  `json:"order_id" example:"42"`
	Status  string `json:"status" example:"REFUND_INITIATED"`
	LabelID string `json:"label_id,omitempty" example:"c6f1b8a0-8e4e-4b59-9d2e-0f6a3f1c2d4e"`
}

// DeniedResponse is returned when the action policy rejects a request.
type DeniedResponse struct {
	ReasonCode string `json:"reason_code" example:"window_expired"`
	Message    string `json:"message" example:"refund period has expired"`
}

// OrderResponse is the read model for a single order.
type OrderResponse struct {
	OrderID          int64      `json:"order_id" example:"42"`
	TenantID         string     `json:"tenant_id" example:"u1"`
	Status           string     `json:"status" example:"DELIVERED"`
	OrderDate        time.Time  `json:"order_date"`
	DeliversAt       *time.Time `json:"delivers_at,omitempty"`
	Quantity         int        `json:"quantity" example:"2"`
	TotalPrice       float64    `json:"total_price" example:"59.90"`
	DaysSinceOrdered int        `json:"days_since_ordered" example:"12"`
}

// Error is the generic error body for non-success responses.
type Error struct {
	Code    int    `json:"code" example:"404"`
	Message string `json:"message" example:"order not found"`
}
